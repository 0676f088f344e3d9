package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/jsonenc"
)

// CodesFile is the YAML document an integrating application ships with its
// user API codes and response policy:
//
//	encoding_options: 15
//	data_always_object: true
//	max_code: 1023
//	codes:
//	  100: "Order not found"
type CodesFile struct {
	EncodingOptions  any            `yaml:"encoding_options"`
	DataAlwaysObject *bool          `yaml:"data_always_object"`
	MaxCode          *int           `yaml:"max_code"`
	Codes            map[int]string `yaml:"codes"`
}

// ReadCodesFile parses the YAML codes file at path.
func ReadCodesFile(path string) (*CodesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read codes file: %w", err)
	}
	return ParseCodesFile(raw)
}

// ParseCodesFile decodes a YAML codes document.
func ParseCodesFile(raw []byte) (*CodesFile, error) {
	var file CodesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalidConfigurationType, "malformed codes file", err)
	}
	return &file, nil
}

func (f *CodesFile) applyTo(rc *ResponseConfig) error {
	if f.EncodingOptions != nil {
		opts, err := jsonenc.FromValue(f.EncodingOptions)
		if err != nil {
			return err
		}
		rc.EncodingOptions = &opts
	}
	if f.DataAlwaysObject != nil {
		rc.DataAlwaysObject = *f.DataAlwaysObject
	}
	if f.MaxCode != nil {
		rc.MaxCode = domain.ApiCode(*f.MaxCode)
	}
	if len(f.Codes) > 0 {
		rc.Codes = make(map[domain.ApiCode]string, len(f.Codes))
		for code, msg := range f.Codes {
			rc.Codes[domain.ApiCode(code)] = msg
		}
	}
	return nil
}
