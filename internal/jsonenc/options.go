// Package jsonenc resolves and applies the JSON string-escaping policy of
// response bodies.
package jsonenc

import (
	"math"
	"strconv"
	"strings"

	"github.com/fastygo/apiresponse/domain"
)

// Options is a bitmask of escaping flags. Bit values follow PHP's json_encode
// constants so existing client configurations carry over.
type Options int

const (
	HexTag           Options = 1
	HexAmp           Options = 2
	HexApos          Options = 4
	HexQuot          Options = 8
	UnescapedSlashes Options = 64
	PrettyPrint      Options = 128
	UnescapedUnicode Options = 256
)

// Default escapes HTML-sensitive characters and non-ASCII runes.
const Default = HexTag | HexApos | HexAmp | HexQuot

// Has reports whether every bit of flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// Validate checks that o is a usable bitmask.
func (o Options) Validate() error {
	if o < 0 {
		return domain.Errorf(domain.ErrCodeInvalidArgumentType, "encoding options %d is not a valid bitmask", int(o))
	}
	return nil
}

// ParseOptions reads a bitmask from its textual configuration form.
func ParseOptions(raw string) (Options, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalidConfigurationType,
			"encoding options must be an integer", err)
	}
	return fromInt(int64(v))
}

// FromValue converts a decoded configuration value (YAML or JSON) into a
// bitmask. Anything that is not an integer is a configuration error.
func FromValue(v any) (Options, error) {
	switch n := v.(type) {
	case int:
		return fromInt(int64(n))
	case int8:
		return fromInt(int64(n))
	case int16:
		return fromInt(int64(n))
	case int32:
		return fromInt(int64(n))
	case int64:
		return fromInt(n)
	case uint:
		return fromUint(uint64(n))
	case uint8:
		return fromInt(int64(n))
	case uint16:
		return fromInt(int64(n))
	case uint32:
		return fromInt(int64(n))
	case uint64:
		return fromUint(n)
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return fromInt(int64(n))
		}
	}
	return 0, domain.Errorf(domain.ErrCodeInvalidConfigurationType,
		"encoding options must be an integer, got %T", v)
}

func fromUint(n uint64) (Options, error) {
	if n > math.MaxInt32 {
		return 0, domain.Errorf(domain.ErrCodeInvalidConfigurationType, "encoding options %d overflows", n)
	}
	return fromInt(int64(n))
}

func fromInt(n int64) (Options, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, domain.Errorf(domain.ErrCodeInvalidConfigurationType,
			"encoding options %d is not a valid bitmask", n)
	}
	return Options(n), nil
}
