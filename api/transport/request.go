package transport

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/internal/jsonenc"
)

// MakeRequest is the body of POST /api/v1/responses. Code accepts either an
// integer API code or a literal message string. Message does the same: an
// integer takes the message from that code's template.
type MakeRequest struct {
	Success         bool              `json:"success"`
	Code            json.RawMessage   `json:"code"`
	Message         json.RawMessage   `json:"message"`
	Data            json.RawMessage   `json:"data"`
	HTTPStatus      int               `json:"http_status"`
	EncodingOptions json.RawMessage   `json:"encoding_options"`
	Placeholders    map[string]string `json:"placeholders"`
}

// Params converts the request into builder params, rejecting values of the
// wrong JSON type.
func (r MakeRequest) Params() (builder.Params, error) {
	msgCode, msg, msgIsCode, err := codeOrText("message", r.Message)
	if err != nil {
		return builder.Params{}, err
	}

	params := builder.Params{
		Success:      r.Success,
		HTTPStatus:   r.HTTPStatus,
		Placeholders: r.Placeholders,
	}
	if msgIsCode {
		params.MessageCode = &msgCode
	}

	code, text, isCode, err := codeOrText("code", r.Code)
	switch {
	case err != nil:
		return builder.Params{}, err
	case isCode:
		params.Subject = builder.ByCode(code)
		params.Message = msg
	case present(r.Code):
		params.Subject = builder.ByMessage(text)
	default:
		params.Subject = builder.ByMessage(msg)
	}

	if len(r.Data) > 0 {
		params.Data = r.Data
	}

	if present(r.EncodingOptions) {
		var v any
		if err := json.Unmarshal(r.EncodingOptions, &v); err != nil {
			return builder.Params{}, domain.WrapError(domain.ErrCodeInvalid, "malformed encoding_options", err)
		}
		opts, err := jsonenc.FromValue(v)
		if err != nil {
			return builder.Params{}, domain.WrapError(domain.ErrCodeInvalidArgumentType,
				"encoding_options must be an integer bitmask", err)
		}
		params.EncodingOptions = &opts
	}
	return params, nil
}

// codeOrText classifies an int-or-string field. Absent and null values yield
// an empty text.
func codeOrText(field string, raw json.RawMessage) (domain.ApiCode, string, bool, error) {
	if !present(raw) {
		return 0, "", false, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, "", false, domain.WrapError(domain.ErrCodeInvalid, "malformed "+field, err)
	}
	switch c := v.(type) {
	case float64:
		if c != math.Trunc(c) {
			return 0, "", false, domain.Errorf(domain.ErrCodeInvalidArgumentType, "%s %v is not an integer", field, c)
		}
		if c < float64(math.MinInt) || c >= -float64(math.MinInt) {
			return 0, "", false, domain.Errorf(domain.ErrCodeCodeOutOfBounds, "%s %v is outside the api code range", field, c)
		}
		return domain.ApiCode(int(c)), "", true, nil
	case string:
		return 0, c, false, nil
	default:
		return 0, "", false, domain.Errorf(domain.ErrCodeInvalidArgumentType,
			"%s must be an integer or a string, got %s", field, jsonType(v))
	}
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func jsonType(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
