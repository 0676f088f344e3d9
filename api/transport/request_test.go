package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/jsonenc"
)

func decodeRequest(t *testing.T, body string) MakeRequest {
	t.Helper()
	var req MakeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestMakeRequest_Subject(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode *domain.ApiCode
		wantMsg  string
		errCode  domain.ErrorCode
	}{
		{name: "integer code", body: `{"code": 21, "message": "explicit"}`, wantCode: codePtr(21), wantMsg: "explicit"},
		{name: "string code is a message", body: `{"code": "Saved"}`, wantMsg: "Saved"},
		{name: "missing code uses message", body: `{"message": "Hello"}`, wantMsg: "Hello"},
		{name: "null code uses message", body: `{"code": null, "message": "Hello"}`, wantMsg: "Hello"},
		{name: "array", body: `{"code": []}`, errCode: domain.ErrCodeInvalidArgumentType},
		{name: "object", body: `{"code": {}}`, errCode: domain.ErrCodeInvalidArgumentType},
		{name: "boolean", body: `{"code": true}`, errCode: domain.ErrCodeInvalidArgumentType},
		{name: "fraction", body: `{"code": 1.5}`, errCode: domain.ErrCodeInvalidArgumentType},
		{name: "huge code", body: `{"code": 1e20}`, errCode: domain.ErrCodeCodeOutOfBounds},
		{name: "huge negative code", body: `{"code": -1e20}`, errCode: domain.ErrCodeCodeOutOfBounds},
		{name: "boolean message", body: `{"code": 0, "message": false}`, errCode: domain.ErrCodeInvalidArgumentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := decodeRequest(t, tt.body).Params()
			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, domain.IsDomainError(err, tt.errCode), "got %v", err)
				return
			}
			require.NoError(t, err)

			code, isCode := params.Subject.Code()
			if tt.wantCode != nil {
				require.True(t, isCode)
				assert.Equal(t, *tt.wantCode, code)
				assert.Equal(t, tt.wantMsg, params.Message)
				return
			}
			msg, isMsg := params.Subject.Message()
			require.True(t, isMsg)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMakeRequest_MessageCode(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSubject *domain.ApiCode
		wantMsgCode *domain.ApiCode
		errCode     domain.ErrorCode
	}{
		{name: "code and message code", body: `{"code": 21, "message": 20}`, wantSubject: codePtr(21), wantMsgCode: codePtr(20)},
		{name: "message code alone", body: `{"message": 20}`, wantMsgCode: codePtr(20)},
		{name: "string message", body: `{"code": 21, "message": "Saved"}`, wantSubject: codePtr(21)},
		{name: "fractional message code", body: `{"code": 21, "message": 2.5}`, errCode: domain.ErrCodeInvalidArgumentType},
		{name: "huge message code", body: `{"code": 21, "message": 1e20}`, errCode: domain.ErrCodeCodeOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := decodeRequest(t, tt.body).Params()
			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, domain.IsDomainError(err, tt.errCode), "got %v", err)
				return
			}
			require.NoError(t, err)

			code, isCode := params.Subject.Code()
			if tt.wantSubject != nil {
				require.True(t, isCode)
				assert.Equal(t, *tt.wantSubject, code)
			} else {
				msg, isMsg := params.Subject.Message()
				require.True(t, isMsg)
				assert.Empty(t, msg)
			}
			assert.Equal(t, tt.wantMsgCode, params.MessageCode)
		})
	}
}

func TestMakeRequest_EncodingOptions(t *testing.T) {
	params, err := decodeRequest(t, `{"code": 0, "encoding_options": 271}`).Params()
	require.NoError(t, err)
	require.NotNil(t, params.EncodingOptions)
	assert.Equal(t, jsonenc.Default|jsonenc.UnescapedUnicode, *params.EncodingOptions)

	params, err = decodeRequest(t, `{"code": 0}`).Params()
	require.NoError(t, err)
	assert.Nil(t, params.EncodingOptions)

	_, err = decodeRequest(t, `{"code": 0, "encoding_options": []}`).Params()
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidArgumentType))
}

func TestMakeRequest_Data(t *testing.T) {
	params, err := decodeRequest(t, `{"code": 0, "data": {"a": 1}}`).Params()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(params.Data.(json.RawMessage)))

	params, err = decodeRequest(t, `{"code": 0}`).Params()
	require.NoError(t, err)
	assert.Nil(t, params.Data)
}

func codePtr(c domain.ApiCode) *domain.ApiCode { return &c }
