// Package builder assembles response envelopes.
package builder

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/jsonenc"
	"github.com/fastygo/apiresponse/internal/payload"
	"github.com/fastygo/apiresponse/internal/registry"
)

// Settings is the configuration snapshot a Builder works with.
type Settings struct {
	EncodingOptions  *jsonenc.Options
	DataAlwaysObject bool
}

// Params describes a single response.
type Params struct {
	Success bool
	Subject Subject
	// Message, when set, is used verbatim instead of the code's template.
	Message string
	// MessageCode takes the message from another code's template. It cannot
	// be combined with Message.
	MessageCode *domain.ApiCode
	Data    any
	// HTTPStatus defaults to 200 on success and 400 on failure.
	HTTPStatus      int
	EncodingOptions *jsonenc.Options
	// Placeholders fill ":name" tokens of registry templates.
	Placeholders map[string]string
}

// Response is a built envelope ready to hand to the transport.
type Response struct {
	Envelope        domain.Envelope
	HTTPStatus      int
	EncodingOptions jsonenc.Options
}

// Body encodes the envelope with the resolved encoding options.
func (r Response) Body() ([]byte, error) {
	return jsonenc.Marshal(r.Envelope, r.EncodingOptions)
}

// Builder validates inputs against a registry and assembles envelopes.
// It is safe for concurrent use once the registry is fully populated.
type Builder struct {
	registry     *registry.Registry
	policy       jsonenc.Policy
	alwaysObject bool
}

// New creates a builder bound to reg and the settings snapshot.
func New(reg *registry.Registry, settings Settings) *Builder {
	return &Builder{
		registry:     reg,
		policy:       jsonenc.NewPolicy(settings.EncodingOptions),
		alwaysObject: settings.DataAlwaysObject,
	}
}

// Registry exposes the registry the builder validates against.
func (b *Builder) Registry() *registry.Registry {
	return b.registry
}

// Make builds the envelope described by p. No partial response is returned
// on error.
func (b *Builder) Make(p Params) (Response, error) {
	code, message, err := b.resolveSubject(p)
	if err != nil {
		return Response{}, err
	}

	status := p.HTTPStatus
	if status == 0 {
		status = DefaultHTTPStatus(p.Success)
	} else if status < minHTTPStatus || status > maxHTTPStatus {
		return Response{}, domain.Errorf(domain.ErrCodeInvalidArgumentType,
			"http status %d is outside [%d, %d]", status, minHTTPStatus, maxHTTPStatus)
	}

	if message == "" {
		templateCode := code
		if p.MessageCode != nil {
			templateCode = *p.MessageCode
		}
		template, err := b.registry.Resolve(templateCode)
		if err != nil {
			return Response{}, err
		}
		message = fillPlaceholders(template, code, status, p.Placeholders)
	}

	opts, err := b.policy.Resolve(p.EncodingOptions)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Envelope: domain.Envelope{
			Success: p.Success,
			Code:    code,
			Message: message,
			Data:    payload.Normalize(p.Data, b.alwaysObject),
		},
		HTTPStatus:      status,
		EncodingOptions: opts,
	}, nil
}

// Success builds a success response with the generic OK code.
func (b *Builder) Success(data any) (Response, error) {
	return b.Make(Params{Success: true, Subject: ByCode(domain.CodeOK), Data: data})
}

// SuccessWithCode builds a success response for code.
func (b *Builder) SuccessWithCode(code domain.ApiCode, data any) (Response, error) {
	return b.Make(Params{Success: true, Subject: ByCode(code), Data: data})
}

// Error builds a failure response for code.
func (b *Builder) Error(code domain.ApiCode, data any) (Response, error) {
	return b.Make(Params{Subject: ByCode(code), Data: data})
}

// ErrorWithMessage builds a failure response for code with a literal message.
func (b *Builder) ErrorWithMessage(code domain.ApiCode, message string) (Response, error) {
	return b.Make(Params{Subject: ByCode(code), Message: message})
}

const (
	minHTTPStatus = 100
	maxHTTPStatus = 599
)

// DefaultHTTPStatus is the status used when the caller does not pick one.
func DefaultHTTPStatus(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

func (b *Builder) resolveSubject(p Params) (domain.ApiCode, string, error) {
	if p.MessageCode != nil {
		if p.Message != "" {
			return 0, "", domain.NewError(domain.ErrCodeInvalidArgumentType,
				"message and message code are mutually exclusive")
		}
		if err := b.checkRange(*p.MessageCode); err != nil {
			return 0, "", err
		}
	}

	if code, ok := p.Subject.Code(); ok {
		if err := b.checkRange(code); err != nil {
			return 0, "", err
		}
		return code, p.Message, nil
	}

	if msg, ok := p.Subject.Message(); ok {
		code := domain.CodeOK
		if !p.Success {
			code = domain.CodeNoErrorMessage
		}
		if p.Message != "" {
			msg = p.Message
		}
		return code, msg, nil
	}

	return 0, "", domain.ErrMissingSubject
}

func (b *Builder) checkRange(code domain.ApiCode) error {
	if !b.registry.IsInRange(code) {
		return domain.Errorf(domain.ErrCodeCodeOutOfBounds,
			"api code %d is outside [0, %d]", code, b.registry.MaxCode())
	}
	return nil
}

func fillPlaceholders(template string, code domain.ApiCode, status int, extra map[string]string) string {
	if !strings.Contains(template, ":") {
		return template
	}
	values := map[string]string{
		"api_code":  strconv.Itoa(int(code)),
		"http_code": strconv.Itoa(status),
	}
	for k, v := range extra {
		values[k] = v
	}

	// Longest names first so ":api_code_name" is not eaten by ":api_code".
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	pairs := make([]string, 0, len(names)*2)
	for _, k := range names {
		pairs = append(pairs, ":"+k, values[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
