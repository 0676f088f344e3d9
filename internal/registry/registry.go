// Package registry maps API codes to message templates.
//
// A Registry is populated during service initialization and only read
// afterwards, so lookups need no synchronization.
package registry

import (
	"sort"

	"github.com/fastygo/apiresponse/domain"
)

// Registry holds the code to template mapping and the legal code range.
type Registry struct {
	maxCode  domain.ApiCode
	messages map[domain.ApiCode]string
}

// New creates a registry seeded with the reserved codes. maxCode is the
// highest legal code and may not fall inside the reserved range.
func New(maxCode domain.ApiCode) (*Registry, error) {
	if maxCode < domain.MinUserCode {
		return nil, domain.Errorf(domain.ErrCodeCodeOutOfBounds,
			"max api code %d must be at least %d", maxCode, domain.MinUserCode)
	}
	messages := make(map[domain.ApiCode]string, len(domain.ReservedMessages))
	for code, msg := range domain.ReservedMessages {
		messages[code] = msg
	}
	return &Registry{maxCode: maxCode, messages: messages}, nil
}

// Register adds a user-range mapping.
func (r *Registry) Register(code domain.ApiCode, template string) error {
	if !r.IsInRange(code) {
		return outOfBounds(code, r.maxCode)
	}
	if code.IsReserved() {
		return domain.Errorf(domain.ErrCodeDuplicateCode, "api code %d is reserved", code)
	}
	if _, taken := r.messages[code]; taken {
		return domain.Errorf(domain.ErrCodeDuplicateCode, "api code %d is already registered", code)
	}
	if template == "" {
		return domain.Errorf(domain.ErrCodeInvalidArgumentType, "api code %d has an empty message", code)
	}
	r.messages[code] = template
	return nil
}

// RegisterAll registers every mapping in codes, in ascending code order, and
// stops at the first failure.
func (r *Registry) RegisterAll(codes map[domain.ApiCode]string) error {
	keys := make([]domain.ApiCode, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, code := range keys {
		if err := r.Register(code, codes[code]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the message template registered for code.
func (r *Registry) Resolve(code domain.ApiCode) (string, error) {
	msg, ok := r.messages[code]
	if !ok {
		return "", domain.Errorf(domain.ErrCodeUnknownCode, "api code %d has no registered message", code)
	}
	return msg, nil
}

// IsInRange reports whether 0 <= code <= MaxCode.
func (r *Registry) IsInRange(code domain.ApiCode) bool {
	return code >= 0 && code <= r.maxCode
}

// MinUserCode returns the first code available to integrators.
func (r *Registry) MinUserCode() domain.ApiCode { return domain.MinUserCode }

// MaxCode returns the highest legal code.
func (r *Registry) MaxCode() domain.ApiCode { return r.maxCode }

// Len returns the number of registered codes, reserved ones included.
func (r *Registry) Len() int { return len(r.messages) }

// Entries lists all mappings in ascending code order.
func (r *Registry) Entries() []domain.CodeMessage {
	out := make([]domain.CodeMessage, 0, len(r.messages))
	for code, msg := range r.messages {
		out = append(out, domain.CodeMessage{Code: code, Message: msg, Reserved: code.IsReserved()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func outOfBounds(code, max domain.ApiCode) error {
	return domain.Errorf(domain.ErrCodeCodeOutOfBounds, "api code %d is outside [0, %d]", code, max)
}
