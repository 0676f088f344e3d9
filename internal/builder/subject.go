package builder

import "github.com/fastygo/apiresponse/domain"

type subjectKind uint8

const (
	subjectNone subjectKind = iota
	subjectCode
	subjectMessage
)

// Subject names what a response is about: either an API code whose message
// comes from the registry, or a literal message sent with the generic code.
// The zero value is invalid.
type Subject struct {
	kind    subjectKind
	code    domain.ApiCode
	message string
}

// ByCode selects a registered API code.
func ByCode(code domain.ApiCode) Subject {
	return Subject{kind: subjectCode, code: code}
}

// ByMessage selects a literal message.
func ByMessage(message string) Subject {
	return Subject{kind: subjectMessage, message: message}
}

// Code returns the code and whether the subject carries one.
func (s Subject) Code() (domain.ApiCode, bool) {
	return s.code, s.kind == subjectCode
}

// Message returns the literal message and whether the subject carries one.
func (s Subject) Message() (string, bool) {
	return s.message, s.kind == subjectMessage
}
