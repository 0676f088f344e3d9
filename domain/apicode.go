package domain

// ApiCode is the numeric status identifier carried in every envelope,
// independent of the HTTP status.
type ApiCode int

// Reserved codes owned by the registry. Integrators cannot reassign them.
const (
	CodeOK                        ApiCode = 0
	CodeNoErrorMessage            ApiCode = 1
	CodeExHTTPNotFound            ApiCode = 10
	CodeExHTTPServiceUnavailable  ApiCode = 11
	CodeExHTTPException           ApiCode = 12
	CodeExUncaughtException       ApiCode = 13
	CodeExAuthenticationException ApiCode = 14
	CodeExValidationException     ApiCode = 15
)

const (
	// ReservedMaxCode is the last code of the reserved range [0, ReservedMaxCode].
	ReservedMaxCode ApiCode = 19
	// MinUserCode is the first code integrators may assign.
	MinUserCode ApiCode = ReservedMaxCode + 1
	// DefaultMaxCode is used when no upper bound is configured.
	DefaultMaxCode ApiCode = 1023
)

// ReservedMessages holds the templates of the reserved range.
var ReservedMessages = map[ApiCode]string{
	CodeOK:                        "OK",
	CodeNoErrorMessage:            "Error #:api_code",
	CodeExHTTPNotFound:            "Unknown method",
	CodeExHTTPServiceUnavailable:  "Service maintenance in progress",
	CodeExHTTPException:           "HTTP exception :http_code",
	CodeExUncaughtException:       "Uncaught exception",
	CodeExAuthenticationException: "Not authorized",
	CodeExValidationException:     "Invalid data",
}

// IsReserved reports whether c belongs to the reserved range.
func (c ApiCode) IsReserved() bool {
	return c >= 0 && c <= ReservedMaxCode
}

// CodeMessage pairs a code with its message template.
type CodeMessage struct {
	Code     ApiCode `json:"code"`
	Message  string  `json:"message"`
	Reserved bool    `json:"reserved"`
}
