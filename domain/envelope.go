package domain

// Envelope is the canonical response body. Data is always serialized, even
// when it is null.
type Envelope struct {
	Success bool    `json:"success"`
	Code    ApiCode `json:"code"`
	Message string  `json:"message"`
	Data    any     `json:"data"`
}
