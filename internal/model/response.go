package model

// FieldError ties a validation or lookup failure to the request field that
// caused it. Errors are always carried as an ordered list, in the order the
// rules were declared, and are never deduplicated.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the uniform body for every API reply, success or failure.
// Count is only populated by collection endpoints that report it (merch).
// Detail carries the raw diagnostic of a server failure and is only filled
// outside production.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Detail  string       `json:"error,omitempty"`
}
