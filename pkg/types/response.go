package types

// Envelope is the uniform response shape shared with the legacy admin and
// customer frontends: success flag, human-readable message, optional payload
// and optional field-level errors.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}
