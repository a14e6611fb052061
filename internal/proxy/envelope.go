package proxy

// ErrorEnvelope is the normalized failure shape returned to callers. Every
// error leaves the proxy wrapped in this envelope; nothing propagates as a
// raw transport failure.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewErrorEnvelope builds a failure envelope. details is included only when
// non-empty (development environments, unexpected errors).
func NewErrorEnvelope(message, details string) ErrorEnvelope {
	return ErrorEnvelope{
		Success: false,
		Error:   message,
		Details: details,
	}
}
