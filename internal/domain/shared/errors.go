package shared

// DomainError carries a stable UPPER_SNAKE code alongside a human-readable
// message. The HTTP layer maps codes to status codes; messages go to clients
// verbatim, so they must never leak internals.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrNotFound is the shared absence error. Repositories return this one
// instance so callers can test with errors.Is.
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
