package types

const (
	ErrInvalidInput       = "Invalid input"
	ErrDatabaseError      = "Database error"
	ErrUnauthorized       = "Unauthorized access"
	ErrInvalidCredentials = "Invalid credentials"
	ErrInternalError      = "internal server error"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
