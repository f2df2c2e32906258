package models

// Public error messages returned to clients.
const (
	MsgNoFile        = "No file uploaded"
	MsgNotImage      = "Only image files are allowed"
	MsgInvalidCrop   = "Invalid crop coordinates or dimensions"
	MsgFileTooLarge  = "File too large"
	MsgInternalError = "Internal Server Error"
)

const (
	HealthMessage  = "Image Crop API is running 🚀"
	ContentTypePNG = "image/png"
)

// ErrorResponse is the body of every failed crop request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
	Err     error
}

func NewValidationError(message string, err error) *ValidationError {
	return &ValidationError{Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
