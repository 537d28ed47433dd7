package response

// ErrorResponse is the uniform error envelope: success is always false,
// message is human-readable, error carries detail (suppressed in prod for
// unclassified failures).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewError(message, detail string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	}
}

// OK is the minimal success envelope for operations with no payload.
type OK struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewOK(message string) OK {
	return OK{Success: true, Message: message}
}
