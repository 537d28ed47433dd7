package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Success: false,
		Message: "Invalid request format",
		Error:   "invalid_request",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Success: false,
		Message: "Authentication required",
		Error:   "unauthorized",
	}

	ErrAdminRequired = ErrorResponse{
		Success: false,
		Message: "Admin access required",
		Error:   "forbidden",
	}

	ErrNotFound = ErrorResponse{
		Success: false,
		Message: "Resource not found",
		Error:   "not_found",
	}

	// ErrStoreTimeout maps storage.ErrTimeout to actionable guidance
	// instead of a bare 500.
	ErrStoreTimeout = ErrorResponse{
		Success: false,
		Message: "The query took too long to execute. Try requesting a smaller page or narrowing the search.",
		Error:   "timeout",
	}
)
