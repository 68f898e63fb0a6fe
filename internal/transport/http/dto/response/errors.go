package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "unauthenticated",
		Details: "Could not validate credentials",
	}
)
