package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyContact   = "contact"
	ContextKeyRequestID = "RequestID"
	ContextKeyErrorCode = "errorCode"
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)
