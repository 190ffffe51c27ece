package common

// MessageResponse is the only response body shape the public API returns
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Define type for error codes to enforce consistency. Codes are written to
// the operator log only; callers see a fixed message.
type ErrorCode string

// Standard error codes
const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeBotCheck        ErrorCode = "BOT_CHECK_FAILED"
	ErrCodeNotConfigured   ErrorCode = "NOT_CONFIGURED"
	ErrCodeDelivery        ErrorCode = "DELIVERY_FAILED"
	ErrCodeInternalServer  ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeEntityTooLarge  ErrorCode = "ENTITY_TOO_LARGE"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeForbiddenOrigin ErrorCode = "FORBIDDEN_ORIGIN"
)

// Fixed caller-visible messages
const (
	MsgSubmitted         = "送信が完了しました"
	MsgMissingFields     = "必須項目をすべて入力してください。"
	MsgBotCheckFailed    = "ボット検証に失敗しました。もう一度お試しください。"
	MsgServerError       = "サーバーエラーが発生しました。"
	MsgSubmissionFailed  = "送信に失敗しました。もう一度お試しください。"
	MsgRequestTooLarge   = "送信内容が大きすぎます。"
	MsgNotFound          = "ページが見つかりません。"
	MsgOriginNotAccepted = "このオリジンからのリクエストは許可されていません。"
)

// NewMessageResponse creates a response with a simple message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{
		Message: message,
	}
}
