package apperror

const (
	// Upstream API errors
	CodeFetchFailed  = "FETCH_FAILED"
	CodeDecodeFailed = "DECODE_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNoPeriods    = "NO_PERIODS"

	// Local errors
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeWriteFailed   = "WRITE_FAILED"
	CodeInternalError = "INTERNAL_ERROR"
)
