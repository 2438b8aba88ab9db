package apperror

import "net/http"

var (
	ErrUnauthorized = New(
		CodeUnauthorized,
		"The API rejected the auth token",
		http.StatusUnauthorized,
	)

	ErrNoPeriods = New(
		CodeNoPeriods,
		"No process periods returned by the API",
		0,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		0,
	)
)
