package reporterrors

import (
	"net/http"

	"leave-portal/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNoReportScope = apperror.New(
		apperror.CodeForbidden,
		"reports require team lead or manager access",
		http.StatusForbidden,
	)
)
