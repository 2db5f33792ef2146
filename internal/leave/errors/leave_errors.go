package leaveerrors

import (
	"net/http"

	"leave-portal/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester or an approver may modify this request",
		http.StatusForbidden,
	)
	ErrApproveOutsideScope = apperror.New(
		apperror.CodeForbidden,
		"this request is outside your approval scope",
		http.StatusForbidden,
	)
	ErrDirectApproveForbidden = apperror.New(
		apperror.CodeForbidden,
		"only an approver may create a request in approved status",
		http.StatusForbidden,
	)
	ErrReconciliationConflict = apperror.New(
		apperror.CodeConflict,
		"the request could not be saved due to a concurrent change, please retry",
		http.StatusConflict,
	)
	ErrInvalidActionToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired action token",
		http.StatusUnauthorized,
	)
	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"unknown action",
		http.StatusBadRequest,
	)
)
