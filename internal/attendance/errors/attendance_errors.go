package attendanceerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHoursFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hours filter, expected a number",
		http.StatusBadRequest,
	)
	ErrInvalidTrendKind = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown trend kind",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateRecord = apperror.New(
		apperror.CodeConflict,
		"Attendance record already exists for this employee, date and type",
		http.StatusConflict,
	)
)
