package employeeerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeConflict,
		"Employee ID or name already registered",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown employee role",
		http.StatusBadRequest,
	)
	ErrInvalidFaceImage = apperror.New(
		apperror.CodeInvalidInput,
		"Face image could not be decoded",
		http.StatusBadRequest,
	)
	ErrNoFaceDetected = apperror.New(
		apperror.CodeInvalidInput,
		"No face detected in the registration photo",
		http.StatusUnprocessableEntity,
	)
)
