package apperrors

import (
	"net/http"
)

// Factories wrapping repository errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predeclared static errors.

// Auth and accounts.

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// Partners.

var ErrPartnerNotApproved = New(
	CodeForbidden,
	"partner",
	"Partner account is not approved yet",
	http.StatusForbidden,
)

var ErrPartnerStatusFinal = New(
	CodeInvalidStatus,
	"partner",
	"Partner status is final and cannot change",
	http.StatusConflict,
)

var ErrEmptyCapabilities = New(
	CodeValidationFailed,
	"partner",
	"At least one capability is required",
	http.StatusBadRequest,
)

// Training requests and quotes.

var ErrRequestNotFound = New(
	CodeNotFound,
	"request",
	"Training request not found",
	http.StatusNotFound,
)

var ErrQuoteAlreadySubmitted = New(
	CodeAlreadyExists,
	"quote",
	"A quote for this request was already submitted",
	http.StatusConflict,
)

// Chat.

var ErrRoomNotFound = New(
	CodeNotFound,
	"chat",
	"Chat room not found",
	http.StatusNotFound,
)

var ErrRoomAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to chat room denied",
	http.StatusForbidden,
)

// Uploads.

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
