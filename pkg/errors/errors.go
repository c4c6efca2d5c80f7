package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email is already registered")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrInvalidInput = errors.New("invalid input data")

	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenNotRegistered = errors.New("token is not registered")

	ErrResetSessionInvalid = errors.New("reset session is invalid")
	ErrResetSessionExpired = errors.New("reset session has expired")
	ErrOAuthEmailMissing   = errors.New("identity provider did not return an email")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")

	ErrReportNotFound     = errors.New("report not found")
	ErrReportNotOwned     = errors.New("report belongs to another user")
	ErrReportAlreadyMatch = errors.New("lost report is already matched to another found report")

	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
	ErrImageType     = errors.New("only PNG and JPEG images are allowed")
	ErrImageMissing  = errors.New("image file is required")
)

// Error codes carried by AppError. Handlers map them onto HTTP statuses.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeWeakPassword      = "WEAK_PASSWORD"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConflict          = "CONFLICT"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the AppError code in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
