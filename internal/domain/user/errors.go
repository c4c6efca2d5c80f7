package user

import (
	"fmt"

	appErrors "lost-and-found/pkg/errors"
)

var (
	ErrUserNotFound      = fmt.Errorf("user: %w", appErrors.ErrUserNotFound)
	ErrUserAlreadyExists = fmt.Errorf("user: %w", appErrors.ErrUserAlreadyExists)
	ErrTokenNotFound     = fmt.Errorf("token record: %w", appErrors.ErrTokenNotRegistered)
	ErrOTPNotFound       = fmt.Errorf("otp: %w", appErrors.ErrResetSessionInvalid)
)
