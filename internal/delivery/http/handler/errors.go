package handler

import (
	"errors"
	"net/http"

	"lost-and-found/internal/middleware"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondWithError translates service errors into the response envelope.
// Coded AppErrors win over the sentinels they wrap.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := appErrorStatus(appErr.Code); ok {
			utils.ErrorResponse(c, status, appErr.Message)
			return
		}
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, appErrors.ErrImageTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, appErrors.ErrImageTooLarge.Error())
	case errors.Is(err, appErrors.ErrImageType),
		errors.Is(err, appErrors.ErrImageMissing),
		errors.Is(err, appErrors.ErrInvalidInput),
		errors.Is(err, appErrors.ErrOAuthEmailMissing),
		errors.Is(err, appErrors.ErrOAuthStateMismatch),
		errors.Is(err, appErrors.ErrResetSessionInvalid),
		errors.Is(err, appErrors.ErrResetSessionExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrInvalidCredentials.Error())
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenInvalid),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrTokenNotRegistered),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrInsufficientPermissions),
		errors.Is(err, appErrors.ErrReportNotOwned):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, appErrors.ErrReportNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, appErrors.ErrReportAlreadyMatch):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case appErr != nil:
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
	default:
		middleware.RequestLogger(c).Error("Internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func appErrorStatus(code string) (int, bool) {
	switch code {
	case appErrors.CodeValidation,
		appErrors.CodeWeakPassword,
		appErrors.CodeBadRequest,
		appErrors.CodeInvalidStatus:
		return http.StatusBadRequest, true
	case appErrors.CodeInvalidTransition, appErrors.CodeConflict:
		return http.StatusConflict, true
	case appErrors.CodeForbidden:
		return http.StatusForbidden, true
	case appErrors.CodeNotFound:
		return http.StatusNotFound, true
	}
	return 0, false
}
