package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"lost-and-found/internal/middleware"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

// pathID parses a positive numeric path parameter, writing a 400 when it
// is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return userID, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// readImage loads the multipart "image" field, reading at most one byte past
// limit so oversized uploads are detected without buffering them whole.
func readImage(c *gin.Context, limit int64) ([]byte, error) {
	header, err := c.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, appErrors.ErrImageTooLarge
		}
		return nil, appErrors.ErrImageMissing
	}
	if limit > 0 && header.Size > limit {
		return nil, appErrors.ErrImageTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := io.Reader(file)
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}
	return io.ReadAll(reader)
}
