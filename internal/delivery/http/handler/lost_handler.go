package handler

import (
	"context"
	"net/http"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/usecase/report"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
)

type LostService interface {
	Create(ctx context.Context, userID uint, req *report.CreateLostRequest) (*report.LostResponse, error)
	ListMine(ctx context.Context, userID uint) ([]*report.LostResponse, error)
	ListAll(ctx context.Context) ([]*report.LostResponse, error)
	Get(ctx context.Context, lostID, userID uint, isAdmin bool) (*report.LostResponse, error)
	Update(ctx context.Context, lostID, userID uint, req *report.UpdateLostRequest) (*report.LostResponse, error)
	Delete(ctx context.Context, lostID, userID uint) error
	UpdateStatus(ctx context.Context, lostID uint, req *report.LostStatusRequest) (*report.LostResponse, error)
	AttachImage(ctx context.Context, lostID, userID uint, data []byte) (*report.LostResponse, error)
}

type LostHandler struct {
	service  LostService
	maxImage int64
}

func NewLostHandler(service LostService, maxImage int64) *LostHandler {
	return &LostHandler{service: service, maxImage: maxImage}
}

// RegisterRoutes expects router to be behind the auth middleware.
func (h *LostHandler) RegisterRoutes(router *gin.RouterGroup) {
	lost := router.Group("/lost")
	{
		lost.POST("", h.Create)
		lost.GET("/me", h.ListMine)
		lost.GET("", middleware.AdminOnly(), h.ListAll)
		lost.GET("/:id", h.Get)
		lost.PUT("/:id", h.Update)
		lost.DELETE("/:id", h.Delete)
		lost.PATCH("/:id/status", middleware.AdminOnly(), h.UpdateStatus)
		lost.POST("/:id/image", h.UploadImage)
	}
}

func (h *LostHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req report.CreateLostRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Lost report created successfully", created)
}

func (h *LostHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	reports, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost reports retrieved successfully", reports)
}

func (h *LostHandler) ListAll(c *gin.Context) {
	reports, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost reports retrieved successfully", reports)
}

func (h *LostHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lostID, ok := pathID(c, "id")
	if !ok {
		return
	}

	lost, err := h.service.Get(c.Request.Context(), lostID, userID, middleware.IsAdmin(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost report retrieved successfully", lost)
}

func (h *LostHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lostID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req report.UpdateLostRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), lostID, userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost report updated successfully", updated)
}

func (h *LostHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lostID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), lostID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost report deleted successfully", nil)
}

func (h *LostHandler) UpdateStatus(c *gin.Context) {
	lostID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req report.LostStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), lostID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lost report status updated successfully", updated)
}

func (h *LostHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lostID, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, err := readImage(c, h.maxImage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.service.AttachImage(c.Request.Context(), lostID, userID, data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image uploaded successfully", updated)
}
