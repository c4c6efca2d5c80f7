package handler

import (
	"context"
	"net/http"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/usecase/report"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FoundService interface {
	Create(ctx context.Context, req *report.CreateFoundRequest) (*report.FoundResponse, error)
	CreateByAdmin(ctx context.Context, adminID uint, req *report.CreateFoundRequest) (*report.FoundResponse, error)
	List(ctx context.Context) ([]*report.FoundResponse, error)
	ListAdminAuthored(ctx context.Context) ([]*report.FoundResponse, error)
	ListPending(ctx context.Context) ([]*report.FoundResponse, error)
	ListHistory(ctx context.Context) ([]*report.FoundResponse, error)
	Get(ctx context.Context, foundID uint) (*report.FoundResponse, error)
	Update(ctx context.Context, foundID uint, req *report.UpdateFoundRequest) (*report.FoundResponse, error)
	UpdateStatus(ctx context.Context, foundID uint, req *report.FoundStatusRequest) (*report.FoundResponse, error)
	Delete(ctx context.Context, foundID uint) error
	AttachImage(ctx context.Context, foundID uint, data []byte) (*report.FoundResponse, error)
}

type FoundHandler struct {
	service  FoundService
	maxImage int64
}

func NewFoundHandler(service FoundService, maxImage int64) *FoundHandler {
	return &FoundHandler{service: service, maxImage: maxImage}
}

// RegisterRoutes expects router to be behind the auth middleware. Writes are
// admin only; every authenticated user can browse.
func (h *FoundHandler) RegisterRoutes(router *gin.RouterGroup) {
	found := router.Group("/found")
	{
		found.GET("", h.List)
		found.GET("/admin", h.ListAdminAuthored)
		found.GET("/user/pending", h.ListPending)
		found.GET("/user/history", h.ListHistory)
		found.GET("/:id", h.Get)
	}

	admin := found.Group("", middleware.AdminOnly())
	{
		admin.POST("", h.Create)
		admin.POST("/admin", h.CreateByAdmin)
		admin.PATCH("/:id", h.Update)
		admin.PATCH("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/image", h.UploadImage)
	}
}

func (h *FoundHandler) Create(c *gin.Context) {
	var req report.CreateFoundRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Found report created successfully", created)
}

// CreateByAdmin records an item the admin already handed back: it starts CLAIMED.
func (h *FoundHandler) CreateByAdmin(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req report.CreateFoundRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateByAdmin(c.Request.Context(), adminID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Found report created successfully", created)
}

func (h *FoundHandler) List(c *gin.Context) {
	h.respondList(c, h.service.List)
}

func (h *FoundHandler) ListAdminAuthored(c *gin.Context) {
	h.respondList(c, h.service.ListAdminAuthored)
}

func (h *FoundHandler) ListPending(c *gin.Context) {
	h.respondList(c, h.service.ListPending)
}

func (h *FoundHandler) ListHistory(c *gin.Context) {
	h.respondList(c, h.service.ListHistory)
}

func (h *FoundHandler) respondList(c *gin.Context, list func(context.Context) ([]*report.FoundResponse, error)) {
	reports, err := list(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Found reports retrieved successfully", reports)
}

func (h *FoundHandler) Get(c *gin.Context) {
	foundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), foundID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Found report retrieved successfully", found)
}

func (h *FoundHandler) Update(c *gin.Context) {
	foundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req report.UpdateFoundRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), foundID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Found report updated successfully", updated)
}

func (h *FoundHandler) UpdateStatus(c *gin.Context) {
	foundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req report.FoundStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), foundID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Found report status updated successfully", updated)
}

func (h *FoundHandler) Delete(c *gin.Context) {
	foundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), foundID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Found report deleted successfully", nil)
}

func (h *FoundHandler) UploadImage(c *gin.Context) {
	foundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, err := readImage(c, h.maxImage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.service.AttachImage(c.Request.Context(), foundID, data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image uploaded successfully", updated)
}
