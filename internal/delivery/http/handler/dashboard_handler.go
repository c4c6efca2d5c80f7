package handler

import (
	"context"
	"net/http"

	"lost-and-found/internal/middleware"
	"lost-and-found/internal/usecase/dashboard"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardService interface {
	Admin(ctx context.Context) (*dashboard.AdminCounts, error)
	User(ctx context.Context, userID uint) (*dashboard.UserCounts, error)
}

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/dashboard")
	{
		group.GET("/admin", middleware.AdminOnly(), h.Admin)
		group.GET("/user", h.User)
	}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	counts, err := h.service.Admin(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", counts)
}

func (h *DashboardHandler) User(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	counts, err := h.service.User(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", counts)
}
