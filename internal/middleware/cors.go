package middleware

import (
	"slices"

	"lost-and-found/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origins. Credentials must be
// allowed for the auth cookies to travel cross-origin, and the request id
// header is always exposed so the frontend can quote it in bug reports.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	exposed := slices.Clone(cfg.ExposedHeaders)
	if !slices.Contains(exposed, RequestIDHeader) {
		exposed = append(exposed, RequestIDHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
