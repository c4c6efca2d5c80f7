package middleware

import "github.com/gin-gonic/gin"

// SecurityHeadersMiddleware sets the browser hardening headers. HSTS is only
// sent in production, where TLS terminates in front of the API.
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	csp := "default-src 'self'; img-src 'self' data: https:; frame-ancestors 'none'"

	return func(c *gin.Context) {
		headers := c.Writer.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Content-Security-Policy", csp)
		// the frontend origin embeds report images
		headers.Set("Cross-Origin-Resource-Policy", "cross-origin")
		headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		if production {
			headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
