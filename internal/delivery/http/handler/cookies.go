package handler

import (
	"net/http"
	"time"

	"lost-and-found/internal/config"
	"lost-and-found/internal/middleware"

	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauthState"

// cookieJar writes the session cookies with the configured attributes.
type cookieJar struct {
	secure   bool
	sameSite http.SameSite
	domain   string
	now      func() time.Time
}

func newCookieJar(cfg config.CookieConfig) cookieJar {
	return cookieJar{
		secure:   cfg.Secure,
		sameSite: cfg.SameSiteMode(),
		domain:   cfg.Domain,
		now:      time.Now,
	}
}

func (j cookieJar) set(c *gin.Context, name, value string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(j.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(j.sameSite)
	c.SetCookie(name, value, maxAge, "/", j.domain, j.secure, true)
}

func (j cookieJar) clear(c *gin.Context, name string) {
	c.SetSameSite(j.sameSite)
	c.SetCookie(name, "", -1, "/", j.domain, j.secure, true)
}

func (j cookieJar) setAccess(c *gin.Context, token string, expiresAt time.Time) {
	j.set(c, middleware.AccessTokenCookie, token, expiresAt)
}

func (j cookieJar) setRefresh(c *gin.Context, token string, expiresAt time.Time) {
	j.set(c, middleware.RefreshTokenCookie, token, expiresAt)
}
