package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lost-and-found/internal/config"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/usecase/auth"
	"lost-and-found/internal/usecase/user"
	appErrors "lost-and-found/pkg/errors"

	"github.com/gin-gonic/gin"
)

type mockAuthService struct {
	RegisterFunc      func(ctx context.Context, req *auth.RegisterRequest) (*user.UserResponse, error)
	LoginFunc         func(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error)
	ExternalLoginFunc func(ctx context.Context, profile *auth.ExternalProfile) (*auth.LoginResult, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*auth.IssuedToken, error)
	LogoutFunc        func(ctx context.Context, refreshToken string) error
	RequestResetFunc  func(ctx context.Context, req *auth.ForgotPasswordRequest) error
	VerifyResetFunc   func(ctx context.Context, session string) (*auth.ResetSessionResponse, error)
	CompleteResetFunc func(ctx context.Context, req *auth.ResetPasswordRequest) error
}

func (m *mockAuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*user.UserResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthService) LoginWithExternalProvider(ctx context.Context, profile *auth.ExternalProfile) (*auth.LoginResult, error) {
	return m.ExternalLoginFunc(ctx, profile)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*auth.IssuedToken, error) {
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutFunc(ctx, refreshToken)
}

func (m *mockAuthService) RequestReset(ctx context.Context, req *auth.ForgotPasswordRequest) error {
	return m.RequestResetFunc(ctx, req)
}

func (m *mockAuthService) VerifyReset(ctx context.Context, session string) (*auth.ResetSessionResponse, error) {
	return m.VerifyResetFunc(ctx, session)
}

func (m *mockAuthService) CompleteReset(ctx context.Context, req *auth.ResetPasswordRequest) error {
	return m.CompleteResetFunc(ctx, req)
}

type profileReaderFunc func(ctx context.Context, userID uint) (*user.UserResponse, error)

func (f profileReaderFunc) GetProfile(ctx context.Context, userID uint) (*user.UserResponse, error) {
	return f(ctx, userID)
}

type fakeOAuth struct {
	profile *auth.ExternalProfile
	err     error
}

func (f *fakeOAuth) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeOAuth) Exchange(context.Context, string) (*auth.ExternalProfile, error) {
	return f.profile, f.err
}

func testAuthConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://frontend.test"},
		Cookie: config.CookieConfig{Secure: true, SameSite: "lax"},
	}
}

func sessionResult() *auth.LoginResult {
	now := time.Now()
	return &auth.LoginResult{
		User: &user.UserResponse{ID: 7, Name: "Rina", Email: "rina@example.com", Role: "User"},
		Tokens: &auth.TokenPair{
			Access:  auth.IssuedToken{Token: "access-jwt", ExpiresAt: now.Add(30 * time.Minute)},
			Refresh: auth.IssuedToken{Token: "refresh-jwt", ExpiresAt: now.Add(24 * time.Hour)},
		},
	}
}

func newAuthTestRouter(svc AuthService, oauth auth.OAuthProvider) *gin.Engine {
	profiles := profileReaderFunc(func(_ context.Context, id uint) (*user.UserResponse, error) {
		return &user.UserResponse{ID: id, Email: "rina@example.com"}, nil
	})
	h := NewAuthHandler(svc, profiles, oauth, testAuthConfig())
	return newTestRouter(func(api *gin.RouterGroup) {
		h.RegisterRoutes(api, func(c *gin.Context) {
			if _, ok := middleware.CurrentUserID(c); !ok {
				c.AbortWithStatus(http.StatusUnauthorized)
			}
		})
	})
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &mockAuthService{
		LoginFunc: func(_ context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
			if req.Email != "rina@example.com" {
				t.Errorf("expected sanitized email, got %q", req.Email)
			}
			return sessionResult(), nil
		},
	}
	r := newAuthTestRouter(svc, nil)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "  Rina@Example.com ", "password": "secret1"}, 0, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	access := cookieByName(w, middleware.AccessTokenCookie)
	if access == nil || access.Value != "access-jwt" {
		t.Fatalf("access cookie not set: %+v", access)
	}
	if !access.HttpOnly || !access.Secure || access.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie attributes %+v", access)
	}
	if access.MaxAge <= 0 || access.MaxAge > 1800 {
		t.Errorf("expected Max-Age within access ttl, got %d", access.MaxAge)
	}
	if refresh := cookieByName(w, middleware.RefreshTokenCookie); refresh == nil || refresh.Value != "refresh-jwt" {
		t.Errorf("refresh cookie not set: %+v", refresh)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if _, ok := data["user"]; !ok || len(data) != 1 {
		t.Errorf("expected only user in body, got %s", env.Data)
	}
	if strings.Contains(w.Body.String(), "access-jwt") {
		t.Error("token leaked into response body")
	}
}

func TestAuthHandler_LoginFailure(t *testing.T) {
	svc := &mockAuthService{
		LoginFunc: func(context.Context, *auth.LoginRequest) (*auth.LoginResult, error) {
			return nil, appErrors.ErrInvalidCredentials
		},
	}
	r := newAuthTestRouter(svc, nil)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "rina@example.com", "password": "nope"}, 0, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if env.Message != appErrors.ErrInvalidCredentials.Error() {
		t.Errorf("unexpected message %q", env.Message)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookies expected on failed login")
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &mockAuthService{
		RefreshFunc: func(_ context.Context, token string) (*auth.IssuedToken, error) {
			if token == "" {
				return nil, appErrors.ErrUnauthorized
			}
			return &auth.IssuedToken{Token: "new-access", ExpiresAt: time.Now().Add(time.Minute)}, nil
		},
	}
	r := newAuthTestRouter(svc, nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/refresh", nil, 0, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "refresh-jwt"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if access := cookieByName(w, middleware.AccessTokenCookie); access == nil || access.Value != "new-access" {
		t.Errorf("expected rotated access cookie, got %+v", access)
	}
}

func TestAuthHandler_LogoutAlwaysSucceeds(t *testing.T) {
	svc := &mockAuthService{
		LogoutFunc: func(context.Context, string) error {
			return appErrors.ErrTokenInvalid
		},
	}
	r := newAuthTestRouter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		cookie := cookieByName(w, name)
		if cookie == nil || cookie.MaxAge >= 0 {
			t.Errorf("expected %s cleared, got %+v", name, cookie)
		}
	}
}

func TestAuthHandler_VerifyReset(t *testing.T) {
	svc := &mockAuthService{
		VerifyResetFunc: func(_ context.Context, session string) (*auth.ResetSessionResponse, error) {
			if session != "abc" {
				return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset session is invalid", appErrors.ErrResetSessionInvalid)
			}
			return &auth.ResetSessionResponse{Email: "rina@example.com"}, nil
		},
	}
	r := newAuthTestRouter(svc, nil)

	if w, _ := doJSON(t, r, http.MethodGet, "/api/auth/verify-reset", nil, 0, ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without session, got %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodGet, "/api/auth/verify-reset?session=zzz", nil, 0, ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad session, got %d", w.Code)
	}
	if w, _ := doJSON(t, r, http.MethodGet, "/api/auth/verify-reset?session=abc", nil, 0, ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_ForgotPasswordUnknownEmail(t *testing.T) {
	svc := &mockAuthService{
		RequestResetFunc: func(context.Context, *auth.ForgotPasswordRequest) error {
			return appErrors.ErrUserNotFound
		},
	}
	r := newAuthTestRouter(svc, nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "ghost@example.com"}, 0, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAuthHandler_GoogleDisabled(t *testing.T) {
	r := newAuthTestRouter(&mockAuthService{}, nil)

	w, _ := doJSON(t, r, http.MethodGet, "/api/auth/google", nil, 0, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAuthHandler_GoogleFlow(t *testing.T) {
	var gotProfile *auth.ExternalProfile
	svc := &mockAuthService{
		ExternalLoginFunc: func(_ context.Context, profile *auth.ExternalProfile) (*auth.LoginResult, error) {
			gotProfile = profile
			return sessionResult(), nil
		},
	}
	oauth := &fakeOAuth{profile: &auth.ExternalProfile{Provider: "google", ProviderID: "g-1", Email: "rina@example.com"}}
	r := newAuthTestRouter(svc, oauth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	state := cookieByName(w, oauthStateCookie)
	if state == nil || !strings.HasSuffix(w.Header().Get("Location"), state.Value) {
		t.Fatalf("state cookie does not match redirect: %+v, %s", state, w.Header().Get("Location"))
	}

	t.Run("state mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=forged&code=c", nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state.Value})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state="+state.Value+"&code=c", nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state.Value})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusFound || w.Header().Get("Location") != "http://frontend.test" {
			t.Fatalf("expected redirect to frontend, got %d %s", w.Code, w.Header().Get("Location"))
		}
		if cookieByName(w, middleware.AccessTokenCookie) == nil {
			t.Error("expected session cookies after callback")
		}
		if gotProfile == nil || gotProfile.ProviderID != "g-1" {
			t.Errorf("unexpected profile %+v", gotProfile)
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	r := newAuthTestRouter(&mockAuthService{}, nil)

	if w, _ := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, 0, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, 7, "User")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(string(env.Data), `"id":7`) {
		t.Errorf("unexpected data %s", env.Data)
	}
}
