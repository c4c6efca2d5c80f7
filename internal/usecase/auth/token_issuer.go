package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lost-and-found/internal/config"
	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/internal/logger"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Claims is the payload of both access and refresh tokens. The JWT ID names
// the server-side record that keeps the token alive.
type Claims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}

// TokenIssuer signs access and refresh tokens and tracks them in the token
// repository so they can be revoked before they expire.
type TokenIssuer struct {
	tokens        domainUser.TokenRepository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(tokens domainUser.TokenRepository, cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		tokens:        tokens,
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) IssueTokenPair(ctx context.Context, user *domainUser.User) (*TokenPair, error) {
	access, err := t.issue(ctx, user.ID, user.Email, string(user.Role), domainUser.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := t.issue(ctx, user.ID, user.Email, string(user.Role), domainUser.TokenRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: *access, Refresh: *refresh}, nil
}

// RotateAccessToken issues a fresh access token for a live refresh token.
// The refresh token itself is not rotated.
func (t *TokenIssuer) RotateAccessToken(ctx context.Context, refreshToken string) (*IssuedToken, error) {
	claims, err := t.verify(ctx, refreshToken, domainUser.TokenRefresh)
	if err != nil {
		logger.Warn("Token refresh rejected",
			zap.String("event", "token_refresh_failed"),
			zap.Error(err),
		)
		return nil, err
	}

	return t.issue(ctx, claims.UserID, claims.Email, claims.Role, domainUser.TokenAccess)
}

// VerifyAccessToken checks the signature and that the token is still on record.
func (t *TokenIssuer) VerifyAccessToken(ctx context.Context, accessToken string) (*Claims, error) {
	return t.verify(ctx, accessToken, domainUser.TokenAccess)
}

// Revoke drops every token of the refresh token's owner. An unverifiable
// token is ignored.
func (t *TokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	claims := &Claims{}
	if err := utils.ParseClaims(refreshToken, t.refreshSecret, claims); err != nil {
		logger.Debug("Logout with unverifiable refresh token", zap.Error(err))
		return nil
	}

	return t.RevokeAll(ctx, claims.UserID)
}

func (t *TokenIssuer) RevokeAll(ctx context.Context, userID uint) error {
	if err := t.tokens.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	logger.Info("User tokens revoked",
		zap.Uint("user_id", userID),
		zap.String("event", "tokens_revoked"),
	)
	return nil
}

func (t *TokenIssuer) issue(ctx context.Context, userID uint, email, role string, kind domainUser.TokenKind) (*IssuedToken, error) {
	secret, ttl := t.accessSecret, t.accessTTL
	if kind == domainUser.TokenRefresh {
		secret, ttl = t.refreshSecret, t.refreshTTL
	}

	now := t.now()
	jti := uuid.New()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := utils.SignClaims(secret, claims)
	if err != nil {
		return nil, err
	}

	record := &domainUser.TokenRecord{
		ID:        jti,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: expiresAt,
	}
	if err := t.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist %s token: %w", kind, err)
	}

	return &IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (t *TokenIssuer) verify(ctx context.Context, token string, kind domainUser.TokenKind) (*Claims, error) {
	secret := t.accessSecret
	if kind == domainUser.TokenRefresh {
		secret = t.refreshSecret
	}

	claims := &Claims{}
	if err := utils.ParseClaims(token, secret, claims); err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, appErrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInvalidToken, err)
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed token id", appErrors.ErrInvalidToken)
	}

	record, err := t.tokens.Get(ctx, jti, kind)
	if err != nil {
		return nil, err
	}
	if record.IsExpired(t.now()) {
		return nil, appErrors.ErrTokenExpired
	}
	if record.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: token owner mismatch", appErrors.ErrInvalidToken)
	}

	return claims, nil
}
