package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"lost-and-found/internal/config"
	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/internal/logger"
	"lost-and-found/internal/mailer"
	userUsecase "lost-and-found/internal/usecase/user"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const otpDigits = 6

// resetClaims travel in the emailed reset link.
type resetClaims struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	jwt.RegisteredClaims
}

// Service implements registration, login and password reset
type Service struct {
	userRepo    domainUser.Repository
	otpRepo     domainUser.OTPRepository
	tokens      *TokenIssuer
	mail        mailer.Mailer
	resetSecret string
	otpTTL      time.Duration
	frontendURL string
	recorder    EventRecorder
	now         func() time.Time
}

// EventRecorder counts authentication outcomes.
type EventRecorder interface {
	RecordAuthEvent(event string)
}

type noopRecorder struct{}

func (noopRecorder) RecordAuthEvent(string) {}

func NewService(
	userRepo domainUser.Repository,
	otpRepo domainUser.OTPRepository,
	tokens *TokenIssuer,
	mail mailer.Mailer,
	cfg *config.Config,
) *Service {
	otpTTL := cfg.JWT.ResetOTPTTL
	if otpTTL <= 0 {
		otpTTL = 5 * time.Minute
	}
	return &Service{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		tokens:      tokens,
		mail:        mail,
		resetSecret: cfg.JWT.ResetSigningSecret(),
		otpTTL:      otpTTL,
		frontendURL: cfg.Server.FrontendURL,
		recorder:    noopRecorder{},
		now:         time.Now,
	}
}

func (s *Service) WithRecorder(recorder EventRecorder) *Service {
	s.recorder = recorder
	return s
}

// Register creates a User account. Public registration never grants Admin.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*userUsecase.UserResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)

	// A taken email is a conflict whatever else the request carries.
	if req.Email != "" {
		existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", req.Email),
				zap.String("event", "registration_failed_duplicate_email"),
			)
			return nil, domainUser.ErrUserAlreadyExists
		}
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleUser,
		Phone:        req.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return userUsecase.ToUserResponse(user), nil
}

// Login verifies credentials, drops the user's previous tokens and issues a
// new pair. Every failure reports the same message.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			s.recorder.RecordAuthEvent("login_failed")
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() || !utils.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.Uint("user_id", user.ID),
			zap.String("event", "login_failed_invalid_password"),
		)
		s.recorder.RecordAuthEvent("login_failed")
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.startSession(ctx, user, "login_success")
}

// LoginWithExternalProvider signs in the account owning the profile's email,
// creating a password-less one on first sight.
func (s *Service) LoginWithExternalProvider(ctx context.Context, profile *ExternalProfile) (*LoginResult, error) {
	if profile == nil || profile.Email == "" {
		return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Email not available from provider", appErrors.ErrOAuthEmailMissing)
	}
	email := utils.SanitizeEmail(profile.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domainUser.ErrUserNotFound):
		name := utils.SanitizeString(profile.Name)
		if name == "" {
			name = email
		}
		provider, providerID := profile.Provider, profile.ProviderID
		user = &domainUser.User{
			Name:       name,
			Email:      email,
			Role:       domainUser.RoleUser,
			Provider:   &provider,
			ProviderID: &providerID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		logger.Info("User created from external provider",
			zap.Uint("user_id", user.ID),
			zap.String("provider", provider),
			zap.String("event", "user_registered_oauth"),
		)
	case err != nil:
		return nil, err
	case user.Provider == nil:
		provider, providerID := profile.Provider, profile.ProviderID
		user.Provider = &provider
		user.ProviderID = &providerID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.startSession(ctx, user, "login_success_oauth")
}

func (s *Service) startSession(ctx context.Context, user *domainUser.User, event string) (*LoginResult, error) {
	if err := s.tokens.RevokeAll(ctx, user.ID); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recorder.RecordAuthEvent(event)

	logger.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("event", event),
	)

	return &LoginResult{User: userUsecase.ToUserResponse(user), Tokens: pair}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*IssuedToken, error) {
	if refreshToken == "" {
		return nil, appErrors.ErrUnauthorized
	}
	access, err := s.tokens.RotateAccessToken(ctx, refreshToken)
	if err != nil {
		s.recorder.RecordAuthEvent("refresh_failed")
		return nil, err
	}
	return access, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, refreshToken)
}

// RequestReset emails a one-time code wrapped in a signed reset link.
func (s *Service) RequestReset(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	now := s.now()
	expiresAt := now.Add(s.otpTTL)
	if err := s.otpRepo.Create(ctx, &domainUser.OTP{Email: user.Email, Code: code, ExpiresAt: expiresAt}); err != nil {
		return err
	}

	session, err := utils.SignClaims(s.resetSecret, &resetClaims{
		Email: user.Email,
		OTP:   code,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return err
	}

	body, err := mailer.RenderReset(mailer.ResetEmail{
		Name:    user.Name,
		Code:    code,
		Link:    s.frontendURL + "/reset-password?session=" + url.QueryEscape(session),
		Minutes: int(s.otpTTL / time.Minute),
	})
	if err != nil {
		return err
	}

	if err := s.mail.Send(ctx, mailer.Message{To: user.Email, Subject: "Reset your password", HTML: body}); err != nil {
		return err
	}

	logger.Info("Password reset requested",
		zap.Uint("user_id", user.ID),
		zap.String("event", "password_reset_requested"),
	)

	return nil
}

// VerifyReset checks that a reset session still maps to a live code.
func (s *Service) VerifyReset(ctx context.Context, session string) (*ResetSessionResponse, error) {
	claims, err := s.checkSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return &ResetSessionResponse{Email: claims.Email}, nil
}

func (s *Service) CompleteReset(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	claims, err := s.checkSession(ctx, req.Session)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}
	if err := s.otpRepo.DeleteByEmail(ctx, user.Email); err != nil {
		return err
	}
	if err := s.tokens.RevokeAll(ctx, user.ID); err != nil {
		return err
	}

	s.recorder.RecordAuthEvent("password_reset")

	logger.Info("Password reset completed",
		zap.Uint("user_id", user.ID),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) checkSession(ctx context.Context, session string) (*resetClaims, error) {
	if session == "" {
		return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset session is required", appErrors.ErrResetSessionInvalid)
	}

	claims := &resetClaims{}
	if err := utils.ParseClaims(session, s.resetSecret, claims); err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset link has expired", appErrors.ErrResetSessionExpired)
		}
		return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset link is invalid", appErrors.ErrResetSessionInvalid)
	}

	otp, err := s.otpRepo.Find(ctx, claims.Email, claims.OTP)
	if err != nil {
		if errors.Is(err, domainUser.ErrOTPNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset link is invalid", appErrors.ErrResetSessionInvalid)
		}
		return nil, err
	}
	if otp.IsExpired(s.now()) {
		return nil, appErrors.NewAppError(appErrors.CodeBadRequest, "Reset link has expired", appErrors.ErrResetSessionExpired)
	}

	return claims, nil
}

func generateOTP() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(otpDigits), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
