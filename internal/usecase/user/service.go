package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/internal/logger"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"go.uber.org/zap"
)

// TokenRevoker drops every issued token of a user.
type TokenRevoker interface {
	RevokeAll(ctx context.Context, userID uint) error
}

// Service implements profile and user administration use cases
type Service struct {
	userRepo domainUser.Repository
	tokens   TokenRevoker
}

func NewService(userRepo domainUser.Repository, tokens TokenRevoker) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*UserResponse, error) {
	req.Name = utils.SanitizeOptional(req.Name, utils.SanitizeString)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.Uint("user_id", user.ID),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.Uint("user_id", user.ID),
		zap.String("event", "password_change_success"),
	)

	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}

	return responses, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

// CreateUser is the admin path; unlike public registration it may grant Admin.
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domainUser.ErrUserAlreadyExists
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domainUser.RoleUser
	if req.Role != "" {
		role = domainUser.Role(req.Role)
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Phone:        req.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User created by admin",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(role)),
		zap.String("event", "user_created_by_admin"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uint, req *UpdateUserRequest) (*UserResponse, error) {
	req.Name = utils.SanitizeOptional(req.Name, utils.SanitizeString)
	req.Email = utils.SanitizeOptional(req.Email, utils.SanitizeEmail)
	req.Phone = utils.SanitizeOptional(req.Phone, utils.SanitizePhone)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	roleChanged := false
	if req.Role != nil && domainUser.Role(*req.Role) != user.Role {
		user.Role = domainUser.Role(*req.Role)
		roleChanged = true
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Issued tokens carry the old role.
	if roleChanged {
		if err := s.tokens.RevokeAll(ctx, userID); err != nil {
			logger.Error("Failed to revoke tokens after role change", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	return ToUserResponse(user), nil
}

func (s *Service) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deleted successfully",
		zap.Uint("user_id", userID),
		zap.String("event", "user_deleted"),
	)

	return nil
}
