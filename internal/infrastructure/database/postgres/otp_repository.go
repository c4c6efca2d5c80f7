package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lost-and-found/internal/domain/user"
	"lost-and-found/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *DB
}

func NewOTPRepository(db *DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, otp *user.OTP) error {
	dbModel := &models.OTPModel{
		Email:     strings.ToLower(otp.Email),
		Code:      otp.Code,
		ExpiresAt: otp.ExpiresAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	otp.ID = dbModel.ID
	otp.CreatedAt = dbModel.CreatedAt
	return nil
}

// Find returns the most recent record matching email and code.
func (r *OTPRepository) Find(ctx context.Context, email, code string) (*user.OTP, error) {
	var dbModel models.OTPModel
	err := r.db.DB.WithContext(ctx).
		Where("email = ? AND code = ?", strings.ToLower(email), code).
		Order("created_at DESC").
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	return &user.OTP{
		ID:        dbModel.ID,
		Email:     dbModel.Email,
		Code:      dbModel.Code,
		ExpiresAt: dbModel.ExpiresAt,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := r.db.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Delete(&models.OTPModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete otps: %w", err)
	}
	return nil
}

func (r *OTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.OTPModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", result.Error)
	}
	return result.RowsAffected, nil
}
