package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lost-and-found/internal/domain/user"
	"lost-and-found/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *DB
}

func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, record *user.TokenRecord) error {
	dbModel := &models.TokenModel{
		ID:        record.ID,
		UserID:    record.UserID,
		Kind:      string(record.Kind),
		ExpiresAt: record.ExpiresAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to store %s token: %w", record.Kind, err)
	}
	record.CreatedAt = dbModel.CreatedAt
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, id uuid.UUID, kind user.TokenKind) (*user.TokenRecord, error) {
	var dbModel models.TokenModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND kind = ?", id, string(kind)).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &user.TokenRecord{
		ID:        dbModel.ID,
		UserID:    dbModel.UserID,
		Kind:      user.TokenKind(dbModel.Kind),
		ExpiresAt: dbModel.ExpiresAt,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.TokenModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.TokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
