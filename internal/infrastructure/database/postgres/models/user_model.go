package models

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"type:varchar(100);not null"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash *string `gorm:"type:varchar(255)"`
	Role         string  `gorm:"type:varchar(20);not null;default:'User'"`
	Phone        *string `gorm:"type:varchar(20)"`
	Provider     *string `gorm:"type:varchar(50)"`
	ProviderID   *string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

type TokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Kind      string    `gorm:"type:varchar(10);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (TokenModel) TableName() string {
	return "auth_tokens"
}

type OTPModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (OTPModel) TableName() string {
	return "password_reset_otps"
}
