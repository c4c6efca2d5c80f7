package models

import "time"

type LostReportModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	ItemName    string `gorm:"type:varchar(150);not null"`
	Description string `gorm:"type:text;not null"`
	Location    string `gorm:"type:varchar(255);not null"`
	LostDate    *time.Time
	ImageURL    *string `gorm:"type:text"`
	Status      string  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LostReportModel) TableName() string {
	return "lost_reports"
}

type FoundReportModel struct {
	ID             uint   `gorm:"primaryKey"`
	ItemName       string `gorm:"type:varchar(150);not null"`
	Description    string `gorm:"type:text;not null"`
	Location       string `gorm:"type:varchar(255);not null"`
	FoundDate      *time.Time
	ImageURL       *string `gorm:"type:text"`
	Status         string  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	LostReportID   *uint   `gorm:"uniqueIndex"`
	CreatedByAdmin bool    `gorm:"not null;default:false"`
	AdminID        *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (FoundReportModel) TableName() string {
	return "found_reports"
}
