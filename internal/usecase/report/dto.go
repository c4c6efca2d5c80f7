package report

import (
	"time"

	domainReport "lost-and-found/internal/domain/report"
)

type CreateLostRequest struct {
	ItemName    string     `json:"item_name" validate:"required,min=2,max=150"`
	Description string     `json:"description" validate:"max=2000"`
	Location    string     `json:"location" validate:"required,max=255"`
	LostDate    *time.Time `json:"lost_date"`
}

type UpdateLostRequest struct {
	ItemName    *string    `json:"item_name" validate:"omitempty,min=2,max=150"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	LostDate    *time.Time `json:"lost_date"`
}

type LostStatusRequest struct {
	Status string `json:"status" validate:"required,lost_decision"`
}

type CreateFoundRequest struct {
	ItemName    string     `json:"item_name" validate:"required,min=2,max=150"`
	Description string     `json:"description" validate:"max=2000"`
	Location    string     `json:"location" validate:"required,max=255"`
	FoundDate   *time.Time `json:"found_date"`
}

// UpdateFoundRequest edits a found report. LostReportID is always applied:
// omitting it unlinks the report.
type UpdateFoundRequest struct {
	ItemName     *string    `json:"item_name" validate:"omitempty,min=2,max=150"`
	Description  *string    `json:"description" validate:"omitempty,max=2000"`
	Location     *string    `json:"location" validate:"omitempty,max=255"`
	FoundDate    *time.Time `json:"found_date"`
	LostReportID *uint      `json:"lost_report_id" validate:"omitempty,min=1"`
}

type FoundStatusRequest struct {
	Status string `json:"status" validate:"required,found_status"`
}

type FoundResponse struct {
	ID             uint       `json:"id"`
	ItemName       string     `json:"item_name"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	FoundDate      *time.Time `json:"found_date,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	Status         string     `json:"status"`
	LostReportID   *uint      `json:"lost_report_id"`
	CreatedByAdmin bool       `json:"created_by_admin"`
	AdminID        *uint      `json:"admin_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type LostResponse struct {
	ID           uint           `json:"id"`
	UserID       uint           `json:"user_id"`
	ItemName     string         `json:"item_name"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	LostDate     *time.Time     `json:"lost_date,omitempty"`
	ImageURL     *string        `json:"image_url,omitempty"`
	Status       string         `json:"status"`
	MatchedFound *FoundResponse `json:"matched_found,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func ToLostResponse(l *domainReport.LostReport) *LostResponse {
	if l == nil {
		return nil
	}
	return &LostResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		ItemName:     l.ItemName,
		Description:  l.Description,
		Location:     l.Location,
		LostDate:     l.LostDate,
		ImageURL:     l.ImageURL,
		Status:       string(l.Status),
		MatchedFound: ToFoundResponse(l.MatchedFound),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func ToLostResponses(reports []*domainReport.LostReport) []*LostResponse {
	out := make([]*LostResponse, len(reports))
	for i, l := range reports {
		out[i] = ToLostResponse(l)
	}
	return out
}

func ToFoundResponse(f *domainReport.FoundReport) *FoundResponse {
	if f == nil {
		return nil
	}
	return &FoundResponse{
		ID:             f.ID,
		ItemName:       f.ItemName,
		Description:    f.Description,
		Location:       f.Location,
		FoundDate:      f.FoundDate,
		ImageURL:       f.ImageURL,
		Status:         string(f.Status),
		LostReportID:   f.LostReportID,
		CreatedByAdmin: f.CreatedByAdmin,
		AdminID:        f.AdminID,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func ToFoundResponses(reports []*domainReport.FoundReport) []*FoundResponse {
	out := make([]*FoundResponse, len(reports))
	for i, f := range reports {
		out[i] = ToFoundResponse(f)
	}
	return out
}
