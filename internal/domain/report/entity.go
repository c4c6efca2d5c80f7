package report

import "time"

type LostStatus string

const (
	LostPending  LostStatus = "PENDING"
	LostApproved LostStatus = "APPROVED"
	LostRejected LostStatus = "REJECTED"
)

type FoundStatus string

const (
	FoundPending  FoundStatus = "PENDING"
	FoundClaimed  FoundStatus = "CLAIMED"
	FoundRejected FoundStatus = "REJECTED"
)

func (s FoundStatus) IsValid() bool {
	switch s {
	case FoundPending, FoundClaimed, FoundRejected:
		return true
	}
	return false
}

// LostReport is a user's claim that an item went missing.
type LostReport struct {
	ID           uint
	UserID       uint
	ItemName     string
	Description  string
	Location     string
	LostDate     *time.Time
	ImageURL     *string
	Status       LostStatus
	MatchedFound *FoundReport // populated on single-report reads only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FoundReport is an item in custody. LostReportID links it 1:1 to the lost
// report it satisfies.
type FoundReport struct {
	ID             uint
	ItemName       string
	Description    string
	Location       string
	FoundDate      *time.Time
	ImageURL       *string
	Status         FoundStatus
	LostReportID   *uint
	CreatedByAdmin bool
	AdminID        *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (f *FoundReport) IsLinked() bool {
	return f.LostReportID != nil
}

// FoundFields carries the editable attributes of a found report. Nil fields
// are left unchanged.
type FoundFields struct {
	ItemName    *string
	Description *string
	Location    *string
	FoundDate   *time.Time
}

// LostFields carries the editable attributes of a lost report.
type LostFields struct {
	ItemName    *string
	Description *string
	Location    *string
	LostDate    *time.Time
}

type FoundFilter struct {
	Status         *FoundStatus
	CreatedByAdmin *bool
}
