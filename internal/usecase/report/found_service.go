package report

import (
	"context"

	domainReport "lost-and-found/internal/domain/report"
	"lost-and-found/internal/logger"
	"lost-and-found/internal/storage"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"go.uber.org/zap"
)

type FoundService struct {
	store      domainReport.Store
	reconciler *Reconciler
	images     storage.ImageStore
	maxImage   int64
}

func NewFoundService(store domainReport.Store, reconciler *Reconciler, images storage.ImageStore, maxImage int64) *FoundService {
	if maxImage <= 0 {
		maxImage = storage.MaxImageBytes
	}
	return &FoundService{
		store:      store,
		reconciler: reconciler,
		images:     images,
		maxImage:   maxImage,
	}
}

// Create registers an unlinked PENDING found report.
func (s *FoundService) Create(ctx context.Context, req *CreateFoundRequest) (*FoundResponse, error) {
	found, err := s.create(ctx, req, domainReport.FoundPending, nil)
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}

// CreateByAdmin registers an admin-authored report, already CLAIMED.
func (s *FoundService) CreateByAdmin(ctx context.Context, adminID uint, req *CreateFoundRequest) (*FoundResponse, error) {
	found, err := s.create(ctx, req, domainReport.FoundClaimed, &adminID)
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}

func (s *FoundService) create(ctx context.Context, req *CreateFoundRequest, status domainReport.FoundStatus, adminID *uint) (*domainReport.FoundReport, error) {
	req.ItemName = utils.SanitizeString(req.ItemName)
	req.Description = utils.SanitizeText(req.Description)
	req.Location = utils.SanitizeString(req.Location)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	found := &domainReport.FoundReport{
		ItemName:       req.ItemName,
		Description:    req.Description,
		Location:       req.Location,
		FoundDate:      req.FoundDate,
		Status:         status,
		CreatedByAdmin: adminID != nil,
		AdminID:        adminID,
	}
	if err := s.store.Found().Create(ctx, found); err != nil {
		return nil, err
	}

	logger.Info("Found report created",
		zap.Uint("found_report_id", found.ID),
		zap.Bool("created_by_admin", found.CreatedByAdmin),
		zap.String("event", "found_report_created"),
	)

	return found, nil
}

func (s *FoundService) List(ctx context.Context) ([]*FoundResponse, error) {
	return s.list(ctx, domainReport.FoundFilter{})
}

func (s *FoundService) ListAdminAuthored(ctx context.Context) ([]*FoundResponse, error) {
	byAdmin := true
	return s.list(ctx, domainReport.FoundFilter{CreatedByAdmin: &byAdmin})
}

func (s *FoundService) ListPending(ctx context.Context) ([]*FoundResponse, error) {
	status := domainReport.FoundPending
	return s.list(ctx, domainReport.FoundFilter{Status: &status})
}

// ListHistory returns claimed reports.
func (s *FoundService) ListHistory(ctx context.Context) ([]*FoundResponse, error) {
	status := domainReport.FoundClaimed
	return s.list(ctx, domainReport.FoundFilter{Status: &status})
}

func (s *FoundService) list(ctx context.Context, filter domainReport.FoundFilter) ([]*FoundResponse, error) {
	reports, err := s.store.Found().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToFoundResponses(reports), nil
}

func (s *FoundService) Get(ctx context.Context, foundID uint) (*FoundResponse, error) {
	found, err := s.store.Found().GetByID(ctx, foundID)
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}

// Update edits a found report and always reapplies its link.
func (s *FoundService) Update(ctx context.Context, foundID uint, req *UpdateFoundRequest) (*FoundResponse, error) {
	req.ItemName = utils.SanitizeOptional(req.ItemName, utils.SanitizeString)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	req.Location = utils.SanitizeOptional(req.Location, utils.SanitizeString)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	fields := domainReport.FoundFields{
		ItemName:    req.ItemName,
		Description: req.Description,
		Location:    req.Location,
		FoundDate:   req.FoundDate,
	}
	found, err := s.reconciler.LinkFoundToLost(ctx, foundID, req.LostReportID, fields)
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}

func (s *FoundService) UpdateStatus(ctx context.Context, foundID uint, req *FoundStatusRequest) (*FoundResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Status must be PENDING, CLAIMED or REJECTED", err)
	}

	found, err := s.reconciler.SetFoundStatus(ctx, foundID, domainReport.FoundStatus(req.Status))
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}

func (s *FoundService) Delete(ctx context.Context, foundID uint) error {
	return s.reconciler.DeleteFoundReport(ctx, foundID)
}

func (s *FoundService) AttachImage(ctx context.Context, foundID uint, data []byte) (*FoundResponse, error) {
	img, err := storage.DetectImage(data, s.maxImage)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Found().GetByID(ctx, foundID); err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, storage.ObjectKey("found", foundID, img.Extension), img.ContentType, img.Data)
	if err != nil {
		return nil, err
	}
	if err := s.store.Found().SetImage(ctx, foundID, url); err != nil {
		return nil, err
	}

	found, err := s.store.Found().GetByID(ctx, foundID)
	if err != nil {
		return nil, err
	}
	return ToFoundResponse(found), nil
}
