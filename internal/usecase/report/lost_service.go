package report

import (
	"context"
	"errors"

	domainReport "lost-and-found/internal/domain/report"
	"lost-and-found/internal/logger"
	"lost-and-found/internal/storage"
	appErrors "lost-and-found/pkg/errors"
	"lost-and-found/pkg/utils"

	"go.uber.org/zap"
)

// LostService implements lost report use cases. Status changes go through the Reconciler.
type LostService struct {
	store      domainReport.Store
	reconciler *Reconciler
	images     storage.ImageStore
	maxImage   int64
}

func NewLostService(store domainReport.Store, reconciler *Reconciler, images storage.ImageStore, maxImage int64) *LostService {
	if maxImage <= 0 {
		maxImage = storage.MaxImageBytes
	}
	return &LostService{
		store:      store,
		reconciler: reconciler,
		images:     images,
		maxImage:   maxImage,
	}
}

func (s *LostService) Create(ctx context.Context, userID uint, req *CreateLostRequest) (*LostResponse, error) {
	req.ItemName = utils.SanitizeString(req.ItemName)
	req.Description = utils.SanitizeText(req.Description)
	req.Location = utils.SanitizeString(req.Location)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	lost := &domainReport.LostReport{
		UserID:      userID,
		ItemName:    req.ItemName,
		Description: req.Description,
		Location:    req.Location,
		LostDate:    req.LostDate,
		Status:      domainReport.LostPending,
	}
	if err := s.store.Lost().Create(ctx, lost); err != nil {
		return nil, err
	}

	logger.Info("Lost report created",
		zap.Uint("lost_report_id", lost.ID),
		zap.Uint("user_id", userID),
		zap.String("event", "lost_report_created"),
	)

	return ToLostResponse(lost), nil
}

func (s *LostService) ListMine(ctx context.Context, userID uint) ([]*LostResponse, error) {
	reports, err := s.store.Lost().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToLostResponses(reports), nil
}

func (s *LostService) ListAll(ctx context.Context) ([]*LostResponse, error) {
	reports, err := s.store.Lost().List(ctx)
	if err != nil {
		return nil, err
	}
	return ToLostResponses(reports), nil
}

// Get returns a lost report with its matched found report, if any. Users
// may only read their own reports.
func (s *LostService) Get(ctx context.Context, lostID, userID uint, isAdmin bool) (*LostResponse, error) {
	lost, err := s.store.Lost().GetByID(ctx, lostID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && lost.UserID != userID {
		return nil, domainReport.ErrNotOwner
	}

	found, err := s.store.Found().GetByLostID(ctx, lostID)
	switch {
	case err == nil:
		lost.MatchedFound = found
	case !errors.Is(err, domainReport.ErrFoundReportNotFound):
		return nil, err
	}

	return ToLostResponse(lost), nil
}

func (s *LostService) Update(ctx context.Context, lostID, userID uint, req *UpdateLostRequest) (*LostResponse, error) {
	req.ItemName = utils.SanitizeOptional(req.ItemName, utils.SanitizeString)
	req.Description = utils.SanitizeOptional(req.Description, utils.SanitizeText)
	req.Location = utils.SanitizeOptional(req.Location, utils.SanitizeString)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := s.requireOwner(ctx, lostID, userID); err != nil {
		return nil, err
	}

	fields := domainReport.LostFields{
		ItemName:    req.ItemName,
		Description: req.Description,
		Location:    req.Location,
		LostDate:    req.LostDate,
	}
	if err := s.store.Lost().Update(ctx, lostID, fields); err != nil {
		return nil, err
	}

	updated, err := s.store.Lost().GetByID(ctx, lostID)
	if err != nil {
		return nil, err
	}
	return ToLostResponse(updated), nil
}

func (s *LostService) Delete(ctx context.Context, lostID, userID uint) error {
	if err := s.requireOwner(ctx, lostID, userID); err != nil {
		return err
	}
	if err := s.store.Lost().Delete(ctx, lostID); err != nil {
		return err
	}

	logger.Info("Lost report deleted",
		zap.Uint("lost_report_id", lostID),
		zap.Uint("user_id", userID),
		zap.String("event", "lost_report_deleted"),
	)
	return nil
}

// UpdateStatus applies an admin decision: APPROVED or REJECTED.
func (s *LostService) UpdateStatus(ctx context.Context, lostID uint, req *LostStatusRequest) (*LostResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Status must be APPROVED or REJECTED", err)
	}

	var (
		lost *domainReport.LostReport
		err  error
	)
	if domainReport.LostStatus(req.Status) == domainReport.LostApproved {
		lost, err = s.reconciler.ApproveLostReport(ctx, lostID)
	} else {
		lost, err = s.reconciler.RejectLostReport(ctx, lostID)
	}
	if err != nil {
		return nil, err
	}
	return ToLostResponse(lost), nil
}

// AttachImage stores an uploaded image for a report owned by userID.
func (s *LostService) AttachImage(ctx context.Context, lostID, userID uint, data []byte) (*LostResponse, error) {
	img, err := storage.DetectImage(data, s.maxImage)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, lostID, userID); err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, storage.ObjectKey("lost", lostID, img.Extension), img.ContentType, img.Data)
	if err != nil {
		return nil, err
	}
	if err := s.store.Lost().SetImage(ctx, lostID, url); err != nil {
		return nil, err
	}

	updated, err := s.store.Lost().GetByID(ctx, lostID)
	if err != nil {
		return nil, err
	}
	return ToLostResponse(updated), nil
}

func (s *LostService) requireOwner(ctx context.Context, lostID, userID uint) error {
	lost, err := s.store.Lost().GetByID(ctx, lostID)
	if err != nil {
		return err
	}
	if lost.UserID != userID {
		return domainReport.ErrNotOwner
	}
	return nil
}
