package postgres

import (
	"context"
	"errors"
	"fmt"

	"lost-and-found/internal/domain/report"
	"lost-and-found/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// ReportStore implements report.Store. A store returned by Atomic is bound
// to the open transaction.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db.DB}
}

func (s *ReportStore) Lost() report.LostRepository {
	return &lostRepository{db: s.db}
}

func (s *ReportStore) Found() report.FoundRepository {
	return &foundRepository{db: s.db}
}

func (s *ReportStore) Atomic(ctx context.Context, fn func(report.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReportStore{db: tx})
	})
}

type lostRepository struct {
	db *gorm.DB
}

func (r *lostRepository) Create(ctx context.Context, l *report.LostReport) error {
	if l.Status == "" {
		l.Status = report.LostPending
	}

	dbModel := toLostModel(l)
	if err := r.db.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create lost report: %w", err)
	}

	l.ID = dbModel.ID
	l.CreatedAt = dbModel.CreatedAt
	l.UpdatedAt = dbModel.UpdatedAt
	return nil
}

func (r *lostRepository) GetByID(ctx context.Context, id uint) (*report.LostReport, error) {
	var dbModel models.LostReportModel
	err := r.db.WithContext(ctx).First(&dbModel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, report.ErrLostReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lost report: %w", err)
	}
	return toLostEntity(&dbModel), nil
}

func (r *lostRepository) List(ctx context.Context) ([]*report.LostReport, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *lostRepository) ListByUser(ctx context.Context, userID uint) ([]*report.LostReport, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *lostRepository) find(query *gorm.DB) ([]*report.LostReport, error) {
	var dbModels []models.LostReportModel
	if err := query.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list lost reports: %w", err)
	}

	reports := make([]*report.LostReport, len(dbModels))
	for i := range dbModels {
		reports[i] = toLostEntity(&dbModels[i])
	}
	return reports, nil
}

func (r *lostRepository) Update(ctx context.Context, id uint, fields report.LostFields) error {
	updates := make(map[string]interface{})
	if fields.ItemName != nil {
		updates["item_name"] = *fields.ItemName
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Location != nil {
		updates["location"] = *fields.Location
	}
	if fields.LostDate != nil {
		updates["lost_date"] = *fields.LostDate
	}
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.update(ctx, id, updates)
}

func (r *lostRepository) SetStatus(ctx context.Context, id uint, status report.LostStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *lostRepository) SetImage(ctx context.Context, id uint, url string) error {
	return r.update(ctx, id, map[string]interface{}{"image_url": url})
}

func (r *lostRepository) update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.LostReportModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update lost report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrLostReportNotFound
	}
	return nil
}

func (r *lostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.LostReportModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lost report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrLostReportNotFound
	}
	return nil
}

func (r *lostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LostReportModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count lost reports: %w", err)
	}
	return count, nil
}

func (r *lostRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LostReportModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count lost reports: %w", err)
	}
	return count, nil
}

type foundRepository struct {
	db *gorm.DB
}

func (r *foundRepository) Create(ctx context.Context, f *report.FoundReport) error {
	if f.Status == "" {
		f.Status = report.FoundPending
	}

	dbModel := toFoundModel(f)
	if err := r.db.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return report.ErrAlreadyMatched
		}
		return fmt.Errorf("failed to create found report: %w", err)
	}

	f.ID = dbModel.ID
	f.CreatedAt = dbModel.CreatedAt
	f.UpdatedAt = dbModel.UpdatedAt
	return nil
}

func (r *foundRepository) GetByID(ctx context.Context, id uint) (*report.FoundReport, error) {
	var dbModel models.FoundReportModel
	err := r.db.WithContext(ctx).First(&dbModel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, report.ErrFoundReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get found report: %w", err)
	}
	return toFoundEntity(&dbModel), nil
}

func (r *foundRepository) GetByLostID(ctx context.Context, lostID uint) (*report.FoundReport, error) {
	var dbModel models.FoundReportModel
	err := r.db.WithContext(ctx).Where("lost_report_id = ?", lostID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, report.ErrFoundReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get found report by lost report: %w", err)
	}
	return toFoundEntity(&dbModel), nil
}

func (r *foundRepository) List(ctx context.Context, filter report.FoundFilter) ([]*report.FoundReport, error) {
	query := r.db.WithContext(ctx)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CreatedByAdmin != nil {
		query = query.Where("created_by_admin = ?", *filter.CreatedByAdmin)
	}

	var dbModels []models.FoundReportModel
	if err := query.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list found reports: %w", err)
	}

	reports := make([]*report.FoundReport, len(dbModels))
	for i := range dbModels {
		reports[i] = toFoundEntity(&dbModels[i])
	}
	return reports, nil
}

func (r *foundRepository) Update(ctx context.Context, id uint, fields report.FoundFields) error {
	updates := make(map[string]interface{})
	if fields.ItemName != nil {
		updates["item_name"] = *fields.ItemName
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Location != nil {
		updates["location"] = *fields.Location
	}
	if fields.FoundDate != nil {
		updates["found_date"] = *fields.FoundDate
	}
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.update(ctx, id, updates)
}

func (r *foundRepository) SetLink(ctx context.Context, id uint, lostID *uint) error {
	err := r.update(ctx, id, map[string]interface{}{"lost_report_id": lostID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return report.ErrAlreadyMatched
	}
	return err
}

func (r *foundRepository) SetStatus(ctx context.Context, id uint, status report.FoundStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *foundRepository) SetImage(ctx context.Context, id uint, url string) error {
	return r.update(ctx, id, map[string]interface{}{"image_url": url})
}

func (r *foundRepository) update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.FoundReportModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update found report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrFoundReportNotFound
	}
	return nil
}

func (r *foundRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.FoundReportModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete found report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrFoundReportNotFound
	}
	return nil
}

func (r *foundRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FoundReportModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count found reports: %w", err)
	}
	return count, nil
}

func toLostModel(l *report.LostReport) *models.LostReportModel {
	return &models.LostReportModel{
		ID:          l.ID,
		UserID:      l.UserID,
		ItemName:    l.ItemName,
		Description: l.Description,
		Location:    l.Location,
		LostDate:    l.LostDate,
		ImageURL:    l.ImageURL,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLostEntity(m *models.LostReportModel) *report.LostReport {
	return &report.LostReport{
		ID:          m.ID,
		UserID:      m.UserID,
		ItemName:    m.ItemName,
		Description: m.Description,
		Location:    m.Location,
		LostDate:    m.LostDate,
		ImageURL:    m.ImageURL,
		Status:      report.LostStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toFoundModel(f *report.FoundReport) *models.FoundReportModel {
	return &models.FoundReportModel{
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

func toFoundEntity(m *models.FoundReportModel) *report.FoundReport {
	return &report.FoundReport{
		ID:             m.ID,
		ItemName:       m.ItemName,
		Description:    m.Description,
		Location:       m.Location,
		FoundDate:      m.FoundDate,
		ImageURL:       m.ImageURL,
		Status:         report.FoundStatus(m.Status),
		LostReportID:   m.LostReportID,
		CreatedByAdmin: m.CreatedByAdmin,
		AdminID:        m.AdminID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
