package report

import (
	"context"
	"errors"

	domainReport "lost-and-found/internal/domain/report"
	"lost-and-found/internal/logger"

	"go.uber.org/zap"
)

// Reconciler keeps lost and found reports consistent: a linked found report
// that is CLAIMED always points at an APPROVED lost report. Every cascade
// runs in one transaction.
type Reconciler struct {
	store    domainReport.Store
	recorder StatusRecorder
}

// StatusRecorder observes committed status changes.
type StatusRecorder interface {
	RecordStatusChange(report, status string)
}

type noopRecorder struct{}

func (noopRecorder) RecordStatusChange(string, string) {}

func NewReconciler(store domainReport.Store) *Reconciler {
	return &Reconciler{store: store, recorder: noopRecorder{}}
}

func (r *Reconciler) WithRecorder(recorder StatusRecorder) *Reconciler {
	r.recorder = recorder
	return r
}

// ApproveLostReport approves a lost report and claims its found counterpart,
// creating one from the lost report's details when none is linked yet.
func (r *Reconciler) ApproveLostReport(ctx context.Context, lostID uint) (*domainReport.LostReport, error) {
	var approved *domainReport.LostReport

	err := r.store.Atomic(ctx, func(tx domainReport.Store) error {
		lost, err := tx.Lost().GetByID(ctx, lostID)
		if err != nil {
			return err
		}
		if err := domainReport.ValidateLostTransition(lost.Status, domainReport.LostApproved); err != nil {
			return err
		}
		if err := tx.Lost().SetStatus(ctx, lostID, domainReport.LostApproved); err != nil {
			return err
		}

		found, err := tx.Found().GetByLostID(ctx, lostID)
		switch {
		case errors.Is(err, domainReport.ErrFoundReportNotFound):
			found = &domainReport.FoundReport{
				ItemName:     lost.ItemName,
				Description:  lost.Description,
				Location:     lost.Location,
				FoundDate:    lost.LostDate,
				ImageURL:     lost.ImageURL,
				Status:       domainReport.FoundClaimed,
				LostReportID: &lost.ID,
			}
			if err := tx.Found().Create(ctx, found); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Found().SetStatus(ctx, found.ID, domainReport.FoundClaimed); err != nil {
				return err
			}
			found.Status = domainReport.FoundClaimed
		}

		lost.Status = domainReport.LostApproved
		lost.MatchedFound = found
		approved = lost
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.recorder.RecordStatusChange("lost", string(domainReport.LostApproved))
	r.recorder.RecordStatusChange("found", string(domainReport.FoundClaimed))

	logger.Info("Lost report approved",
		zap.Uint("lost_report_id", lostID),
		zap.Uint("found_report_id", approved.MatchedFound.ID),
		zap.String("event", "lost_report_approved"),
	)

	return approved, nil
}

// RejectLostReport rejects a lost report. Found reports are not touched.
func (r *Reconciler) RejectLostReport(ctx context.Context, lostID uint) (*domainReport.LostReport, error) {
	var rejected *domainReport.LostReport

	err := r.store.Atomic(ctx, func(tx domainReport.Store) error {
		lost, err := tx.Lost().GetByID(ctx, lostID)
		if err != nil {
			return err
		}
		if err := domainReport.ValidateLostTransition(lost.Status, domainReport.LostRejected); err != nil {
			return err
		}
		if err := tx.Lost().SetStatus(ctx, lostID, domainReport.LostRejected); err != nil {
			return err
		}
		lost.Status = domainReport.LostRejected
		rejected = lost
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.recorder.RecordStatusChange("lost", string(domainReport.LostRejected))

	logger.Info("Lost report rejected",
		zap.Uint("lost_report_id", lostID),
		zap.String("event", "lost_report_rejected"),
	)

	return rejected, nil
}

// LinkFoundToLost applies fields to a found report and sets its link. A
// non-nil lostID claims the found report and approves the lost one, even a
// REJECTED one; a nil lostID unlinks it and puts it back to PENDING.
func (r *Reconciler) LinkFoundToLost(ctx context.Context, foundID uint, lostID *uint, fields domainReport.FoundFields) (*domainReport.FoundReport, error) {
	var updated *domainReport.FoundReport

	err := r.store.Atomic(ctx, func(tx domainReport.Store) error {
		if _, err := tx.Found().GetByID(ctx, foundID); err != nil {
			return err
		}
		if err := tx.Found().Update(ctx, foundID, fields); err != nil {
			return err
		}

		if lostID == nil {
			if err := tx.Found().SetLink(ctx, foundID, nil); err != nil {
				return err
			}
			if err := tx.Found().SetStatus(ctx, foundID, domainReport.FoundPending); err != nil {
				return err
			}
		} else {
			lost, err := tx.Lost().GetByID(ctx, *lostID)
			if err != nil {
				return err
			}

			existing, err := tx.Found().GetByLostID(ctx, *lostID)
			if err == nil && existing.ID != foundID {
				return domainReport.ErrAlreadyMatched
			}
			if err != nil && !errors.Is(err, domainReport.ErrFoundReportNotFound) {
				return err
			}

			if err := domainReport.ForceLostApproved(lost.Status); err != nil {
				return err
			}
			if err := tx.Found().SetLink(ctx, foundID, lostID); err != nil {
				return err
			}
			if err := tx.Found().SetStatus(ctx, foundID, domainReport.FoundClaimed); err != nil {
				return err
			}
			if err := tx.Lost().SetStatus(ctx, *lostID, domainReport.LostApproved); err != nil {
				return err
			}
		}

		found, err := tx.Found().GetByID(ctx, foundID)
		if err != nil {
			return err
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.recorder.RecordStatusChange("found", string(updated.Status))
	if lostID != nil {
		r.recorder.RecordStatusChange("lost", string(domainReport.LostApproved))
	}

	logFields := []zap.Field{
		zap.Uint("found_report_id", foundID),
		zap.String("status", string(updated.Status)),
		zap.String("event", "found_report_linked"),
	}
	if lostID != nil {
		logFields = append(logFields, zap.Uint("lost_report_id", *lostID))
	}
	logger.Info("Found report link updated", logFields...)

	return updated, nil
}

// SetFoundStatus sets a found report's status directly. CLAIMED forces the
// linked lost report to APPROVED; other statuses leave it alone.
func (r *Reconciler) SetFoundStatus(ctx context.Context, foundID uint, status domainReport.FoundStatus) (*domainReport.FoundReport, error) {
	if err := domainReport.ValidateFoundStatus(status); err != nil {
		return nil, err
	}

	var updated *domainReport.FoundReport

	err := r.store.Atomic(ctx, func(tx domainReport.Store) error {
		found, err := tx.Found().GetByID(ctx, foundID)
		if err != nil {
			return err
		}
		if err := tx.Found().SetStatus(ctx, foundID, status); err != nil {
			return err
		}

		if status == domainReport.FoundClaimed && found.IsLinked() {
			lost, err := tx.Lost().GetByID(ctx, *found.LostReportID)
			if err != nil {
				return err
			}
			if err := domainReport.ForceLostApproved(lost.Status); err != nil {
				return err
			}
			if err := tx.Lost().SetStatus(ctx, lost.ID, domainReport.LostApproved); err != nil {
				return err
			}
		}

		found.Status = status
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.recorder.RecordStatusChange("found", string(status))

	logger.Info("Found report status updated",
		zap.Uint("found_report_id", foundID),
		zap.String("status", string(status)),
		zap.String("event", "found_report_status_updated"),
	)

	return updated, nil
}

// DeleteFoundReport removes a found report. A linked lost report keeps its status.
func (r *Reconciler) DeleteFoundReport(ctx context.Context, foundID uint) error {
	if err := r.store.Found().Delete(ctx, foundID); err != nil {
		return err
	}

	logger.Info("Found report deleted",
		zap.Uint("found_report_id", foundID),
		zap.String("event", "found_report_deleted"),
	)
	return nil
}
