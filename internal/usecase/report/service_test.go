package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainReport "lost-and-found/internal/domain/report"
	appErrors "lost-and-found/pkg/errors"
)

type mockImageStore struct {
	saveFn func(ctx context.Context, key, contentType string, data []byte) (string, error)
}

func (m *mockImageStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return m.saveFn(ctx, key, contentType, data)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newServices(store *memStore, images *mockImageStore) (*LostService, *FoundService) {
	rec := NewReconciler(store)
	return NewLostService(store, rec, images, 0), NewFoundService(store, rec, images, 0)
}

func TestLostService_CreateSanitizes(t *testing.T) {
	store := newMemStore()
	lost, _ := newServices(store, nil)

	resp, err := lost.Create(context.Background(), 7, &CreateLostRequest{
		ItemName:    "  <b>Umbrella</b> ",
		Description: "<script>alert(1)</script>Blue",
		Location:    "Gym",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ItemName != "Umbrella" {
		t.Errorf("expected sanitized name, got %q", resp.ItemName)
	}
	if strings.Contains(resp.Description, "script") {
		t.Errorf("expected script stripped, got %q", resp.Description)
	}
	if resp.Status != string(domainReport.LostPending) || resp.UserID != 7 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLostService_CreateValidation(t *testing.T) {
	lost, _ := newServices(newMemStore(), nil)

	_, err := lost.Create(context.Background(), 1, &CreateLostRequest{ItemName: "", Location: "Gym"})
	if appErrors.CodeOf(err) != appErrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLostService_OwnerOnly(t *testing.T) {
	store := newMemStore()
	lostID := store.addLost(1, domainReport.LostPending)
	lost, _ := newServices(store, nil)
	name := "Keys"

	if _, err := lost.Update(context.Background(), lostID, 2, &UpdateLostRequest{ItemName: &name}); !errors.Is(err, appErrors.ErrReportNotOwned) {
		t.Errorf("expected not owned on update, got %v", err)
	}
	if err := lost.Delete(context.Background(), lostID, 2); !errors.Is(err, appErrors.ErrReportNotOwned) {
		t.Errorf("expected not owned on delete, got %v", err)
	}

	resp, err := lost.Update(context.Background(), lostID, 1, &UpdateLostRequest{ItemName: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if resp.ItemName != "Keys" {
		t.Errorf("expected updated name, got %s", resp.ItemName)
	}
	if err := lost.Delete(context.Background(), lostID, 1); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestLostService_GetIncludesMatch(t *testing.T) {
	store := newMemStore()
	lostID := store.addLost(1, domainReport.LostApproved)
	foundID := store.addFound(domainReport.FoundClaimed, uintPtr(lostID))
	lost, _ := newServices(store, nil)

	resp, err := lost.Get(context.Background(), lostID, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MatchedFound == nil || resp.MatchedFound.ID != foundID {
		t.Errorf("expected matched found %d, got %+v", foundID, resp.MatchedFound)
	}

	if _, err := lost.Get(context.Background(), lostID, 2, false); !errors.Is(err, appErrors.ErrReportNotOwned) {
		t.Errorf("expected other user to be refused, got %v", err)
	}
	if _, err := lost.Get(context.Background(), lostID, 2, true); err != nil {
		t.Errorf("admin should read any report: %v", err)
	}
}

func TestLostService_UpdateStatus(t *testing.T) {
	store := newMemStore()
	lostID := store.addLost(1, domainReport.LostPending)
	lost, _ := newServices(store, nil)

	if _, err := lost.UpdateStatus(context.Background(), lostID, &LostStatusRequest{Status: "PENDING"}); appErrors.CodeOf(err) != appErrors.CodeValidation {
		t.Errorf("expected PENDING to be refused, got %v", err)
	}

	resp, err := lost.UpdateStatus(context.Background(), lostID, &LostStatusRequest{Status: "APPROVED"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resp.Status != "APPROVED" || resp.MatchedFound == nil {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLostService_AttachImage(t *testing.T) {
	store := newMemStore()
	lostID := store.addLost(1, domainReport.LostPending)

	var savedKey string
	images := &mockImageStore{
		saveFn: func(_ context.Context, key, contentType string, _ []byte) (string, error) {
			savedKey = key
			if contentType != "image/png" {
				t.Errorf("unexpected content type %s", contentType)
			}
			return "https://cdn.example.com/" + key, nil
		},
	}
	lost, _ := newServices(store, images)

	resp, err := lost.AttachImage(context.Background(), lostID, 1, pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ImageURL == nil || !strings.HasSuffix(*resp.ImageURL, savedKey) {
		t.Errorf("expected image url for %s, got %v", savedKey, resp.ImageURL)
	}

	if _, err := lost.AttachImage(context.Background(), lostID, 1, []byte("GIF89a")); !errors.Is(err, appErrors.ErrImageType) {
		t.Errorf("expected image type error, got %v", err)
	}
	if _, err := lost.AttachImage(context.Background(), lostID, 2, pngBytes); !errors.Is(err, appErrors.ErrReportNotOwned) {
		t.Errorf("expected not owned, got %v", err)
	}
}

func TestFoundService_CreateVariants(t *testing.T) {
	store := newMemStore()
	_, found := newServices(store, nil)
	ctx := context.Background()

	pending, err := found.Create(ctx, &CreateFoundRequest{ItemName: "Phone", Location: "Hall"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pending.Status != "PENDING" || pending.CreatedByAdmin {
		t.Errorf("unexpected public report %+v", pending)
	}

	claimed, err := found.CreateByAdmin(ctx, 9, &CreateFoundRequest{ItemName: "Laptop", Location: "Lab"})
	if err != nil {
		t.Fatalf("create by admin: %v", err)
	}
	if claimed.Status != "CLAIMED" || !claimed.CreatedByAdmin || claimed.AdminID == nil || *claimed.AdminID != 9 {
		t.Errorf("unexpected admin report %+v", claimed)
	}

	byAdmin, _ := found.ListAdminAuthored(ctx)
	if len(byAdmin) != 1 || byAdmin[0].ID != claimed.ID {
		t.Errorf("expected one admin-authored report, got %d", len(byAdmin))
	}
	pendingList, _ := found.ListPending(ctx)
	if len(pendingList) != 1 || pendingList[0].ID != pending.ID {
		t.Errorf("expected one pending report, got %d", len(pendingList))
	}
	history, _ := found.ListHistory(ctx)
	if len(history) != 1 || history[0].ID != claimed.ID {
		t.Errorf("expected one claimed report, got %d", len(history))
	}
}

func TestFoundService_UpdateCascades(t *testing.T) {
	store := newMemStore()
	lostID := store.addLost(1, domainReport.LostPending)
	foundID := store.addFound(domainReport.FoundPending, nil)
	_, found := newServices(store, nil)

	resp, err := found.Update(context.Background(), foundID, &UpdateFoundRequest{LostReportID: uintPtr(lostID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "CLAIMED" {
		t.Errorf("expected CLAIMED, got %s", resp.Status)
	}
	if store.lost[lostID].Status != domainReport.LostApproved {
		t.Error("expected lost report APPROVED")
	}

	resp, err = found.Update(context.Background(), foundID, &UpdateFoundRequest{})
	if err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if resp.Status != "PENDING" || resp.LostReportID != nil {
		t.Errorf("expected unlinked PENDING, got %+v", resp)
	}
}

func TestFoundService_UpdateStatusValidation(t *testing.T) {
	store := newMemStore()
	foundID := store.addFound(domainReport.FoundPending, nil)
	_, found := newServices(store, nil)

	if _, err := found.UpdateStatus(context.Background(), foundID, &FoundStatusRequest{Status: "APPROVED"}); appErrors.CodeOf(err) != appErrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := found.UpdateStatus(context.Background(), 404, &FoundStatusRequest{Status: "CLAIMED"}); !errors.Is(err, appErrors.ErrReportNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
