package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"lost-and-found/internal/domain/report"
	"lost-and-found/internal/domain/user"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// setupTestDB migrates a clean schema into TEST_DATABASE_URL or skips.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(gormPostgres.Open(dbURL), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("cannot open test database: %v", err)
	}

	cleanup := `
		DROP TABLE IF EXISTS found_reports CASCADE;
		DROP TABLE IF EXISTS lost_reports CASCADE;
		DROP TABLE IF EXISTS password_reset_otps CASCADE;
		DROP TABLE IF EXISTS auth_tokens CASCADE;
		DROP TABLE IF EXISTS users CASCADE;
		DROP TABLE IF EXISTS schema_migrations CASCADE;
	`
	if err := gdb.Exec(cleanup).Error; err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if err := RunMigrations(dbURL); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	db := Wrap(gdb)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedLost(t *testing.T, db *DB) (*ReportStore, *report.LostReport) {
	t.Helper()
	ctx := context.Background()

	owner := &user.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "x", Role: user.RoleUser}
	if err := NewUserRepository(db).Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}

	store := NewReportStore(db)
	lost := &report.LostReport{UserID: owner.ID, ItemName: "Wallet", Description: "Brown", Location: "Library"}
	if err := store.Lost().Create(ctx, lost); err != nil {
		t.Fatalf("create lost report: %v", err)
	}
	return store, lost
}

func TestReportStore_AtomicRollsBack(t *testing.T) {
	db := setupTestDB(t)
	store, lost := seedLost(t, db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx report.Store) error {
		if err := tx.Lost().SetStatus(ctx, lost.ID, report.LostApproved); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := store.Lost().GetByID(ctx, lost.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != report.LostPending {
		t.Errorf("expected rollback to PENDING, got %s", got.Status)
	}
}

func TestReportStore_LinkIsUnique(t *testing.T) {
	db := setupTestDB(t)
	store, lost := seedLost(t, db)
	ctx := context.Background()

	first := &report.FoundReport{ItemName: "Wallet", Location: "Desk", LostReportID: &lost.ID}
	if err := store.Found().Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := &report.FoundReport{ItemName: "Wallet", Location: "Desk"}
	if err := store.Found().Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := store.Found().SetLink(ctx, second.ID, &lost.ID); !errors.Is(err, report.ErrAlreadyMatched) {
		t.Fatalf("expected ErrAlreadyMatched, got %v", err)
	}

	linked, err := store.Found().GetByLostID(ctx, lost.ID)
	if err != nil {
		t.Fatalf("get by lost id: %v", err)
	}
	if linked.ID != first.ID {
		t.Errorf("expected found report %d, got %d", first.ID, linked.ID)
	}
}

func TestReportStore_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewReportStore(db)
	ctx := context.Background()

	if _, err := store.Lost().GetByID(ctx, 9999); !errors.Is(err, report.ErrLostReportNotFound) {
		t.Errorf("expected lost not found, got %v", err)
	}
	if err := store.Found().SetStatus(ctx, 9999, report.FoundClaimed); !errors.Is(err, report.ErrFoundReportNotFound) {
		t.Errorf("expected found not found, got %v", err)
	}
}

func TestDB_Health(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy database, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := db.Health(ctx); err == nil {
		t.Error("expected cancelled context to fail the ping")
	}

	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.Health(context.Background()); err == nil {
		t.Error("expected closed pool to report unhealthy")
	}
}
