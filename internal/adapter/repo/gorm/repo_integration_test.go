package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"

	"fleurish/internal/app/ports"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("FLEURISH_DB_DSN")
	if dsn == "" {
		t.Skip("FLEURISH_DB_DSN is required for integration test")
	}
	return dsn
}

func TestTokenRepo_RoundTripAndUpsert(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, Migrations()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	sessionID := "it-token-roundtrip"
	_ = db.Exec("DELETE FROM auth_sessions WHERE session_id = ?", sessionID).Error

	repo := NewTokenRepo(db)
	if _, err := repo.Get(ctx, sessionID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}
	if err := repo.Save(ctx, sessionID, "tok-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, sessionID, "tok-2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := repo.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "tok-2" {
		t.Fatalf("expected tok-2, got %q", got)
	}
	if err := repo.Delete(ctx, sessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, sessionID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(context.Background(), db, Migrations()); err != nil {
			t.Fatalf("apply migrations run %d: %v", i+1, err)
		}
	}
}
