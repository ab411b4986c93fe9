package gormrepo

import (
	"io/fs"
	"testing"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one embedded migration")
	}
	if entries[0].Name() != "0001_auth_sessions.sql" {
		t.Fatalf("unexpected first migration %q", entries[0].Name())
	}
}
