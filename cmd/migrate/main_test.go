package main

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		t.Fatalf("unexpected error loading embedded migrations: %v", err)
	}
	if len(migrations) < 2 {
		t.Fatalf("expected at least 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 {
		t.Fatalf("expected first migration version 1, got %d", migrations[0].Version)
	}
	if migrations[1].Version != 2 {
		t.Fatalf("expected second migration version 2, got %d", migrations[1].Version)
	}
	if migrations[0].UpSQL == "" || migrations[0].DownSQL == "" {
		t.Fatal("expected non-empty up/down sql for first migration")
	}
	if !strings.Contains(migrations[0].UpSQL, "training_rows") {
		t.Fatalf("expected first migration to create training_rows: %s", migrations[0].Name)
	}
	if !strings.Contains(migrations[1].UpSQL, "model_versions") {
		t.Fatalf("expected second migration to create model_versions: %s", migrations[1].Name)
	}
}

func TestLoadMigrationsRejectsMissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_only_up.up.sql": {Data: []byte("CREATE TABLE t (id INT);")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected error for missing down migration")
	}
}

func TestLoadMigrationsRejectsBadFilename(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/first.sql": {Data: []byte("CREATE TABLE t (id INT);")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected error for invalid filename")
	}
}

func TestLoadMigrationsRejectsEmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_a.up.sql":   {Data: []byte("  ")},
		"migrations/0001_a.down.sql": {Data: []byte("DROP TABLE a;")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected error for empty migration file")
	}
}

func TestLoadMigrationsRejectsConflictingNames(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_a.up.sql":   {Data: []byte("CREATE TABLE a (id INT);")},
		"migrations/0001_b.down.sql": {Data: []byte("DROP TABLE a;")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected error for conflicting names")
	}
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestRunRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if err := run(context.Background(), []string{"up"}); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}
