package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/commtrans/ct-backend-go/internal/database/models"
)

func TestTranslatableRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTranslatableRepository(db)
	ctx := context.Background()

	tr := &models.Translatable{
		Hash: "8b1a9953c4611296a827abf8c47804d7",
		Text: "Hello",
	}
	created, err := repo.Upsert(ctx, tr)
	if err != nil {
		t.Fatalf("Failed to upsert translatable: %v", err)
	}
	if !created {
		t.Error("Expected first upsert to create a row")
	}
	if tr.ID == 0 {
		t.Error("Expected translatable ID to be set")
	}

	again := &models.Translatable{Hash: tr.Hash, Text: "Hello"}
	created, err = repo.Upsert(ctx, again)
	if err != nil {
		t.Fatalf("Failed to re-upsert translatable: %v", err)
	}
	if created {
		t.Error("Expected second upsert to reuse the row")
	}
	if again.ID != tr.ID {
		t.Errorf("Expected id %d, got %d", tr.ID, again.ID)
	}
}

func TestTranslatableRepository_GetByHash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTranslatableRepository(db)
	ctx := context.Background()

	got, err := repo.GetByHash(ctx, "missing")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown hash, got %+v", got)
	}

	tr := &models.Translatable{
		Hash:   "deadbeefdeadbeefdeadbeefdeadbeef",
		Text:   "%d item",
		Plural: sql.NullString{String: "%d items", Valid: true},
	}
	if _, err := repo.Upsert(ctx, tr); err != nil {
		t.Fatalf("Failed to upsert translatable: %v", err)
	}

	got, err = repo.GetByHash(ctx, tr.Hash)
	if err != nil {
		t.Fatalf("Failed to get translatable: %v", err)
	}
	if got == nil || got.Text != "%d item" || !got.Plural.Valid || got.Plural.String != "%d items" {
		t.Errorf("Unexpected translatable: %+v", got)
	}
}

func TestTranslatableRepository_AssignToPackage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTranslatableRepository(db)
	ctx := context.Background()

	var ids []int64
	for _, text := range []string{"One", "Two", "Three"} {
		tr := &models.Translatable{Hash: "hash-" + text, Text: text}
		if _, err := repo.Upsert(ctx, tr); err != nil {
			t.Fatalf("Failed to upsert %s: %v", text, err)
		}
		ids = append(ids, tr.ID)
	}

	if err := repo.AssignToPackage(ctx, "my_package", "1.0.0", ids); err != nil {
		t.Fatalf("Failed to assign translatables: %v", err)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM package_translatables`); err != nil {
		t.Fatalf("Failed to count assignments: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 assignments, got %d", count)
	}

	// Re-assigning the same version replaces the previous set
	if err := repo.AssignToPackage(ctx, "my_package", "1.0.0", ids[:1]); err != nil {
		t.Fatalf("Failed to reassign translatables: %v", err)
	}
	if err := db.Get(&count, `SELECT COUNT(*) FROM package_translatables`); err != nil {
		t.Fatalf("Failed to count assignments: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 assignment after reassign, got %d", count)
	}

	var packages int
	if err := db.Get(&packages, `SELECT COUNT(*) FROM translated_packages`); err != nil {
		t.Fatalf("Failed to count packages: %v", err)
	}
	if packages != 1 {
		t.Errorf("Expected a single package row, got %d", packages)
	}

	handles, err := repo.GetPackageHandles(ctx)
	if err != nil {
		t.Fatalf("Failed to list handles: %v", err)
	}
	if len(handles) != 1 || handles[0] != "my_package" {
		t.Errorf("Unexpected handles: %v", handles)
	}

	versions, err := repo.GetPackageVersions(ctx, "my_package")
	if err != nil {
		t.Fatalf("Failed to list versions: %v", err)
	}
	if len(versions) != 1 || versions[0] != "1.0.0" {
		t.Errorf("Unexpected versions: %v", versions)
	}
}
