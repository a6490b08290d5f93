package sqlite

import (
	"context"
	"testing"

	"github.com/commtrans/ct-backend-go/internal/database/models"
)

func TestLocaleRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocaleRepository(db)
	ctx := context.Background()

	locale := &models.Locale{
		ID:          "it_IT",
		Name:        "Italian",
		PluralCount: 2,
		PluralForms: "nplurals=2; plural=(n != 1);",
		IsApproved:  true,
	}
	if err := repo.Upsert(ctx, locale); err != nil {
		t.Fatalf("Failed to upsert locale: %v", err)
	}

	got, err := repo.GetByID(ctx, "it_IT")
	if err != nil {
		t.Fatalf("Failed to get locale: %v", err)
	}
	if got == nil {
		t.Fatal("Expected locale, got nil")
	}
	if got.Name != "Italian" || got.PluralCount != 2 || !got.IsApproved {
		t.Errorf("Unexpected locale: %+v", got)
	}

	// Upsert again with changed fields
	locale.Name = "Italian (Italy)"
	locale.IsApproved = false
	if err := repo.Upsert(ctx, locale); err != nil {
		t.Fatalf("Failed to re-upsert locale: %v", err)
	}
	got, err = repo.GetByID(ctx, "it_IT")
	if err != nil {
		t.Fatalf("Failed to get locale: %v", err)
	}
	if got.Name != "Italian (Italy)" || got.IsApproved {
		t.Errorf("Upsert did not update fields: %+v", got)
	}
}

func TestLocaleRepository_GetByID_Unknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocaleRepository(db)

	got, err := repo.GetByID(context.Background(), "zz_ZZ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown locale, got %+v", got)
	}
}

func TestLocaleRepository_GetApproved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocaleRepository(db)
	ctx := context.Background()

	locales := []*models.Locale{
		{ID: "en_US", Name: "English", PluralCount: 2, IsSource: true, IsApproved: true},
		{ID: "it_IT", Name: "Italian", PluralCount: 2, IsApproved: true},
		{ID: "de_DE", Name: "German", PluralCount: 2, IsApproved: true},
		{ID: "xx_XX", Name: "Pending", PluralCount: 2, IsApproved: false},
	}
	for _, l := range locales {
		if err := repo.Upsert(ctx, l); err != nil {
			t.Fatalf("Failed to upsert locale %s: %v", l.ID, err)
		}
	}

	approved, err := repo.GetApproved(ctx)
	if err != nil {
		t.Fatalf("Failed to list approved locales: %v", err)
	}
	// Source and unapproved locales are excluded, result is name ordered.
	if len(approved) != 2 {
		t.Fatalf("Expected 2 approved locales, got %d", len(approved))
	}
	if approved[0].ID != "de_DE" || approved[1].ID != "it_IT" {
		t.Errorf("Unexpected order: %s, %s", approved[0].ID, approved[1].ID)
	}
}

func TestLocaleRepository_AccessLevels(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocaleRepository(db)
	ctx := context.Background()

	level, err := repo.GetAccessLevel(ctx, 42, "it_IT")
	if err != nil {
		t.Fatalf("Failed to get access level: %v", err)
	}
	if level != models.AccessNone {
		t.Errorf("Expected AccessNone for non-member, got %v", level)
	}

	if err := repo.SetAccessLevel(ctx, 42, "it_IT", models.AccessTranslate); err != nil {
		t.Fatalf("Failed to set access level: %v", err)
	}
	level, err = repo.GetAccessLevel(ctx, 42, "it_IT")
	if err != nil {
		t.Fatalf("Failed to get access level: %v", err)
	}
	if level != models.AccessTranslate {
		t.Errorf("Expected AccessTranslate, got %v", level)
	}

	// Upgrading overwrites the previous grant
	if err := repo.SetAccessLevel(ctx, 42, "it_IT", models.AccessReview); err != nil {
		t.Fatalf("Failed to upgrade access level: %v", err)
	}
	level, _ = repo.GetAccessLevel(ctx, 42, "it_IT")
	if level != models.AccessReview {
		t.Errorf("Expected AccessReview, got %v", level)
	}
}
