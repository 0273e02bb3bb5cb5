package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func freeTrack(id, name string) models.Track {
	return models.Track{
		ID:      id,
		Name:    name,
		Artist:  "Artist",
		License: &models.License{IsFree: true, Confidence: 0.9},
	}
}

func TestVerdictRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		verdict := models.NewPersistedVerdict(0, "url", freeTrack("t1", "Song"))

		if err := repo.Create(verdict); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}

		if verdict.ID() == "" {
			t.Error("verdict ID should be set after creation")
		}
	})

	t.Run("Create Overwrites Same Track", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)

		first := models.NewPersistedVerdict(0, "url", freeTrack("t1", "Song"))
		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create first verdict: %v", err)
		}

		second := models.NewPersistedVerdict(0, "search", models.Track{
			ID:      "t1",
			Name:    "Song",
			Artist:  "Artist",
			License: &models.License{IsFree: false, Confidence: 0.4},
		})
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to re-create verdict: %v", err)
		}

		stored, err := repo.GetByTrackID("t1")
		if err != nil {
			t.Fatalf("failed to get verdict: %v", err)
		}

		if stored.IsFree() {
			t.Error("expected fresh verdict to overwrite the old one")
		}
		if stored.Source() != "search" {
			t.Errorf("expected source 'search', got %s", stored.Source())
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list verdicts: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected one row per track, got %d", len(all))
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		verdict := models.NewPersistedVerdict(0, "saved", freeTrack("t1", "Song"))

		if err := repo.Create(verdict); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}

		retrieved, err := repo.Get(verdict.ID())
		if err != nil {
			t.Fatalf("failed to get verdict: %v", err)
		}

		if retrieved.TrackID() != "t1" || !retrieved.IsFree() {
			t.Errorf("unexpected verdict %+v", retrieved)
		}

		if _, err := repo.Get("missing"); err == nil {
			t.Error("expected error for missing verdict")
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		verdict := models.NewPersistedVerdict(0, "url", freeTrack("t1", "Song"))

		if err := repo.Create(verdict); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}

		updated := models.RestoreVerdict(
			verdict.ID(), verdict.Sequence(), "t1", "Song (Remaster)", "Artist",
			false, 0.3, "url", verdict.CreatedAt(), verdict.UpdatedAt(), nil,
		)
		if err := repo.Update(updated); err != nil {
			t.Fatalf("failed to update verdict: %v", err)
		}

		stored, err := repo.Get(verdict.ID())
		if err != nil {
			t.Fatalf("failed to get verdict: %v", err)
		}
		if stored.Name() != "Song (Remaster)" || stored.IsFree() {
			t.Errorf("update not applied: %+v", stored)
		}
	})

	t.Run("Update Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		ghost := models.NewPersistedVerdict(1, "url", freeTrack("t9", "Ghost"))
		ghost.SetID("nonexistent")

		if err := repo.Update(ghost); err == nil {
			t.Error("expected error updating missing verdict")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		verdict := models.NewPersistedVerdict(0, "url", freeTrack("t1", "Song"))

		if err := repo.Create(verdict); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}

		if err := repo.Delete(verdict.ID()); err != nil {
			t.Fatalf("failed to delete verdict: %v", err)
		}

		if _, err := repo.Get(verdict.ID()); err == nil {
			t.Error("expected soft-deleted verdict to be excluded")
		}

		if err := repo.Delete(verdict.ID()); err == nil {
			t.Error("expected error deleting twice")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)

		if err := repo.Create(models.NewPersistedVerdict(0, "url", freeTrack("t1", "A"))); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}
		if err := repo.Create(models.NewPersistedVerdict(0, "search", freeTrack("t2", "B"))); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}
		notFree := models.NewPersistedVerdict(0, "search", models.Track{ID: "t3", Name: "C", Artist: "Artist"})
		if err := repo.Create(notFree); err != nil {
			t.Fatalf("failed to create verdict: %v", err)
		}

		t.Run("All", func(t *testing.T) {
			all, err := repo.List(map[string]any{})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("expected 3 verdicts, got %d", len(all))
			}
			// sequence order
			if all[0].TrackID() != "t1" || all[2].TrackID() != "t3" {
				t.Errorf("unexpected ordering: %s, %s", all[0].TrackID(), all[2].TrackID())
			}
		})

		t.Run("By Source", func(t *testing.T) {
			searched, err := repo.List(map[string]any{"source": "search"})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if len(searched) != 2 {
				t.Errorf("expected 2 search verdicts, got %d", len(searched))
			}
		})

		t.Run("By Verdict", func(t *testing.T) {
			free, err := repo.List(map[string]any{"is_free": true})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if len(free) != 2 {
				t.Errorf("expected 2 free verdicts, got %d", len(free))
			}

			bound, err := repo.List(map[string]any{"is_free": false})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if len(bound) != 1 || bound[0].TrackID() != "t3" {
				t.Errorf("unexpected not-free verdicts: %+v", bound)
			}
		})
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		for _, id := range []string{"t1", "t2"} {
			if err := repo.Create(models.NewPersistedVerdict(0, "url", freeTrack(id, "Song "+id))); err != nil {
				t.Fatalf("failed to create verdict: %v", err)
			}
		}

		n, err := repo.Clear()
		if err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 cleared, got %d", n)
		}

		remaining, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected empty log, got %d rows", len(remaining))
		}
	})

	t.Run("Validation Failure", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVerdictRepository(db)
		invalid := models.NewPersistedVerdict(0, "url", models.Track{Name: "no id"})

		if err := repo.Create(invalid); err == nil {
			t.Error("expected validation error for missing track id")
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := NextSequence(db, "verdicts")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	second, err := NextSequence(db, "verdicts")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	if second != first+1 {
		t.Errorf("expected monotonic sequence, got %d then %d", first, second)
	}

	if _, err := NextSequence(db, "missing_table"); err == nil {
		t.Error("expected error for missing sequence table")
	}
}
