package practice

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/adapters/storage/storagetest"
	domain "fairway/internal/domain/practice"
	shotDomain "fairway/internal/domain/shot"
)

func newTestStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db := storagetest.OpenMigrated(t)
	if _, err := db.Exec("INSERT INTO account (id, email, created_at) VALUES ('u1', 'u1@example.com', '2026-01-01T00:00:00.000000000Z')"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return NewSQLiteStore(db), db
}

var base = time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)

// TestSQLiteStore_SaveWithShots verifies the practice and its shots are stored together.
func TestSQLiteStore_SaveWithShots(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	p := domain.Practice{ID: "p1", UserID: "u1", Type: domain.TypeRoundSim, Notes: "Pressure Game", CreatedAt: base}
	shots := []shotDomain.Shot{
		{ID: "s1", UserID: "u1", PracticeID: "p1", Club: shotDomain.ClubIron7, Carry: 140, Total: 140, CreatedAt: base},
		{ID: "s2", UserID: "u1", PracticeID: "p1", Club: shotDomain.ClubIron9, Carry: 120, Total: 120, CreatedAt: base.Add(time.Second)},
	}
	if err := store.SaveWithShots(ctx, p, shots); err != nil {
		t.Fatalf("SaveWithShots: %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Type != domain.TypeRoundSim || got.Notes != "Pressure Game" || !got.CreatedAt.Equal(base) {
		t.Errorf("unexpected practice: %+v", got)
	}

	stored, err := shotStore.NewSQLiteStore(db).ListByPractice(ctx, "p1")
	if err != nil {
		t.Fatalf("ListByPractice: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != "s1" || stored[1].ID != "s2" {
		t.Errorf("ListByPractice = %+v", stored)
	}
}

// TestSQLiteStore_SaveWithShots_Atomic verifies a failing shot leaves no practice behind.
func TestSQLiteStore_SaveWithShots_Atomic(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := domain.Practice{ID: "p1", UserID: "u1", Type: domain.TypeRoundSim, CreatedAt: base}
	shots := []shotDomain.Shot{
		{ID: "s1", UserID: "u1", PracticeID: "p1", Club: shotDomain.ClubIron7, Carry: 140, Total: 140, CreatedAt: base},
		// unknown owner violates the account foreign key
		{ID: "s2", UserID: "ghost", PracticeID: "p1", Club: shotDomain.ClubIron7, Carry: 140, Total: 140, CreatedAt: base},
	}
	if err := store.SaveWithShots(ctx, p, shots); err == nil {
		t.Fatal("expected SaveWithShots to fail")
	}
	if _, err := store.GetByID(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("practice should not exist after rollback, got err = %v", err)
	}
}

// TestSQLiteStore_ListRecent verifies ordering, limit and shot counts.
func TestSQLiteStore_ListRecent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, domain.Practice{ID: "old", UserID: "u1", Type: domain.TypeRange, CreatedAt: base})
	store.SaveWithShots(ctx, domain.Practice{ID: "new", UserID: "u1", Type: domain.TypeRoundSim, CreatedAt: base.Add(time.Hour)}, []shotDomain.Shot{
		{ID: "s1", UserID: "u1", PracticeID: "new", Club: shotDomain.ClubDriver, Carry: 200, Total: 220, CreatedAt: base.Add(time.Hour)},
	})
	store.Save(ctx, domain.Practice{ID: "oldest", UserID: "u1", Type: domain.TypePutting, CreatedAt: base.Add(-time.Hour)})

	got, err := store.ListRecent(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListRecent returned %d, want 2", len(got))
	}
	if got[0].ID != "new" || got[0].ShotCount != 1 {
		t.Errorf("first = %+v, want new with 1 shot", got[0])
	}
	if got[1].ID != "old" || got[1].ShotCount != 0 {
		t.Errorf("second = %+v, want old with 0 shots", got[1])
	}
}
