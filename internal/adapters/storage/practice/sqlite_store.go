package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fairway/internal/adapters/storage"
	shotStore "fairway/internal/adapters/storage/shot"
	domain "fairway/internal/domain/practice"
	shotDomain "fairway/internal/domain/shot"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PracticeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Practice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Practice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, user_id, type, notes, created_at FROM practice WHERE id = ?", id)
	var p domain.Practice
	var createdAt string
	err := row.Scan(&p.ID, &p.UserID, &p.Type, &p.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Practice{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.Practice{}, err
	}
	p.CreatedAt, _ = storage.ParseTime(createdAt)
	return p, nil
}

// Save persists a Practice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Practice) error {
	return s.SaveWithShots(ctx, entity, nil)
}

// SaveWithShots persists a Practice and its shots atomically.
// PRE: entity and shots have been validated; every shot references entity.ID
// POST: Either the practice and all shots are stored, or nothing is
func (s *SQLiteStore) SaveWithShots(ctx context.Context, entity domain.Practice, shots []shotDomain.Shot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO practice (id, user_id, type, notes, created_at) VALUES (?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET type=excluded.type, notes=excluded.notes",
		entity.ID, entity.UserID, entity.Type, entity.Notes, storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	for _, sh := range shots {
		if err := shotStore.SaveTx(ctx, tx, sh); err != nil {
			return fmt.Errorf("save shot %s: %w", sh.ID, err)
		}
	}

	return tx.Commit()
}

// ListRecent returns the user's most recent practices with their shot counts.
// PRE: limit > 0
// POST: Returns at most limit summaries, newest first
func (s *SQLiteStore) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.type, p.notes, p.created_at, COUNT(sh.id)
		FROM practice p
		LEFT JOIN shot sh ON sh.practice_id = p.id
		WHERE p.user_id = ?
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Summary
	for rows.Next() {
		var sum domain.Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.UserID, &sum.Type, &sum.Notes, &createdAt, &sum.ShotCount); err != nil {
			return nil, err
		}
		sum.CreatedAt, _ = storage.ParseTime(createdAt)
		results = append(results, sum)
	}
	return results, rows.Err()
}
