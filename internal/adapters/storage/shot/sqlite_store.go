package shot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fairway/internal/adapters/storage"
	domain "fairway/internal/domain/shot"
)

const columns = "id, user_id, practice_id, club, carry, total, ball_speed, club_speed, smash, spin, launch_deg, offline_m, " +
	"result, distance, total_putts, perfect_makes, good_makes, misses, notes, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ShotStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Shot by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Shot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM shot WHERE id = ?", id)
	entity, err := scanShot(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Shot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Shot to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Shot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := SaveTx(ctx, tx, entity); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveTx upserts a Shot inside an existing transaction.
// PRE: tx is open; entity has been validated
// POST: Entity is written; the caller commits
func SaveTx(ctx context.Context, tx *sql.Tx, entity domain.Shot) error {
	updates := []string{
		"practice_id=excluded.practice_id",
		"club=excluded.club",
		"carry=excluded.carry",
		"total=excluded.total",
		"ball_speed=excluded.ball_speed",
		"club_speed=excluded.club_speed",
		"smash=excluded.smash",
		"spin=excluded.spin",
		"launch_deg=excluded.launch_deg",
		"offline_m=excluded.offline_m",
		"result=excluded.result",
		"distance=excluded.distance",
		"total_putts=excluded.total_putts",
		"perfect_makes=excluded.perfect_makes",
		"good_makes=excluded.good_makes",
		"misses=excluded.misses",
		"notes=excluded.notes",
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 20), ", ")
	query := fmt.Sprintf(
		"INSERT INTO shot (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		columns, placeholders, strings.Join(updates, ", "),
	)

	var practiceID any
	if entity.PracticeID != "" {
		practiceID = entity.PracticeID
	}

	_, err := tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		practiceID,
		string(entity.Club),
		entity.Carry,
		entity.Total,
		entity.BallSpeed,
		entity.ClubSpeed,
		entity.Smash,
		entity.Spin,
		entity.LaunchDeg,
		entity.OfflineM,
		entity.Result,
		entity.Distance,
		entity.TotalPutts,
		entity.PerfectMakes,
		entity.GoodMakes,
		entity.Misses,
		entity.Notes,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Shot from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM shot WHERE id = ?", id)
	return err
}

// List retrieves Shots matching the filter.
// PRE: filter.UserID is non-empty
// POST: Returns matching entities ordered by filter.Sort
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Shot, error) {
	where, args := buildWhere(filter)

	var b strings.Builder
	b.WriteString("SELECT " + columns + " FROM shot")
	b.WriteString(where)
	b.WriteString(orderBy(filter))
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Count returns the number of Shots matching the filter, ignoring Limit and Offset.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM shot"+where, args...).Scan(&count)
	return count, err
}

// ListByPractice retrieves the shots of one practice in the order they were hit.
func (s *SQLiteStore) ListByPractice(ctx context.Context, practiceID string) ([]domain.Shot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+columns+" FROM shot WHERE practice_id = ? ORDER BY created_at ASC, id ASC", practiceID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// DistinctClubs returns the clubs the user has recorded shots with, alphabetically.
func (s *SQLiteStore) DistinctClubs(ctx context.Context, userID string) ([]domain.Club, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT club FROM shot WHERE user_id = ? ORDER BY club ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		clubs = append(clubs, domain.Club(c))
	}
	return clubs, rows.Err()
}

func buildWhere(filter ListFilter) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{filter.UserID}

	if len(filter.Clubs) > 0 {
		marks := make([]string, len(filter.Clubs))
		for i, c := range filter.Clubs {
			marks[i] = "?"
			args = append(args, string(c))
		}
		conds = append(conds, "club IN ("+strings.Join(marks, ", ")+")")
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		col := "result"
		if filter.SearchNotes {
			col = "notes"
		}
		conds = append(conds, storage.UnicodeLowerFunc+"("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(strings.ToLower(q))+"%")
	}
	if !filter.From.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, storage.FormatTime(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "created_at < ?")
		args = append(args, storage.FormatTime(filter.To))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(filter ListFilter) string {
	col := SortCreatedAt
	for _, c := range SortColumns {
		if filter.Sort == c {
			col = c
		}
	}
	dir := "DESC"
	if filter.Asc {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func collect(rows *sql.Rows) ([]domain.Shot, error) {
	defer rows.Close()
	var results []domain.Shot
	for rows.Next() {
		entity, err := scanShot(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanShot extracts a Shot from a row scanner function.
func scanShot(scan func(dest ...any) error) (domain.Shot, error) {
	var entity domain.Shot
	var practiceID sql.NullString
	var club, createdAt string
	err := scan(
		&entity.ID,
		&entity.UserID,
		&practiceID,
		&club,
		&entity.Carry,
		&entity.Total,
		&entity.BallSpeed,
		&entity.ClubSpeed,
		&entity.Smash,
		&entity.Spin,
		&entity.LaunchDeg,
		&entity.OfflineM,
		&entity.Result,
		&entity.Distance,
		&entity.TotalPutts,
		&entity.PerfectMakes,
		&entity.GoodMakes,
		&entity.Misses,
		&entity.Notes,
		&createdAt,
	)
	if err != nil {
		return domain.Shot{}, err
	}
	entity.Club = domain.Club(club)
	entity.PracticeID = practiceID.String
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}
