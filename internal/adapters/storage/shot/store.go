package shot

import (
	"context"
	"errors"
	"time"

	domain "fairway/internal/domain/shot"
)

// ErrNotFound is returned when no shot matches.
var ErrNotFound = errors.New("shot not found")

// Store persists Shot state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Shot, error)
	Save(ctx context.Context, value domain.Shot) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Shot, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	ListByPractice(ctx context.Context, practiceID string) ([]domain.Shot, error)
	DistinctClubs(ctx context.Context, userID string) ([]domain.Club, error)
}

// Sort columns accepted by ListFilter.Sort.
const (
	SortCreatedAt = "created_at"
	SortCarry     = "carry"
	SortTotal     = "total"
	SortBallSpeed = "ball_speed"
	SortClub      = "club"
)

// SortColumns lists the allowed sort columns.
var SortColumns = []string{SortCreatedAt, SortCarry, SortTotal, SortBallSpeed, SortClub}

// ListFilter carries filtering parameters for List and Count operations.
type ListFilter struct {
	UserID      string        // required
	Clubs       []domain.Club // empty means any club
	Search      string        // case-insensitive substring
	SearchNotes bool          // search notes instead of result
	From        time.Time     // inclusive; zero means unbounded
	To          time.Time     // exclusive; zero means unbounded
	Sort        string        // one of SortColumns; default created_at
	Asc         bool          // default newest/largest first
	Limit       int           // 0 means no limit
	Offset      int
}
