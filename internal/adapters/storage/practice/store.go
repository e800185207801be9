package practice

import (
	"context"
	"errors"

	domain "fairway/internal/domain/practice"
	shotDomain "fairway/internal/domain/shot"
)

// ErrNotFound is returned when no practice matches.
var ErrNotFound = errors.New("practice not found")

// Store persists Practice state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Practice, error)
	Save(ctx context.Context, value domain.Practice) error
	SaveWithShots(ctx context.Context, value domain.Practice, shots []shotDomain.Shot) error
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error)
}
