package projections

import (
	"context"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// ShotLister lists the caller's shots.
type ShotLister interface {
	List(ctx context.Context, filter shotStore.ListFilter) ([]shot.Shot, error)
}

// ShotListCounter lists and counts shots for paginated views.
type ShotListCounter interface {
	ShotLister
	Count(ctx context.Context, filter shotStore.ListFilter) (int, error)
}

// ClubLister returns the clubs a user has recorded.
type ClubLister interface {
	DistinctClubs(ctx context.Context, userID string) ([]shot.Club, error)
}

// RecentPracticeLister returns a user's latest practices.
type RecentPracticeLister interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]practice.Summary, error)
}
