package projections

import (
	"context"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/shot"
)

// MobileShotsQuery identifies whose shots to return.
type MobileShotsQuery struct {
	UserID string
	Club   string // optional
}

// MobileShotsDeps holds dependencies for the mobile shot list.
type MobileShotsDeps struct {
	ShotStore ShotLister
}

// QueryMobileShots returns every shot of the user, oldest first, for the mobile app to chart locally.
// POST: never returns a nil slice on success
func QueryMobileShots(ctx context.Context, query MobileShotsQuery, deps MobileShotsDeps) ([]shot.Shot, error) {
	filter := shotStore.ListFilter{UserID: query.UserID, Sort: shotStore.SortCreatedAt, Asc: true}
	if query.Club != "" {
		c, err := shot.NormalizeClub(query.Club)
		if err != nil {
			return nil, err
		}
		filter.Clubs = []shot.Club{c}
	}
	shots, err := deps.ShotStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if shots == nil {
		shots = []shot.Shot{}
	}
	return shots, nil
}
