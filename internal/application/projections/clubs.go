package projections

import (
	"context"

	"fairway/internal/domain/shot"
)

// ClubsDeps holds dependencies for the clubs projection.
type ClubsDeps struct {
	ShotStore ClubLister
}

// QueryClubs lists the clubs the user has recorded shots with, alphabetically.
func QueryClubs(ctx context.Context, userID string, deps ClubsDeps) ([]shot.Club, error) {
	clubs, err := deps.ShotStore.DistinctClubs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []shot.Club{}
	}
	return clubs, nil
}
