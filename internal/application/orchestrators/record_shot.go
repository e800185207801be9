package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fairway/internal/domain/shot"
)

// ShotStoreForRecord defines the store interface needed by RecordShot.
type ShotStoreForRecord interface {
	Save(ctx context.Context, s shot.Shot) error
}

// ShotRecorder counts stored shots. *metrics.Collector satisfies it.
type ShotRecorder interface {
	ShotRecorded(category string)
}

// RecordShotInput carries one shot as submitted to a category route.
// Numeric fields accept JSON numbers or numeric strings.
type RecordShotInput struct {
	UserID   string
	Category shot.Category

	Club      string
	Carry     Number
	Total     Number
	BallSpeed Number
	ClubSpeed Number
	Smash     Number
	Spin      Number
	LaunchDeg Number
	OfflineM  Number
	Result    string

	Distance     string
	TotalPutts   Number
	PerfectMakes Number
	GoodMakes    Number
	Misses       Number
	Notes        string

	Date string // optional; RFC3339, datetime-local or YYYY-MM-DD
}

// RecordShotDeps holds dependencies for RecordShot.
type RecordShotDeps struct {
	ShotStore  ShotStoreForRecord
	Metrics    ShotRecorder // optional
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRecordShot validates and stores a shot for the caller.
// PRE: input.UserID is the authenticated account
// POST: the stored club belongs to input.Category; putter routes always store PUTTER
// A bad date is rejected for full swings but ignored for putting sessions.
func ExecuteRecordShot(ctx context.Context, input RecordShotInput, deps RecordShotDeps) (shot.Shot, error) {
	if !input.Category.Valid() {
		return shot.Shot{}, shot.ErrUnknownCategory
	}

	var s shot.Shot
	if input.Category == shot.CategoryPutter {
		if strings.TrimSpace(input.Distance) == "" || !input.TotalPutts.Present() {
			return shot.Shot{}, ErrMissingFields
		}
		s = shot.Shot{
			Club:         shot.ClubPutter,
			Distance:     strings.TrimSpace(input.Distance),
			TotalPutts:   input.TotalPutts.Int(),
			PerfectMakes: input.PerfectMakes.Int(),
			GoodMakes:    input.GoodMakes.Int(),
			Misses:       input.Misses.Int(),
			Notes:        strings.TrimSpace(input.Notes),
		}
	} else {
		if strings.TrimSpace(input.Club) == "" || !input.Carry.Present() || !input.Total.Present() {
			return shot.Shot{}, ErrMissingFields
		}
		club, err := shot.NormalizeClub(input.Club)
		if err != nil {
			return shot.Shot{}, err
		}
		if !input.Category.Contains(club) {
			return shot.Shot{}, shot.ErrClubNotInCat
		}
		s = shot.Shot{
			Club:      club,
			Carry:     input.Carry.Float(),
			Total:     input.Total.Float(),
			BallSpeed: input.BallSpeed.Float(),
			ClubSpeed: input.ClubSpeed.Float(),
			Smash:     input.Smash.Float(),
			Spin:      input.Spin.Int(),
			LaunchDeg: input.LaunchDeg.Float(),
			OfflineM:  input.OfflineM.Float(),
			Result:    strings.TrimSpace(input.Result),
		}
	}

	s.ID = deps.GenerateID()
	s.UserID = input.UserID
	s.CreatedAt = deps.Now().UTC()
	if input.Date != "" {
		at, err := ParseShotDate(input.Date)
		switch {
		case err == nil:
			s.CreatedAt = at
		case input.Category == shot.CategoryPutter:
			slog.Info("shot_event", "event", "date_ignored", "user_id", input.UserID, "date", input.Date)
		default:
			return shot.Shot{}, err
		}
	}

	if err := s.Validate(); err != nil {
		return shot.Shot{}, err
	}
	if err := deps.ShotStore.Save(ctx, s); err != nil {
		return shot.Shot{}, err
	}

	if deps.Metrics != nil {
		deps.Metrics.ShotRecorded(string(input.Category))
	}
	slog.Info("shot_event", "event", "shot_recorded", "shot_id", s.ID, "user_id", s.UserID, "club", s.Club)
	return s, nil
}
