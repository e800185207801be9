package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// PracticeStoreForPressure defines the store interface needed by SavePressureGame.
type PracticeStoreForPressure interface {
	SaveWithShots(ctx context.Context, p practice.Practice, shots []shot.Shot) error
}

// SavePressureInput carries a finished pressure game.
type SavePressureInput struct {
	UserID  string
	Score   float64
	Rounds  int
	Details []practice.PressureRound
}

// SavePressureResult is the stored practice with its shots.
type SavePressureResult struct {
	Practice practice.Practice
	Shots    []shot.Shot
}

// SavePressureDeps holds dependencies for SavePressureGame.
type SavePressureDeps struct {
	PracticeStore PracticeStoreForPressure
	Metrics       ShotRecorder // optional
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSavePressureGame stores the game as a ROUND_SIM practice with one shot per round.
// PRE: at least one detail
// POST: practice and shots are stored in one transaction; shots keep the order of Details
func ExecuteSavePressureGame(ctx context.Context, input SavePressureInput, deps SavePressureDeps) (SavePressureResult, error) {
	if input.UserID == "" || len(input.Details) == 0 {
		return SavePressureResult{}, ErrMissingFields
	}

	rounds := input.Rounds
	if rounds <= 0 {
		rounds = len(input.Details)
	}

	now := deps.Now().UTC()
	p := practice.Practice{
		ID:        deps.GenerateID(),
		UserID:    input.UserID,
		Type:      practice.TypeRoundSim,
		Notes:     practice.PressureNotes(input.Score, rounds),
		CreatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return SavePressureResult{}, err
	}

	shots := make([]shot.Shot, 0, len(input.Details))
	for i, d := range input.Details {
		// millisecond steps keep the rounds in order when sorted by time
		s, err := d.ToShot(input.UserID, p.ID, now.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return SavePressureResult{}, fmt.Errorf("round %d: %w", i+1, err)
		}
		s.ID = deps.GenerateID()
		if err := s.Validate(); err != nil {
			return SavePressureResult{}, fmt.Errorf("round %d: %w", i+1, err)
		}
		shots = append(shots, s)
	}

	if err := deps.PracticeStore.SaveWithShots(ctx, p, shots); err != nil {
		return SavePressureResult{}, err
	}

	if deps.Metrics != nil {
		for _, s := range shots {
			deps.Metrics.ShotRecorded(string(s.Category()))
		}
	}
	slog.Info("shot_event", "event", "pressure_game_saved", "practice_id", p.ID, "user_id", input.UserID, "shots", len(shots), "score", input.Score)
	return SavePressureResult{Practice: p, Shots: shots}, nil
}
