package practice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fairway/internal/domain/shot"
)

// Practice type constants
const (
	TypeRange     = "RANGE"
	TypeRoundSim  = "ROUND_SIM"
	TypePutting   = "PUTTING"
	TypeShortGame = "SHORT_GAME"
)

// ValidTypes contains all valid practice types.
var ValidTypes = []string{TypeRange, TypeRoundSim, TypePutting, TypeShortGame}

// PressureGameNotes is the note prefix for practices created from the pressure game.
const PressureGameNotes = "Pressure Game"

// DefaultPressureClub is used when a pressure game round names no recognisable club.
const DefaultPressureClub = shot.ClubIron7

// MaxNotesLength bounds practice notes.
const MaxNotesLength = 5000

// Domain errors
var (
	ErrEmptyUserID    = errors.New("user ID is required")
	ErrInvalidType    = errors.New("practice type must be one of: RANGE, ROUND_SIM, PUTTING, SHORT_GAME")
	ErrNotesTooLong   = errors.New("practice notes cannot exceed 5000 characters")
	ErrInvalidActual  = errors.New("pressure round distance must be greater than zero")
	ErrNonFiniteRound = errors.New("pressure round values must be finite numbers")
)

// Practice groups the shots of one session.
type Practice struct {
	ID        string
	UserID    string
	Type      string
	Notes     string // markdown
	CreatedAt time.Time
}

// Summary is a practice with the number of shots recorded in it.
type Summary struct {
	Practice
	ShotCount int
}

// Validate checks if the Practice has valid data.
// PRE: Practice struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Practice) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrEmptyUserID
	}
	if !isValidType(p.Type) {
		return ErrInvalidType
	}
	if len(p.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// PressureRound is one scored attempt of a pressure game.
type PressureRound struct {
	Club   string
	Target float64
	Actual float64
	Points float64
}

// ToShot converts the round into a shot belonging to the given practice.
// PRE: userID and practiceID are non-empty
// POST: Carry and Total equal Actual; unknown clubs fall back to DefaultPressureClub
// Non-finite values are rejected with ErrNonFiniteRound.
func (r PressureRound) ToShot(userID, practiceID string, at time.Time) (shot.Shot, error) {
	for _, v := range []float64{r.Target, r.Actual, r.Points} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return shot.Shot{}, ErrNonFiniteRound
		}
	}
	if r.Actual <= 0 {
		return shot.Shot{}, ErrInvalidActual
	}
	club, err := shot.NormalizeClub(r.Club)
	if err != nil || club.IsPutter() {
		club = DefaultPressureClub
	}
	return shot.Shot{
		UserID:     userID,
		PracticeID: practiceID,
		Club:       club,
		Carry:      r.Actual,
		Total:      r.Actual,
		Result:     fmt.Sprintf("target %s, score %.1f", strconv.FormatFloat(r.Target, 'f', -1, 64), r.Points),
		CreatedAt:  at,
	}, nil
}

// PressureNotes renders the practice notes for a finished pressure game.
func PressureNotes(score float64, rounds int) string {
	return fmt.Sprintf("%s\n\n- **Score:** %.1f\n- **Rounds:** %d", PressureGameNotes, score, rounds)
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}
