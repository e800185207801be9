package shot

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxResultLength   = 500
	MaxNotesLength    = 2000
	MaxDistanceLength = 20
)

// DefaultPuttsPerSession is the denominator used when a putting session has no total recorded.
const DefaultPuttsPerSession = 20

// StandardPuttDistances are the putting stations always reported, in order.
var StandardPuttDistances = []string{"1m", "1.5m", "2m"}

// Domain errors
var (
	ErrEmptyUserID       = errors.New("user ID is required")
	ErrInvalidCarry      = errors.New("carry and total must be greater than zero")
	ErrEmptyDistance     = errors.New("putting distance is required")
	ErrInvalidTotalPutts = errors.New("total putts must be greater than zero")
	ErrNegativeCount     = errors.New("putting counts cannot be negative")
	ErrMakesExceedPutts  = errors.New("perfect, good and missed putts exceed total putts")
	ErrResultTooLong     = errors.New("result cannot exceed 500 characters")
	ErrNotesTooLong      = errors.New("notes cannot exceed 2000 characters")
	ErrDistanceTooLong   = errors.New("distance cannot exceed 20 characters")
	ErrNonFiniteMetric   = errors.New("shot metrics must be finite numbers")
)

// Shot is a single recorded swing, or a putting session when Club is PUTTER.
type Shot struct {
	ID         string
	UserID     string
	PracticeID string // optional
	Club       Club

	// Full-swing launch monitor metrics.
	Carry     float64
	Total     float64
	BallSpeed float64
	ClubSpeed float64
	Smash     float64
	Spin      int
	LaunchDeg float64
	OfflineM  float64 // signed; negative is left
	Result    string

	// Putting session counters.
	Distance     string // station label, e.g. "1.5m"
	TotalPutts   int
	PerfectMakes int
	GoodMakes    int
	Misses       int
	Notes        string

	CreatedAt time.Time
}

// Validate checks if the Shot has valid data.
// PRE: Shot struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Shot) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrEmptyUserID
	}
	if !s.Club.Valid() {
		return ErrUnknownClub
	}
	if len(s.Result) > MaxResultLength {
		return ErrResultTooLong
	}
	if len(s.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	if s.Club.IsPutter() {
		return s.validatePutting()
	}
	if !finiteMetrics(s.Carry, s.Total, s.BallSpeed, s.ClubSpeed, s.Smash, s.LaunchDeg, s.OfflineM) {
		return ErrNonFiniteMetric
	}
	if s.Carry <= 0 || s.Total <= 0 {
		return ErrInvalidCarry
	}
	return nil
}

func (s *Shot) validatePutting() error {
	if strings.TrimSpace(s.Distance) == "" {
		return ErrEmptyDistance
	}
	if len(s.Distance) > MaxDistanceLength {
		return ErrDistanceTooLong
	}
	if s.TotalPutts <= 0 {
		return ErrInvalidTotalPutts
	}
	if s.PerfectMakes < 0 || s.GoodMakes < 0 || s.Misses < 0 {
		return ErrNegativeCount
	}
	if s.PerfectMakes+s.GoodMakes+s.Misses > s.TotalPutts {
		return ErrMakesExceedPutts
	}
	return nil
}

func finiteMetrics(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Category returns the category of the shot's club.
func (s *Shot) Category() Category {
	return s.Club.Category()
}

// AbsOffline returns the unsigned distance from the target line.
func (s *Shot) AbsOffline() float64 {
	return math.Abs(s.OfflineM)
}

// PerfectPct returns perfect makes as a percentage of the session's putts.
// INVARIANT: Shot fields are not mutated
func (s *Shot) PerfectPct() float64 {
	return float64(s.PerfectMakes) / float64(s.puttDenominator()) * 100
}

// MakePct returns perfect plus good makes as a percentage of the session's putts.
// INVARIANT: Shot fields are not mutated
func (s *Shot) MakePct() float64 {
	return float64(s.PerfectMakes+s.GoodMakes) / float64(s.puttDenominator()) * 100
}

func (s *Shot) puttDenominator() int {
	if s.TotalPutts > 0 {
		return s.TotalPutts
	}
	return DefaultPuttsPerSession
}
