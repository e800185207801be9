package projections

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	practiceStore "fairway/internal/adapters/storage/practice"
	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// now is a Wednesday.
var now = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

var errBoom = errors.New("boom")

// mockShotStore applies ListFilter in memory.
type mockShotStore struct {
	shots   []shot.Shot
	listErr error
	filters []shotStore.ListFilter
}

// List implements ShotLister.
// PRE: none
// POST: returns shots matching filter, sorted and paged like the SQLite store
func (m *mockShotStore) List(_ context.Context, filter shotStore.ListFilter) ([]shot.Shot, error) {
	m.filters = append(m.filters, filter)
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []shot.Shot
	for _, s := range m.shots {
		if matches(s, filter) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch filter.Sort {
		case shotStore.SortCarry:
			less = out[i].Carry < out[j].Carry
		default:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if filter.Asc {
			return less
		}
		return !less
	})
	if filter.Offset > 0 {
		out = out[min(filter.Offset, len(out)):]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Count implements ShotListCounter.
// POST: ignores Limit and Offset
func (m *mockShotStore) Count(_ context.Context, filter shotStore.ListFilter) (int, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	n := 0
	for _, s := range m.shots {
		if matches(s, filter) {
			n++
		}
	}
	return n, nil
}

// ListByPractice implements PracticeShotLister.
func (m *mockShotStore) ListByPractice(_ context.Context, practiceID string) ([]shot.Shot, error) {
	var out []shot.Shot
	for _, s := range m.shots {
		if s.PracticeID == practiceID {
			out = append(out, s)
		}
	}
	return out, nil
}

// DistinctClubs implements ClubLister.
func (m *mockShotStore) DistinctClubs(_ context.Context, userID string) ([]shot.Club, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var clubs []shot.Club
	for _, s := range m.shots {
		if s.UserID == userID && !slices.Contains(clubs, s.Club) {
			clubs = append(clubs, s.Club)
		}
	}
	slices.Sort(clubs)
	return clubs, nil
}

func matches(s shot.Shot, f shotStore.ListFilter) bool {
	if s.UserID != f.UserID {
		return false
	}
	if len(f.Clubs) > 0 && !slices.Contains(f.Clubs, s.Club) {
		return false
	}
	if !f.From.IsZero() && s.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !s.CreatedAt.Before(f.To) {
		return false
	}
	if f.Search != "" {
		field := s.Result
		if f.SearchNotes {
			field = s.Notes
		}
		if !strings.Contains(strings.ToLower(field), strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

// mockPracticeStore holds practices by ID.
type mockPracticeStore struct {
	practices map[string]practice.Practice
	recent    []practice.Summary
	err       error
}

// GetByID implements PracticeGetter.
// POST: returns a wrapped ErrNotFound for unknown IDs
func (m *mockPracticeStore) GetByID(_ context.Context, id string) (practice.Practice, error) {
	if m.err != nil {
		return practice.Practice{}, m.err
	}
	p, ok := m.practices[id]
	if !ok {
		return practice.Practice{}, fmt.Errorf("%w: %s", practiceStore.ErrNotFound, id)
	}
	return p, nil
}

// ListRecent implements RecentPracticeLister.
// POST: returns at most limit summaries
func (m *mockPracticeStore) ListRecent(_ context.Context, _ string, limit int) ([]practice.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recent[:min(limit, len(m.recent))], nil
}

func swing(id string, club shot.Club, carry float64, at time.Time) shot.Shot {
	return shot.Shot{ID: id, UserID: "u1", Club: club, Carry: carry, Total: carry + 10, CreatedAt: at}
}

func puttSession(id, distance string, total, perfect, good int, at time.Time) shot.Shot {
	return shot.Shot{
		ID: id, UserID: "u1", Club: shot.ClubPutter, Distance: distance,
		TotalPutts: total, PerfectMakes: perfect, GoodMakes: good, Misses: total - perfect - good,
		CreatedAt: at,
	}
}
