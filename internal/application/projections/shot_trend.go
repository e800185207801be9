package projections

import (
	"context"
	"strings"
	"time"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/shot"
)

// Series names for full-swing and putting trends.
const (
	SeriesCarry      = "carry"
	SeriesTotal      = "total"
	SeriesBallSpeed  = "ballSpeed"
	SeriesClubSpeed  = "clubSpeed"
	SeriesSmash      = "smash"
	SeriesSpin       = "spin"
	SeriesOffline    = "offline"
	SeriesPerfectPct = "perfectPct"
	SeriesMakePct    = "makePct"
)

// ShotTrendQuery selects one club's history.
type ShotTrendQuery struct {
	UserID   string
	Category shot.Category
	Club     string // required outside the putter category
	Distance string // optional; putter only
	Month    string
	Day      string
	Now      time.Time
}

// Series is one named line of a chart.
type Series struct {
	Name   string
	Values []float64
}

// ShotTrendResult carries chart labels and one series per metric, aligned by index.
type ShotTrendResult struct {
	Club   shot.Club
	Labels []string
	Series []Series
}

// ShotTrendDeps holds dependencies for the trend projection.
type ShotTrendDeps struct {
	ShotStore ShotLister
}

// QueryShotTrend averages a club's shots per session day, oldest first.
// PRE: query.Club names a club of query.Category, or the category is putter
// POST: every series has len(Labels) values
func QueryShotTrend(ctx context.Context, query ShotTrendQuery, deps ShotTrendDeps) (ShotTrendResult, error) {
	club := query.Club
	if query.Category == shot.CategoryPutter {
		club = string(shot.ClubPutter)
	}
	if strings.TrimSpace(club) == "" {
		return ShotTrendResult{}, shot.ErrUnknownClub
	}
	filter, err := categoryFilter(query.UserID, query.Category, club, query.Month, query.Day, nowOr(query.Now))
	if err != nil {
		return ShotTrendResult{}, err
	}
	filter.Sort = shotStore.SortCreatedAt
	filter.Asc = true

	shots, err := deps.ShotStore.List(ctx, filter)
	if err != nil {
		return ShotTrendResult{}, err
	}

	distance := strings.TrimSpace(query.Distance)
	var days []time.Time
	groups := make(map[time.Time][]shot.Shot)
	for _, s := range shots {
		if distance != "" && s.Distance != distance {
			continue
		}
		d := sessionDay(s.CreatedAt)
		if _, ok := groups[d]; !ok {
			days = append(days, d)
		}
		groups[d] = append(groups[d], s)
	}

	result := ShotTrendResult{Club: filter.Clubs[0], Labels: make([]string, 0, len(days))}
	metrics := fullSwingMetrics
	if query.Category == shot.CategoryPutter {
		metrics = puttingMetrics
	}
	for _, m := range metrics {
		result.Series = append(result.Series, Series{Name: m.name, Values: make([]float64, 0, len(days))})
	}
	for _, d := range days {
		result.Labels = append(result.Labels, sessionLabel(d))
		group := groups[d]
		for i, m := range metrics {
			var sum float64
			for j := range group {
				sum += m.value(&group[j])
			}
			result.Series[i].Values = append(result.Series[i].Values, round(sum/float64(len(group)), m.places))
		}
	}
	return result, nil
}

type trendMetric struct {
	name   string
	places int
	value  func(*shot.Shot) float64
}

var fullSwingMetrics = []trendMetric{
	{SeriesCarry, 1, func(s *shot.Shot) float64 { return s.Carry }},
	{SeriesTotal, 1, func(s *shot.Shot) float64 { return s.Total }},
	{SeriesBallSpeed, 1, func(s *shot.Shot) float64 { return s.BallSpeed }},
	{SeriesClubSpeed, 1, func(s *shot.Shot) float64 { return s.ClubSpeed }},
	{SeriesSmash, 2, func(s *shot.Shot) float64 { return s.Smash }},
	{SeriesSpin, 0, func(s *shot.Shot) float64 { return float64(s.Spin) }},
	{SeriesOffline, 1, func(s *shot.Shot) float64 { return s.OfflineM }},
}

var puttingMetrics = []trendMetric{
	{SeriesPerfectPct, 1, (*shot.Shot).PerfectPct},
	{SeriesMakePct, 1, (*shot.Shot).MakePct},
}
