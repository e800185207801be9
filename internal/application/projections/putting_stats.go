package projections

import (
	"context"
	"math"
	"slices"
	"time"

	"fairway/internal/domain/shot"
)

// PuttingStatsQuery selects the putting sessions to summarise.
type PuttingStatsQuery struct {
	UserID string
	Month  string
	Day    string
	Now    time.Time
}

// DistanceStat summarises one putting station.
type DistanceStat struct {
	Distance   string
	Sessions   int
	Putts      int
	PerfectPct float64 // mean of per-session perfect percentages, each rounded to a whole percent
	MakePct    float64 // mean of per-session make percentages, each rounded to a whole percent
}

// PuttingStatsResult carries per-distance stats.
type PuttingStatsResult struct {
	Distances    []DistanceStat
	BestDistance string // highest PerfectPct among stations with sessions
	MostPractice string // most sessions
}

// PuttingStatsDeps holds dependencies for the putting stats projection.
type PuttingStatsDeps struct {
	ShotStore ShotLister
}

// QueryPuttingStats averages putting sessions per distance.
// POST: the standard stations come first and are always present; other distances follow alphabetically
func QueryPuttingStats(ctx context.Context, query PuttingStatsQuery, deps PuttingStatsDeps) (PuttingStatsResult, error) {
	filter, err := categoryFilter(query.UserID, shot.CategoryPutter, "", query.Month, query.Day, nowOr(query.Now))
	if err != nil {
		return PuttingStatsResult{}, err
	}
	sessions, err := deps.ShotStore.List(ctx, filter)
	if err != nil {
		return PuttingStatsResult{}, err
	}

	groups := make(map[string][]shot.Shot)
	for _, s := range sessions {
		groups[s.Distance] = append(groups[s.Distance], s)
	}

	order := slices.Clone(shot.StandardPuttDistances)
	var extra []string
	for d := range groups {
		if !slices.Contains(shot.StandardPuttDistances, d) {
			extra = append(extra, d)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	var result PuttingStatsResult
	var best, most *DistanceStat
	for _, d := range order {
		result.Distances = append(result.Distances, distanceStat(d, groups[d]))
	}
	for i := range result.Distances {
		ds := &result.Distances[i]
		if ds.Sessions == 0 {
			continue
		}
		// ties go to the later distance
		if best == nil || ds.PerfectPct >= best.PerfectPct {
			best = ds
		}
		if most == nil || ds.Sessions > most.Sessions {
			most = ds
		}
	}
	if best != nil {
		result.BestDistance = best.Distance
		result.MostPractice = most.Distance
	}
	return result, nil
}

func distanceStat(distance string, sessions []shot.Shot) DistanceStat {
	ds := DistanceStat{Distance: distance, Sessions: len(sessions)}
	if len(sessions) == 0 {
		return ds
	}
	// each session is rounded to a whole percent before averaging, as the session list shows it
	var perfect, made float64
	for _, s := range sessions {
		ds.Putts += s.TotalPutts
		perfect += math.Round(s.PerfectPct())
		made += math.Round(s.MakePct())
	}
	n := float64(len(sessions))
	ds.PerfectPct = round(perfect/n, 1)
	ds.MakePct = round(made/n, 1)
	return ds
}
