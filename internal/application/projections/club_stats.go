package projections

import (
	"context"
	"math"
	"slices"
	"time"

	"fairway/internal/domain/shot"
)

// ClubStatsQuery selects the shots to summarise.
type ClubStatsQuery struct {
	UserID   string
	Category shot.Category
	Month    string
	Day      string
	Now      time.Time
}

// ClubStat summarises one club.
type ClubStat struct {
	Club         shot.Club
	Count        int
	AvgCarry     float64
	MaxCarry     float64
	MinCarry     float64
	Consistency  float64 // percent; 100 means every carry was identical
	AvgTotal     float64
	AvgBallSpeed float64
	AvgClubSpeed float64
	AvgSmash     float64
	AvgSpin      float64
	AvgOffline   float64 // mean absolute deviation from the target line
}

// ClubStatsResult lists per-club stats in bag order, plus the whole category as Overall.
type ClubStatsResult struct {
	Category shot.Category
	Clubs    []ClubStat
	Overall  ClubStat
}

// ClubStatsDeps holds dependencies for the club stats projection.
type ClubStatsDeps struct {
	ShotStore ShotLister
}

// QueryClubStats computes carry and launch averages per club in a full-swing category.
// PRE: query.Category is not putter (use QueryPuttingStats)
// POST: clubs with no shots are omitted; Overall.Count is the total number of shots
func QueryClubStats(ctx context.Context, query ClubStatsQuery, deps ClubStatsDeps) (ClubStatsResult, error) {
	if query.Category == shot.CategoryPutter {
		return ClubStatsResult{}, shot.ErrClubNotInCat
	}
	filter, err := categoryFilter(query.UserID, query.Category, "", query.Month, query.Day, nowOr(query.Now))
	if err != nil {
		return ClubStatsResult{}, err
	}
	shots, err := deps.ShotStore.List(ctx, filter)
	if err != nil {
		return ClubStatsResult{}, err
	}

	byClub := make(map[shot.Club][]shot.Shot)
	for _, s := range shots {
		byClub[s.Club] = append(byClub[s.Club], s)
	}

	result := ClubStatsResult{Category: query.Category, Clubs: []ClubStat{}}
	for _, c := range query.Category.Clubs() {
		if group := byClub[c]; len(group) > 0 {
			result.Clubs = append(result.Clubs, summarise(c, group))
		}
	}
	result.Overall = summarise("", shots)
	return result, nil
}

// summarise averages over every shot, counting missing metrics as zero.
func summarise(club shot.Club, shots []shot.Shot) ClubStat {
	st := ClubStat{Club: club, Count: len(shots)}
	if len(shots) == 0 {
		return st
	}

	carries := make([]float64, len(shots))
	var carry, total, ball, clubSpeed, smash, spin, offline float64
	for i, s := range shots {
		carries[i] = s.Carry
		carry += s.Carry
		total += s.Total
		ball += s.BallSpeed
		clubSpeed += s.ClubSpeed
		smash += s.Smash
		spin += float64(s.Spin)
		offline += s.AbsOffline()
	}
	n := float64(len(shots))

	st.AvgCarry = round(carry/n, 1)
	st.MaxCarry = slices.Max(carries)
	st.MinCarry = slices.Min(carries)
	st.Consistency = Consistency(st.MaxCarry, st.MinCarry, carry/n)
	st.AvgTotal = round(total/n, 1)
	st.AvgBallSpeed = round(ball/n, 1)
	st.AvgClubSpeed = round(clubSpeed/n, 1)
	st.AvgSmash = round(smash/n, 2)
	st.AvgSpin = math.Round(spin / n)
	st.AvgOffline = round(offline/n, 1)
	return st
}

// Consistency scores carry spread: max(0, (1 - (max-min)/avg) * 100), rounded to a whole percent.
// POST: 0 when avg is not positive
func Consistency(maxCarry, minCarry, avg float64) float64 {
	if avg <= 0 {
		return 0
	}
	return math.Round(math.Max(0, (1-(maxCarry-minCarry)/avg)*100))
}
