package projections

import (
	"context"
	"time"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// FairwayHitMaxOffline is the widest miss, in metres either side, still counted as a fairway hit.
const FairwayHitMaxOffline = 15.0

// RecentPracticeLimit bounds the practices shown on the dashboard.
const RecentPracticeLimit = 5

// DashboardQuery identifies whose dashboard to build.
type DashboardQuery struct {
	UserID string
	Now    time.Time
}

// DashboardResult summarises a user's practice.
type DashboardResult struct {
	ShotsThisWeek   int
	AvgCarry        float64 // full-swing shots only
	FairwayPct      float64 // driver-category shots within FairwayHitMaxOffline
	PuttingAccuracy float64 // make percent over every putting session
	TotalShots      int
	RecentPractices []practice.Summary
}

// DashboardDeps holds dependencies for the dashboard projection.
type DashboardDeps struct {
	ShotStore     ShotLister
	PracticeStore RecentPracticeLister
}

// QueryDashboard computes the headline numbers of the dashboard.
// POST: percentages are 0 when there is nothing to measure
func QueryDashboard(ctx context.Context, query DashboardQuery, deps DashboardDeps) (DashboardResult, error) {
	now := nowOr(query.Now).UTC()
	shots, err := deps.ShotStore.List(ctx, shotStore.ListFilter{UserID: query.UserID})
	if err != nil {
		return DashboardResult{}, err
	}
	weekStart := StartOfWeek(now)

	var result DashboardResult
	var carrySum float64
	var fullSwings, drives, fairways, putts, made int
	for i := range shots {
		s := &shots[i]
		if !s.CreatedAt.Before(weekStart) {
			result.ShotsThisWeek++
		}
		if s.Club.IsPutter() {
			putts += s.TotalPutts
			made += s.PerfectMakes + s.GoodMakes
			continue
		}
		fullSwings++
		carrySum += s.Carry
		if s.Category() == shot.CategoryDriver {
			drives++
			if s.AbsOffline() <= FairwayHitMaxOffline {
				fairways++
			}
		}
	}
	result.TotalShots = len(shots)
	if fullSwings > 0 {
		result.AvgCarry = round(carrySum/float64(fullSwings), 1)
	}
	if drives > 0 {
		result.FairwayPct = round(float64(fairways)/float64(drives)*100, 1)
	}
	if putts > 0 {
		result.PuttingAccuracy = round(float64(made)/float64(putts)*100, 1)
	}

	recent, err := deps.PracticeStore.ListRecent(ctx, query.UserID, RecentPracticeLimit)
	if err != nil {
		return DashboardResult{}, err
	}
	if recent == nil {
		recent = []practice.Summary{}
	}
	result.RecentPractices = recent
	return result, nil
}

// StartOfWeek returns midnight UTC of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := sessionDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
