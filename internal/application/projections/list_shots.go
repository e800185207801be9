package projections

import (
	"context"
	"strings"
	"time"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/application/listutil"
	"fairway/internal/domain/shot"
)

// ListShotsQuery carries the filters of a category list.
type ListShotsQuery struct {
	UserID   string
	Category shot.Category
	Club     string // optional; any spelling NormalizeClub accepts
	Search   string // matches result, or notes for putting
	Month    string
	Day      string
	Page     listutil.PageParams
	Sort     listutil.SortParams
	Now      time.Time // optional: if zero, time.Now() is used
}

// ListShotsResult carries one page of shots.
type ListShotsResult struct {
	Shots []shot.Shot
	Page  listutil.PageInfo
}

// ListShotsDeps holds dependencies for the list projection.
type ListShotsDeps struct {
	ShotStore ShotListCounter
}

// QueryListShots returns the caller's shots in one category, newest first unless sorted otherwise.
// PRE: query.UserID is the authenticated account
// POST: every returned shot belongs to query.UserID and query.Category
func QueryListShots(ctx context.Context, query ListShotsQuery, deps ListShotsDeps) (ListShotsResult, error) {
	filter, err := categoryFilter(query.UserID, query.Category, query.Club, query.Month, query.Day, nowOr(query.Now))
	if err != nil {
		return ListShotsResult{}, err
	}
	filter.Search = strings.TrimSpace(query.Search)
	filter.SearchNotes = query.Category == shot.CategoryPutter
	filter.Sort = query.Sort.Sort
	filter.Asc = query.Sort.Asc

	total, err := deps.ShotStore.Count(ctx, filter)
	if err != nil {
		return ListShotsResult{}, err
	}
	page := listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, total)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset()

	shots, err := deps.ShotStore.List(ctx, filter)
	if err != nil {
		return ListShotsResult{}, err
	}
	if shots == nil {
		shots = []shot.Shot{}
	}
	return ListShotsResult{Shots: shots, Page: page}, nil
}

// categoryFilter builds the store filter shared by the list and stats projections.
func categoryFilter(userID string, category shot.Category, club, month, day string, now time.Time) (shotStore.ListFilter, error) {
	if !category.Valid() {
		return shotStore.ListFilter{}, shot.ErrUnknownCategory
	}
	from, to, err := DateWindow(month, day, now)
	if err != nil {
		return shotStore.ListFilter{}, err
	}
	clubs := category.Clubs()
	if strings.TrimSpace(club) != "" {
		c, err := shot.NormalizeClub(club)
		if err != nil {
			return shotStore.ListFilter{}, err
		}
		if !category.Contains(c) {
			return shotStore.ListFilter{}, shot.ErrClubNotInCat
		}
		clubs = []shot.Club{c}
	}
	return shotStore.ListFilter{UserID: userID, Clubs: clubs, From: from, To: to}, nil
}
