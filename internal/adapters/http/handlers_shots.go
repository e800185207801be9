package web

import (
	"net/http"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/application/listutil"
	"fairway/internal/application/orchestrators"
	"fairway/internal/application/projections"
	"fairway/internal/domain/shot"
)

// handleListShots handles GET /api/{category}
// Query: q, club, month, day, page, per_page, sort, dir
func handleListShots(category shot.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity(r)
		q := r.URL.Query()

		result, err := projections.QueryListShots(r.Context(), projections.ListShotsQuery{
			UserID:   id.UserID,
			Category: category,
			Club:     q.Get("club"),
			Search:   q.Get("q"),
			Month:    q.Get("month"),
			Day:      q.Get("day"),
			Page:     listutil.ParsePageParams(q),
			Sort:     listutil.ParseSortParams(q, shotStore.SortColumns),
			Now:      timeNow(),
		}, projections.ListShotsDeps{ShotStore: stores.ShotStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shotListResponse{Shots: toShots(result.Shots), Page: result.Page})
	}
}

// handleRecordShot handles POST /api/{category}
func handleRecordShot(category shot.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity(r)

		var req shotRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		s, err := orchestrators.ExecuteRecordShot(r.Context(), req.toInput(id.UserID, category), orchestrators.RecordShotDeps{
			ShotStore:  stores.ShotStore,
			Metrics:    collector,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toShot(s))
	}
}

// handleDeleteShot handles DELETE /api/{category}/{id}
func handleDeleteShot(category shot.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity(r)
		err := orchestrators.ExecuteDeleteShot(r.Context(), orchestrators.DeleteShotInput{
			UserID:   id.UserID,
			ShotID:   r.PathValue("id"),
			Category: category,
		}, orchestrators.DeleteShotDeps{ShotStore: stores.ShotStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// handleShotStats handles GET /api/{category}/stats
// Putting returns per-distance stats; every other category returns per-club stats.
func handleShotStats(category shot.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity(r)
		q := r.URL.Query()

		if category == shot.CategoryPutter {
			result, err := projections.QueryPuttingStats(r.Context(), projections.PuttingStatsQuery{
				UserID: id.UserID,
				Month:  q.Get("month"),
				Day:    q.Get("day"),
				Now:    timeNow(),
			}, projections.PuttingStatsDeps{ShotStore: stores.ShotStore})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := puttingStatsResponse{
				Category:     category,
				Distances:    make([]distanceStatResponse, len(result.Distances)),
				BestDistance: result.BestDistance,
				MostPractice: result.MostPractice,
			}
			for i, d := range result.Distances {
				resp.Distances[i] = distanceStatResponse(d)
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		result, err := projections.QueryClubStats(r.Context(), projections.ClubStatsQuery{
			UserID:   id.UserID,
			Category: category,
			Month:    q.Get("month"),
			Day:      q.Get("day"),
			Now:      timeNow(),
		}, projections.ClubStatsDeps{ShotStore: stores.ShotStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := clubStatsResponse{
			Category: result.Category,
			Clubs:    make([]clubStatResponse, len(result.Clubs)),
			Overall:  toClubStat(result.Overall),
		}
		for i, c := range result.Clubs {
			resp.Clubs[i] = toClubStat(c)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleShotTrend handles GET /api/{category}/trend?club=&distance=
func handleShotTrend(category shot.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity(r)
		q := r.URL.Query()

		result, err := projections.QueryShotTrend(r.Context(), projections.ShotTrendQuery{
			UserID:   id.UserID,
			Category: category,
			Club:     q.Get("club"),
			Distance: q.Get("distance"),
			Month:    q.Get("month"),
			Day:      q.Get("day"),
			Now:      timeNow(),
		}, projections.ShotTrendDeps{ShotStore: stores.ShotStore})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := trendResponse{Club: result.Club, Labels: result.Labels, Series: make([]seriesResponse, len(result.Series))}
		for i, s := range result.Series {
			resp.Series[i] = seriesResponse(s)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
