package web

import (
	"net/http"

	"fairway/internal/application/orchestrators"
	"fairway/internal/application/projections"
	"fairway/internal/domain/practice"
)

// handleDashboard handles GET /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	result, err := projections.QueryDashboard(r.Context(), projections.DashboardQuery{
		UserID: id.UserID,
		Now:    timeNow(),
	}, projections.DashboardDeps{ShotStore: stores.ShotStore, PracticeStore: stores.PracticeStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := dashboardResponse{
		ShotsThisWeek:   result.ShotsThisWeek,
		AvgCarry:        result.AvgCarry,
		FairwayPct:      result.FairwayPct,
		PuttingAccuracy: result.PuttingAccuracy,
		TotalShots:      result.TotalShots,
		RecentPractices: make([]practiceResponse, len(result.RecentPractices)),
	}
	for i, p := range result.RecentPractices {
		resp.RecentPractices[i] = toPractice(p.Practice, p.ShotCount)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePracticeDetail handles GET /api/practices/{id}
func handlePracticeDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	result, err := projections.QueryPracticeDetail(r.Context(), projections.PracticeDetailQuery{
		UserID:     id.UserID,
		PracticeID: r.PathValue("id"),
	}, projections.PracticeDetailDeps{PracticeStore: stores.PracticeStore, ShotStore: stores.ShotStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	p := toPractice(result.Practice, len(result.Shots))
	p.NotesHTML = result.NotesHTML
	writeJSON(w, http.StatusOK, practiceDetailResponse{Practice: p, Shots: toShots(result.Shots)})
}

// handleMobileShots handles GET /api/mobile/shots
func handleMobileShots(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	shots, err := projections.QueryMobileShots(r.Context(), projections.MobileShotsQuery{
		UserID: id.UserID,
		Club:   r.URL.Query().Get("club"),
	}, projections.MobileShotsDeps{ShotStore: stores.ShotStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]mobileShotResponse, len(shots))
	for i, s := range shots {
		out[i] = mobileShotResponse{
			CreatedAt: s.CreatedAt,
			Club:      s.Club,
			Carry:     s.Carry,
			Total:     s.Total,
			BallSpeed: s.BallSpeed,
			Spin:      s.Spin,
			OfflineM:  s.OfflineM,
			LaunchDeg: s.LaunchDeg,
			Result:    s.Result,
		}
	}
	writeJSON(w, http.StatusOK, map[string][]mobileShotResponse{"shots": out})
}

// handleMobileClubs handles GET /api/mobile/clubs
func handleMobileClubs(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)
	clubs, err := projections.QueryClubs(r.Context(), id.UserID, projections.ClubsDeps{ShotStore: stores.ShotStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

// handleSavePressure handles POST /api/mobile/save-pressure
func handleSavePressure(w http.ResponseWriter, r *http.Request) {
	id, _ := identity(r)

	var req savePressureRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	details := make([]practice.PressureRound, len(req.Details))
	for i, d := range req.Details {
		details[i] = practice.PressureRound{
			Club:   d.Club,
			Target: d.Target.Float(),
			Actual: d.Actual.Float(),
			Points: d.Points.Float(),
		}
	}

	result, err := orchestrators.ExecuteSavePressureGame(r.Context(), orchestrators.SavePressureInput{
		UserID:  id.UserID,
		Score:   req.Score.Float(),
		Rounds:  req.Rounds.Int(),
		Details: details,
	}, orchestrators.SavePressureDeps{
		PracticeStore: stores.PracticeStore,
		Metrics:       collector,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, savePressureResponse{
		OK:       true,
		Practice: toPractice(result.Practice, len(result.Shots)),
		Shots:    toShots(result.Shots),
	})
}
