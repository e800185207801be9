package web

import (
	"time"

	"fairway/internal/application/listutil"
	"fairway/internal/application/orchestrators"
	"fairway/internal/application/projections"
	"fairway/internal/domain/account"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// --- auth ---

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUser(a account.Account) userResponse {
	return userResponse{ID: a.ID, Email: a.Email, Name: a.DisplayName()}
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
	Method        string        `json:"method,omitempty"`
	CSRFToken     string        `json:"csrfToken,omitempty"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

// --- shots ---

type shotRequest struct {
	Club      string               `json:"club"`
	Carry     orchestrators.Number `json:"carry"`
	Total     orchestrators.Number `json:"total"`
	BallSpeed orchestrators.Number `json:"ballSpeed"`
	ClubSpeed orchestrators.Number `json:"clubSpeed"`
	Smash     orchestrators.Number `json:"smash"`
	Spin      orchestrators.Number `json:"spin"`
	LaunchDeg orchestrators.Number `json:"launchDeg"`
	OfflineM  orchestrators.Number `json:"offlineM"`
	Result    string               `json:"result"`

	Distance     string               `json:"distance"`
	TotalPutts   orchestrators.Number `json:"totalPutts"`
	PerfectMakes orchestrators.Number `json:"perfectMakes"`
	GoodMakes    orchestrators.Number `json:"goodMakes"`
	Misses       orchestrators.Number `json:"misses"`
	Notes        string               `json:"notes"`

	Date string `json:"date"`
}

func (req shotRequest) toInput(userID string, category shot.Category) orchestrators.RecordShotInput {
	return orchestrators.RecordShotInput{
		UserID:       userID,
		Category:     category,
		Club:         req.Club,
		Carry:        req.Carry,
		Total:        req.Total,
		BallSpeed:    req.BallSpeed,
		ClubSpeed:    req.ClubSpeed,
		Smash:        req.Smash,
		Spin:         req.Spin,
		LaunchDeg:    req.LaunchDeg,
		OfflineM:     req.OfflineM,
		Result:       req.Result,
		Distance:     req.Distance,
		TotalPutts:   req.TotalPutts,
		PerfectMakes: req.PerfectMakes,
		GoodMakes:    req.GoodMakes,
		Misses:       req.Misses,
		Notes:        req.Notes,
		Date:         req.Date,
	}
}

type shotResponse struct {
	ID         string        `json:"id"`
	PracticeID string        `json:"practiceId,omitempty"`
	Club       shot.Club     `json:"club"`
	Category   shot.Category `json:"category"`
	Carry      float64       `json:"carry"`
	Total      float64       `json:"total"`
	BallSpeed  float64       `json:"ballSpeed"`
	ClubSpeed  float64       `json:"clubSpeed"`
	Smash      float64       `json:"smash"`
	Spin       int           `json:"spin"`
	LaunchDeg  float64       `json:"launchDeg"`
	OfflineM   float64       `json:"offlineM"`
	Result     string        `json:"result"`

	Distance     string  `json:"distance,omitempty"`
	TotalPutts   int     `json:"totalPutts,omitempty"`
	PerfectMakes int     `json:"perfectMakes,omitempty"`
	GoodMakes    int     `json:"goodMakes,omitempty"`
	Misses       int     `json:"misses,omitempty"`
	PerfectPct   float64 `json:"perfectPct,omitempty"`
	MakePct      float64 `json:"makePct,omitempty"`
	Notes        string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func toShot(s shot.Shot) shotResponse {
	out := shotResponse{
		ID:         s.ID,
		PracticeID: s.PracticeID,
		Club:       s.Club,
		Category:   s.Category(),
		Carry:      s.Carry,
		Total:      s.Total,
		BallSpeed:  s.BallSpeed,
		ClubSpeed:  s.ClubSpeed,
		Smash:      s.Smash,
		Spin:       s.Spin,
		LaunchDeg:  s.LaunchDeg,
		OfflineM:   s.OfflineM,
		Result:     s.Result,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
	if s.Club.IsPutter() {
		out.Distance = s.Distance
		out.TotalPutts = s.TotalPutts
		out.PerfectMakes = s.PerfectMakes
		out.GoodMakes = s.GoodMakes
		out.Misses = s.Misses
		out.PerfectPct = s.PerfectPct()
		out.MakePct = s.MakePct()
	}
	return out
}

func toShots(shots []shot.Shot) []shotResponse {
	out := make([]shotResponse, len(shots))
	for i, s := range shots {
		out[i] = toShot(s)
	}
	return out
}

type shotListResponse struct {
	Shots []shotResponse    `json:"shots"`
	Page  listutil.PageInfo `json:"page"`
}

type clubStatResponse struct {
	Club         shot.Club `json:"club,omitempty"`
	Count        int       `json:"count"`
	AvgCarry     float64   `json:"avgCarry"`
	MaxCarry     float64   `json:"maxCarry"`
	MinCarry     float64   `json:"minCarry"`
	Consistency  float64   `json:"consistency"`
	AvgTotal     float64   `json:"avgTotal"`
	AvgBallSpeed float64   `json:"avgBallSpeed"`
	AvgClubSpeed float64   `json:"avgClubSpeed"`
	AvgSmash     float64   `json:"avgSmash"`
	AvgSpin      float64   `json:"avgSpin"`
	AvgOffline   float64   `json:"avgOffline"`
}

func toClubStat(s projections.ClubStat) clubStatResponse {
	return clubStatResponse(s)
}

type clubStatsResponse struct {
	Category shot.Category      `json:"category"`
	Clubs    []clubStatResponse `json:"clubs"`
	Overall  clubStatResponse   `json:"overall"`
}

type distanceStatResponse struct {
	Distance   string  `json:"distance"`
	Sessions   int     `json:"sessions"`
	Putts      int     `json:"putts"`
	PerfectPct float64 `json:"perfectPct"`
	MakePct    float64 `json:"makePct"`
}

type puttingStatsResponse struct {
	Category     shot.Category          `json:"category"`
	Distances    []distanceStatResponse `json:"distances"`
	BestDistance string                 `json:"bestDistance"`
	MostPractice string                 `json:"mostPracticed"`
}

type seriesResponse struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type trendResponse struct {
	Club   shot.Club        `json:"club"`
	Labels []string         `json:"labels"`
	Series []seriesResponse `json:"series"`
}

// --- practice & dashboard ---

type practiceResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Notes     string    `json:"notes"`
	NotesHTML string    `json:"notesHtml,omitempty"`
	ShotCount int       `json:"shotCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPractice(p practice.Practice, shotCount int) practiceResponse {
	return practiceResponse{ID: p.ID, Type: p.Type, Notes: p.Notes, ShotCount: shotCount, CreatedAt: p.CreatedAt}
}

type practiceDetailResponse struct {
	Practice practiceResponse `json:"practice"`
	Shots    []shotResponse   `json:"shots"`
}

type dashboardResponse struct {
	ShotsThisWeek   int                `json:"shotsThisWeek"`
	AvgCarry        float64            `json:"avgCarry"`
	FairwayPct      float64            `json:"fairwayPct"`
	PuttingAccuracy float64            `json:"puttingAccuracy"`
	TotalShots      int                `json:"totalShots"`
	RecentPractices []practiceResponse `json:"recentPractices"`
}

// --- mobile ---

type mobileShotResponse struct {
	CreatedAt time.Time `json:"createdAt"`
	Club      shot.Club `json:"club"`
	Carry     float64   `json:"carry"`
	Total     float64   `json:"total"`
	BallSpeed float64   `json:"ballSpeed"`
	Spin      int       `json:"spin"`
	OfflineM  float64   `json:"offlineM"`
	LaunchDeg float64   `json:"launchDeg"`
	Result    string    `json:"result"`
}

type pressureRoundRequest struct {
	Club   string               `json:"club"`
	Target orchestrators.Number `json:"target"`
	Actual orchestrators.Number `json:"actual"`
	Points orchestrators.Number `json:"points"`
}

type savePressureRequest struct {
	Score   orchestrators.Number   `json:"score"`
	Rounds  orchestrators.Number   `json:"rounds"`
	Details []pressureRoundRequest `json:"details"`
}

type savePressureResponse struct {
	OK       bool             `json:"ok"`
	Practice practiceResponse `json:"practice"`
	Shots    []shotResponse   `json:"shots"`
}
