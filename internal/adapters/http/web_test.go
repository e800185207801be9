package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fairway/internal/adapters/email"
	"fairway/internal/adapters/http/middleware"
	"fairway/internal/adapters/metrics"
	"fairway/internal/adapters/security"
	accountStore "fairway/internal/adapters/storage/account"
	practiceStore "fairway/internal/adapters/storage/practice"
	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/adapters/storage/storagetest"
	"fairway/internal/domain/account"
)

func init() {
	account.HashCost = bcrypt.MinCost
}

type testApp struct {
	handler http.Handler
	sender  *email.NoopSender
	metrics *metrics.Collector
}

// newTestApp wires the full mux over an in-memory database.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := storagetest.OpenMigrated(t)
	tokenSvc, err := security.NewTokenService(strings.Repeat("k", 32), "fairway", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	app := &testApp{sender: email.NewNoopSender(), metrics: metrics.NewCollector()}
	app.handler = NewMux(&Stores{
		AccountStore:  accountStore.NewSQLiteStore(db),
		ShotStore:     shotStore.NewSQLiteStore(db),
		PracticeStore: practiceStore.NewSQLiteStore(db),
	}, Options{
		Sessions:    middleware.NewMemoryStore(time.Hour),
		Tokens:      tokenSvc,
		Metrics:     app.metrics,
		EmailSender: app.sender,
		Health:      db.PingContext,
		CSRFKey:     make([]byte, 32),
		RateLimit:   1000,
		RateBurst:   1000,
	})
	return app
}

// do sends a JSON request, authenticating with token when it is non-empty.
func (a *testApp) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// signUp registers through the mobile route and returns the bearer token.
func (a *testApp) signUp(t *testing.T, emailAddr string) string {
	t.Helper()
	rec := a.do(t, "POST", "/api/mobile/register", `{"name":"Tess","email":"`+emailAddr+`","password":"longenough"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got %d: %s", emailAddr, rec.Code, rec.Body.String())
	}
	var resp tokenResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatal("register returned no token")
	}
	return resp.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

// TestRegister_Web tests the corresponding handler.
func TestRegister_Web(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "POST", "/api/register", `{"name":"Ann","email":"Ann@Example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want %d. Body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if sent := app.sender.Sent(); len(sent) != 1 || sent[0].To[0] != "ann@example.com" {
		t.Errorf("welcome email = %+v", sent)
	}

	rec = app.do(t, "POST", "/api/register", `{"email":"ann@example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: got %d, want %d", rec.Code, http.StatusConflict)
	}
	if msg := decodeError(t, rec); msg != msgEmailInUse {
		t.Errorf("duplicate message = %q", msg)
	}
}

// TestRegister_Validation tests the corresponding handler.
func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name string
		body string
		want int
		msg  string
	}{
		{"missing password", `{"email":"a@b.com"}`, http.StatusBadRequest, msgMissingFields},
		{"missing email", `{"password":"longenough"}`, http.StatusBadRequest, msgMissingFields},
		{"short password", `{"email":"a@b.com","password":"short"}`, http.StatusBadRequest, account.ErrPasswordTooShort.Error()},
		{"no at sign", `{"email":"nobody","password":"longenough"}`, http.StatusBadRequest, account.ErrInvalidEmail.Error()},
		{"password over bcrypt limit", `{"email":"a@b.com","password":"` + strings.Repeat("p", 80) + `"}`, http.StatusBadRequest, account.ErrPasswordTooLong.Error()},
		{"unknown field", `{"email":"a@b.com","password":"longenough","role":"admin"}`, http.StatusBadRequest, msgInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, "POST", "/api/register", tt.body, "")
			if rec.Code != tt.want {
				t.Fatalf("got %d, want %d", rec.Code, tt.want)
			}
			if msg := decodeError(t, rec); msg != tt.msg {
				t.Errorf("message = %q, want %q", msg, tt.msg)
			}
		})
	}
}

// TestLogin_SessionCookie tests the web login, session and logout round trip.
func TestLogin_SessionCookie(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "web@example.com")

	rec := app.do(t, "POST", "/api/login", `{"email":"web@example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", rec.Code, rec.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	req := httptest.NewRequest("GET", "/api/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	var sess sessionResponse
	json.NewDecoder(rec.Body).Decode(&sess)
	if !sess.Authenticated || sess.Method != middleware.MethodSession || sess.User.Email != "web@example.com" {
		t.Errorf("session = %+v", sess)
	}
	if sess.CSRFToken == "" {
		t.Error("session should carry a CSRF token")
	}

	req = httptest.NewRequest("POST", "/api/logout", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/dashboard", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout: got %d, want 401", rec.Code)
	}
}

// TestLogin_Failures tests the corresponding handler.
func TestLogin_Failures(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "lock@example.com")

	rec := app.do(t, "POST", "/api/mobile/login", `{"email":"nobody@example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: got %d, want 401", rec.Code)
	}

	for range 5 {
		app.do(t, "POST", "/api/mobile/login", `{"email":"lock@example.com","password":"wrongwrong"}`, "")
	}
	rec = app.do(t, "POST", "/api/mobile/login", `{"email":"lock@example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusLocked {
		t.Errorf("locked account: got %d, want 423", rec.Code)
	}
}

// TestLogin_FormRequiresCSRF verifies cookie-style form posts go through CSRF protection.
func TestLogin_FormRequiresCSRF(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "form@example.com")

	form := url.Values{"email": {"form@example.com"}, "password": {"longenough"}}
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("form login without token: got %d, want 403", rec.Code)
	}
}

// TestHandleLogin_Form tests the form branch of the handler directly.
func TestHandleLogin_Form(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "direct@example.com")

	form := url.Values{"email": {"direct@example.com"}, "password": {"longenough"}}
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handleLogin(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

// TestProtectedRoutes_Unauthenticated verifies every data route requires an identity.
// Mutating requests send JSON so they pass CSRF and reach RequireAuth.
func TestProtectedRoutes_Unauthenticated(t *testing.T) {
	app := newTestApp(t)
	routes := []struct{ method, path string }{
		{"GET", "/api/driver"},
		{"POST", "/api/irons"},
		{"DELETE", "/api/wedge/abc"},
		{"GET", "/api/putter/stats"},
		{"GET", "/api/irons/trend?club=7i"},
		{"GET", "/api/dashboard"},
		{"GET", "/api/practices/abc"},
		{"POST", "/api/password"},
		{"GET", "/api/mobile/me"},
		{"GET", "/api/mobile/shots"},
		{"GET", "/api/mobile/clubs"},
		{"POST", "/api/mobile/save-pressure"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			body := ""
			if rt.method != "GET" {
				body = "{}"
			}
			rec := app.do(t, rt.method, rt.path, body, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want 401", rec.Code)
			}
		})
	}
}

// TestBearer_InvalidToken verifies a forged token is not an identity.
func TestBearer_InvalidToken(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, "GET", "/api/mobile/me", "", "not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

// TestShots_RecordListDelete tests the category routes end to end.
func TestShots_RecordListDelete(t *testing.T) {
	app := newTestApp(t)
	owner := app.signUp(t, "owner@example.com")
	other := app.signUp(t, "other@example.com")

	rec := app.do(t, "POST", "/api/driver", `{"club":"3w","carry":"215.5","total":230,"offlineM":-8,"result":"Fairway"}`, owner)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record: got %d: %s", rec.Code, rec.Body.String())
	}
	var created shotResponse
	json.NewDecoder(rec.Body).Decode(&created)
	if created.Club != "WOOD_3" || created.Carry != 215.5 || created.Category != "driver" {
		t.Errorf("created = %+v", created)
	}

	rec = app.do(t, "GET", "/api/driver?q=fair", "", owner)
	var list shotListResponse
	json.NewDecoder(rec.Body).Decode(&list)
	if rec.Code != http.StatusOK || len(list.Shots) != 1 || list.Page.Total != 1 {
		t.Fatalf("owner list: %d %+v", rec.Code, list)
	}

	rec = app.do(t, "GET", "/api/driver", "", other)
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list.Shots) != 0 {
		t.Errorf("other user sees %d shots, want 0", len(list.Shots))
	}

	rec = app.do(t, "DELETE", "/api/driver/"+created.ID, "", other)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign delete: got %d, want 403", rec.Code)
	}
	rec = app.do(t, "DELETE", "/api/irons/"+created.ID, "", owner)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong category delete: got %d, want 403", rec.Code)
	}
	rec = app.do(t, "DELETE", "/api/driver/"+created.ID, "", owner)
	if rec.Code != http.StatusOK {
		t.Errorf("owner delete: got %d, want 200", rec.Code)
	}
	rec = app.do(t, "DELETE", "/api/driver/"+created.ID, "", owner)
	if rec.Code != http.StatusForbidden {
		t.Errorf("missing shot delete: got %d, want 403", rec.Code)
	}

	if got := app.metrics.TotalRecorded(); got == 0 {
		t.Error("requests should be recorded in metrics")
	}
}

// TestShots_RecordValidation tests the corresponding handler.
func TestShots_RecordValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "v@example.com")

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"missing carry", "/api/irons", `{"club":"7i","total":150}`, http.StatusBadRequest},
		{"club from other category", "/api/driver", `{"club":"7i","carry":150,"total":160}`, http.StatusBadRequest},
		{"unknown club", "/api/irons", `{"club":"spoon","carry":150,"total":160}`, http.StatusBadRequest},
		{"not a number", "/api/irons", `{"club":"7i","carry":"far","total":160}`, http.StatusBadRequest},
		{"bad date", "/api/wedge", `{"club":"sw","carry":80,"total":82,"date":"yesterday"}`, http.StatusBadRequest},
		{"dated shot", "/api/wedge", `{"club":"sw","carry":80,"total":82,"date":"2026-02-01T09:30"}`, http.StatusCreated},
		{"putting session", "/api/putter", `{"distance":"1.5m","totalPutts":"20","perfectMakes":9,"goodMakes":6,"misses":5}`, http.StatusCreated},
		{"putting bad date ignored", "/api/putter", `{"distance":"2m","totalPutts":20,"date":"soon"}`, http.StatusCreated},
		{"putting too many makes", "/api/putter", `{"distance":"2m","totalPutts":10,"perfectMakes":11}`, http.StatusBadRequest},
		{"putting missing distance", "/api/putter", `{"totalPutts":20}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, "POST", tt.path, tt.body, token)
			if rec.Code != tt.want {
				t.Errorf("got %d, want %d. Body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

// TestShots_RejectsNonFiniteNumbers verifies NaN and infinities never reach storage.
func TestShots_RejectsNonFiniteNumbers(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "inf@example.com")

	bodies := []string{
		`{"club":"driver","carry":"Inf","total":"Inf"}`,
		`{"club":"driver","carry":"+Inf","total":250}`,
		`{"club":"driver","carry":"NaN","total":"NaN"}`,
		`{"club":"driver","carry":230,"total":250,"offlineM":"-infinity"}`,
		`{"club":"driver","carry":1e999,"total":250}`,
	}
	for _, body := range bodies {
		rec := app.do(t, "POST", "/api/driver", body, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: got %d, want 400. Body: %s", body, rec.Code, rec.Body.String())
		}
	}
	rec := app.do(t, "POST", "/api/mobile/save-pressure", `{"score":5,"rounds":1,"details":[{"club":"7i","target":150,"actual":"Inf","points":5}]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("save-pressure with Inf: got %d, want 400", rec.Code)
	}

	for _, path := range []string{"/api/driver", "/api/driver/stats", "/api/dashboard"} {
		rec := app.do(t, "GET", path, "", token)
		if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
			t.Errorf("GET %s after rejected posts: got %d with %d bytes", path, rec.Code, rec.Body.Len())
		}
	}
	var list shotListResponse
	json.NewDecoder(app.do(t, "GET", "/api/driver", "", token).Body).Decode(&list)
	if list.Page.Total != 0 {
		t.Errorf("stored %d shots, want 0", list.Page.Total)
	}
}

// TestShots_UnknownCategory verifies only the four categories are routed.
func TestShots_UnknownCategory(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "cat@example.com")
	rec := app.do(t, "GET", "/api/bats", "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

// TestShots_StatsAndTrend tests the corresponding handlers.
func TestShots_StatsAndTrend(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "stats@example.com")

	for _, body := range []string{
		`{"club":"7i","carry":140,"total":150,"date":"2026-01-02"}`,
		`{"club":"7i","carry":160,"total":170,"date":"2026-01-02T15:00"}`,
		`{"club":"8i","carry":130,"total":138,"date":"2026-01-05"}`,
	} {
		if rec := app.do(t, "POST", "/api/irons", body, token); rec.Code != http.StatusCreated {
			t.Fatalf("seed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.do(t, "GET", "/api/irons/stats", "", token)
	var stats clubStatsResponse
	json.NewDecoder(rec.Body).Decode(&stats)
	if rec.Code != http.StatusOK || len(stats.Clubs) != 2 {
		t.Fatalf("stats: %d %+v", rec.Code, stats)
	}
	if seven := stats.Clubs[0]; seven.Club != "IRON_7" || seven.AvgCarry != 150 || seven.Consistency != 87 {
		t.Errorf("7 iron stats = %+v", seven)
	}

	rec = app.do(t, "GET", "/api/irons/trend?club=7i", "", token)
	var trend trendResponse
	json.NewDecoder(rec.Body).Decode(&trend)
	if rec.Code != http.StatusOK || len(trend.Labels) != 1 || trend.Labels[0] != "Jan 2" {
		t.Fatalf("trend: %d %+v", rec.Code, trend)
	}
	if trend.Series[0].Name != "carry" || trend.Series[0].Values[0] != 150 {
		t.Errorf("carry series = %+v", trend.Series[0])
	}

	rec = app.do(t, "GET", "/api/irons/trend", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("trend without club: got %d, want 400", rec.Code)
	}
	rec = app.do(t, "GET", "/api/irons?month=13", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad month: got %d, want 400", rec.Code)
	}
}

// TestPutterStats tests the corresponding handler.
func TestPutterStats(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "putt@example.com")
	app.do(t, "POST", "/api/putter", `{"distance":"1m","totalPutts":20,"perfectMakes":15,"goodMakes":3}`, token)

	rec := app.do(t, "GET", "/api/putter/stats", "", token)
	var stats puttingStatsResponse
	json.NewDecoder(rec.Body).Decode(&stats)
	if rec.Code != http.StatusOK || len(stats.Distances) != 3 {
		t.Fatalf("putting stats: %d %+v", rec.Code, stats)
	}
	if stats.Distances[0].PerfectPct != 75 || stats.BestDistance != "1m" {
		t.Errorf("putting stats = %+v", stats)
	}
}

// TestPressureGame_AndPracticeDetail tests saving a pressure game and reading it back.
func TestPressureGame_AndPracticeDetail(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "game@example.com")
	other := app.signUp(t, "peek@example.com")

	body := `{"score":17.5,"rounds":2,"details":[{"club":"IRON_7","target":150,"actual":146,"points":8.5},{"club":"","target":100,"actual":"103","points":9}]}`
	rec := app.do(t, "POST", "/api/mobile/save-pressure", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save-pressure: got %d: %s", rec.Code, rec.Body.String())
	}
	var saved savePressureResponse
	json.NewDecoder(rec.Body).Decode(&saved)
	if !saved.OK || saved.Practice.Type != "ROUND_SIM" || len(saved.Shots) != 2 {
		t.Fatalf("saved = %+v", saved)
	}
	if saved.Shots[0].Result != "target 150, score 8.5" {
		t.Errorf("result = %q", saved.Shots[0].Result)
	}

	rec = app.do(t, "GET", "/api/practices/"+saved.Practice.ID, "", token)
	var detail practiceDetailResponse
	json.NewDecoder(rec.Body).Decode(&detail)
	if rec.Code != http.StatusOK || len(detail.Shots) != 2 {
		t.Fatalf("detail: %d %+v", rec.Code, detail)
	}
	if !strings.Contains(detail.Practice.NotesHTML, "<strong>Score:</strong> 17.5") {
		t.Errorf("notesHtml = %q", detail.Practice.NotesHTML)
	}

	rec = app.do(t, "GET", "/api/practices/"+saved.Practice.ID, "", other)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign practice: got %d, want 404", rec.Code)
	}

	rec = app.do(t, "GET", "/api/dashboard", "", token)
	var dash dashboardResponse
	json.NewDecoder(rec.Body).Decode(&dash)
	if rec.Code != http.StatusOK || len(dash.RecentPractices) != 1 || dash.RecentPractices[0].ShotCount != 2 {
		t.Errorf("dashboard = %d %+v", rec.Code, dash)
	}
	if dash.ShotsThisWeek != 2 || dash.AvgCarry != 124.5 {
		t.Errorf("dashboard numbers = %+v", dash)
	}

	rec = app.do(t, "POST", "/api/mobile/save-pressure", `{"score":0,"rounds":0,"details":[]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty game: got %d, want 400", rec.Code)
	}
}

// TestMobileRoutes tests me, shots and clubs.
func TestMobileRoutes(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "mobile@example.com")
	app.do(t, "POST", "/api/irons", `{"club":"7i","carry":150,"total":160,"launchDeg":18.5,"date":"2026-01-03"}`, token)
	app.do(t, "POST", "/api/driver", `{"club":"driver","carry":230,"total":250,"date":"2026-01-01"}`, token)

	rec := app.do(t, "GET", "/api/mobile/me", "", token)
	var me map[string]userResponse
	json.NewDecoder(rec.Body).Decode(&me)
	if rec.Code != http.StatusOK || me["user"].Email != "mobile@example.com" || me["user"].Name != "Tess" {
		t.Errorf("me = %d %+v", rec.Code, me)
	}

	rec = app.do(t, "GET", "/api/mobile/shots", "", token)
	var shots map[string][]mobileShotResponse
	json.NewDecoder(rec.Body).Decode(&shots)
	if len(shots["shots"]) != 2 || shots["shots"][0].Club != "DRIVER" || shots["shots"][1].LaunchDeg != 18.5 {
		t.Errorf("shots = %+v", shots)
	}

	rec = app.do(t, "GET", "/api/mobile/clubs", "", token)
	var clubs map[string][]string
	json.NewDecoder(rec.Body).Decode(&clubs)
	if strings.Join(clubs["clubs"], ",") != "DRIVER,IRON_7" {
		t.Errorf("clubs = %+v", clubs)
	}
}

// TestChangePassword tests the corresponding handler.
func TestChangePassword(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "pw@example.com")

	rec := app.do(t, "POST", "/api/password", `{"currentPassword":"wrongwrong","newPassword":"evenlonger"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wrong current: got %d, want 400", rec.Code)
	}
	rec = app.do(t, "POST", "/api/password", `{"currentPassword":"longenough","newPassword":"`+strings.Repeat("p", 80)+`"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("over-long new password: got %d, want 400. Body: %s", rec.Code, rec.Body.String())
	}
	rec = app.do(t, "POST", "/api/password", `{"currentPassword":"longenough","newPassword":"evenlonger"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("change: got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.do(t, "POST", "/api/mobile/login", `{"email":"pw@example.com","password":"evenlonger"}`, "")
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password: got %d", rec.Code)
	}
}

// TestOpsRoutes tests health and metrics.
func TestOpsRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "GET", "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: got %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}

	token := app.signUp(t, "ops@example.com")
	app.do(t, "POST", "/api/driver", `{"club":"driver","carry":230,"total":250}`, token)

	for i := 0; i < 20; i++ {
		app.do(t, "GET", "/scan/"+strings.Repeat("a", i+1)+".php", "", "")
	}

	rec = app.do(t, "GET", "/metrics", "", "")
	body := rec.Body.String()
	for _, want := range []string{
		`fairway_http_requests_total{method="POST",path="/api/driver",status="201"} 1`,
		`fairway_http_requests_total{method="GET",path="unmatched",status="404"} 20`,
		`fairway_shots_recorded_total{category="driver"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
	if strings.Contains(body, "/scan/") {
		t.Error("raw unmatched paths leaked into metric labels")
	}
}
