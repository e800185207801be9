package web

import (
	"net/http"

	"fairway/internal/adapters/http/middleware"
	"fairway/internal/domain/shot"
)

// identity returns the caller resolved by middleware.Auth.
func identity(r *http.Request) (middleware.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}

// authed wraps h with RequireAuth.
func authed(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h)
}

func registerRoutes(mux *http.ServeMux) {
	// Ops
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", collector.Handler())

	// Web auth
	mux.HandleFunc("POST /api/register", handleRegister)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("GET /api/session", handleSession)
	mux.Handle("POST /api/password", authed(handleChangePassword))

	// Shots, one route set per category
	for _, c := range shot.Categories {
		base := "/api/" + string(c)
		mux.Handle("GET "+base, authed(handleListShots(c)))
		mux.Handle("POST "+base, authed(handleRecordShot(c)))
		mux.Handle("DELETE "+base+"/{id}", authed(handleDeleteShot(c)))
		mux.Handle("GET "+base+"/stats", authed(handleShotStats(c)))
		mux.Handle("GET "+base+"/trend", authed(handleShotTrend(c)))
	}

	mux.Handle("GET /api/dashboard", authed(handleDashboard))
	mux.Handle("GET /api/practices/{id}", authed(handlePracticeDetail))

	// Mobile
	mux.HandleFunc("POST /api/mobile/register", handleMobileRegister)
	mux.HandleFunc("POST /api/mobile/login", handleMobileLogin)
	mux.Handle("GET /api/mobile/me", authed(handleMobileMe))
	mux.Handle("GET /api/mobile/shots", authed(handleMobileShots))
	mux.Handle("GET /api/mobile/clubs", authed(handleMobileClubs))
	mux.Handle("POST /api/mobile/save-pressure", authed(handleSavePressure))
}

// handleHealth handles GET /healthz
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if healthCheck != nil {
		if err := healthCheck(r.Context()); err != nil {
			internalError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
