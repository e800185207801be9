package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"fairway/internal/adapters/http/middleware"
	accountStore "fairway/internal/adapters/storage/account"
	"fairway/internal/application/orchestrators"
	"fairway/internal/domain/account"
)

// readCredentials accepts a JSON body or a urlencoded form.
func readCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		return req, nil
	}
	err := strictDecode(r, &req)
	return req, err
}

func register(r *http.Request) (account.Account, error) {
	req, err := readCredentials(r)
	if err != nil {
		return account.Account{}, errBadBody
	}
	return orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		EmailSender:  emailSender,
		GenerateID:   generateID,
		Now:          timeNow,
	})
}

func login(r *http.Request) (account.Account, error) {
	req, err := readCredentials(r)
	if err != nil {
		return account.Account{}, errBadBody
	}
	return orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Metrics:      collector,
	})
}

// errBadBody marks a request body that could not be decoded.
var errBadBody = errors.New("bad request body")

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadBody) {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	writeDomainError(w, err)
}

// handleRegister handles POST /api/register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	acct, err := register(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]userResponse{"user": toUser(acct)})
}

// handleLogin handles POST /api/login and starts a cookie session.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	acct, err := login(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	token, err := sessions.Create(r.Context(), middleware.Session{
		AccountID: acct.ID,
		Email:     acct.Email,
		Name:      acct.DisplayName(),
		CreatedAt: timeNow(),
	})
	if err != nil {
		slog.Error("session_store_error", "op", "create", "account_id", acct.ID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	middleware.SetSessionCookie(w, token, sessionTTL, secureCookies)
	writeJSON(w, http.StatusOK, map[string]userResponse{"user": toUser(acct)})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
			slog.Error("session_store_error", "op", "delete", "error", err)
		}
	}
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "account_id", id.UserID, "method", id.Method)
	}
	middleware.ClearSessionCookie(w, secureCookies)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// handleSession handles GET /api/session. It always answers 200 so clients can fetch a CSRF token before login.
func handleSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{CSRFToken: csrf.Token(r)}
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		resp.Authenticated = true
		resp.Method = id.Method
		resp.User = &userResponse{ID: id.UserID, Email: id.Email, Name: id.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleChangePassword handles POST /api/password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	var req changePasswordRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       id.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// issueToken answers a mobile login or registration with a bearer token.
func issueToken(w http.ResponseWriter, status int, acct account.Account) {
	token, err := tokens.Issue(acct.ID, acct.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: timeNow().UTC().Add(tokens.TTL()),
		User:      toUser(acct),
	})
}

// handleMobileRegister handles POST /api/mobile/register
func handleMobileRegister(w http.ResponseWriter, r *http.Request) {
	acct, err := register(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	issueToken(w, http.StatusCreated, acct)
}

// handleMobileLogin handles POST /api/mobile/login
func handleMobileLogin(w http.ResponseWriter, r *http.Request) {
	acct, err := login(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	issueToken(w, http.StatusOK, acct)
}

// handleMobileMe handles GET /api/mobile/me. A token for a deleted account is unauthorized.
func handleMobileMe(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	acct, err := stores.AccountStore.GetByID(r.Context(), id.UserID)
	if errors.Is(err, accountStore.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userResponse{"user": toUser(acct)})
}
