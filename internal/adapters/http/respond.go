package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"fairway/internal/application/orchestrators"
	"fairway/internal/application/projections"
	"fairway/internal/domain/account"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// Client-facing error messages.
const (
	msgMissingFields      = "Missing required fields"
	msgEmailInUse         = "Email already in use"
	msgInvalidCredentials = "Invalid credentials"
	msgAccountLocked      = "Account locked, try again later"
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "Forbidden"
	msgNotFound           = "Not found"
	msgInvalidJSON        = "Invalid JSON body"
	msgInternal           = "Internal server error"
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// writeJSON encodes v with the given status.
// POST: an unencodable v is logged and answered with a 500 instead of an empty body
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response_encode_failed", "status", status, "error", err.Error())
		body, status = []byte(`{"error":"`+msgInternal+`"}`), http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Debug("response_write_failed", "error", err.Error())
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// badRequestErrors are validation failures whose message is safe to show.
var badRequestErrors = []error{
	orchestrators.ErrInvalidDate,
	orchestrators.ErrInvalidNumber,
	orchestrators.ErrCurrentPasswordWrong,
	orchestrators.ErrNewPasswordSame,
	projections.ErrInvalidMonth,
	projections.ErrInvalidDay,
	shot.ErrUnknownClub,
	shot.ErrClubNotInCat,
	shot.ErrInvalidCarry,
	shot.ErrEmptyDistance,
	shot.ErrInvalidTotalPutts,
	shot.ErrNegativeCount,
	shot.ErrMakesExceedPutts,
	shot.ErrResultTooLong,
	shot.ErrNotesTooLong,
	shot.ErrDistanceTooLong,
	shot.ErrNonFiniteMetric,
	practice.ErrInvalidActual,
	practice.ErrNonFiniteRound,
	practice.ErrNotesTooLong,
	account.ErrEmptyEmail,
	account.ErrInvalidEmail,
	account.ErrEmailTooLong,
	account.ErrNameTooLong,
	account.ErrEmptyPassword,
	account.ErrPasswordTooShort,
	account.ErrPasswordTooLong,
}

// writeDomainError maps application errors to status codes. Anything unrecognised is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrMissingFields):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, orchestrators.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, msgEmailInUse)
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusLocked, msgAccountLocked)
	case errors.Is(err, orchestrators.ErrForbidden):
		writeError(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, projections.ErrPracticeNotFound), errors.Is(err, shot.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				writeError(w, http.StatusBadRequest, target.Error())
				return
			}
		}
		internalError(w, err)
	}
}
