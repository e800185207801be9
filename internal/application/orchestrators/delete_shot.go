package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/shot"
)

// ShotStoreForDelete defines the store interface needed by DeleteShot.
type ShotStoreForDelete interface {
	GetByID(ctx context.Context, id string) (shot.Shot, error)
	Delete(ctx context.Context, id string) error
}

// DeleteShotInput carries input for the delete-shot orchestrator.
type DeleteShotInput struct {
	UserID   string
	ShotID   string
	Category shot.Category // optional; when set the shot must belong to it
}

// DeleteShotDeps holds dependencies for DeleteShot.
type DeleteShotDeps struct {
	ShotStore ShotStoreForDelete
}

// ErrForbidden is returned for shots the caller may not touch, including ones that do not exist.
var ErrForbidden = errors.New("forbidden")

// ExecuteDeleteShot removes one of the caller's shots.
// PRE: input.UserID is the authenticated account
// POST: the shot is gone, or ErrForbidden and nothing changed
// INVARIANT: a missing shot and a foreign shot are indistinguishable to the caller
func ExecuteDeleteShot(ctx context.Context, input DeleteShotInput, deps DeleteShotDeps) error {
	if input.UserID == "" || input.ShotID == "" {
		return ErrForbidden
	}

	s, err := deps.ShotStore.GetByID(ctx, input.ShotID)
	if errors.Is(err, shotStore.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if s.UserID != input.UserID || (input.Category != "" && s.Category() != input.Category) {
		slog.Warn("shot_event", "event", "delete_denied", "shot_id", input.ShotID, "user_id", input.UserID)
		return ErrForbidden
	}

	if err := deps.ShotStore.Delete(ctx, s.ID); err != nil {
		return err
	}
	slog.Info("shot_event", "event", "shot_deleted", "shot_id", s.ID, "user_id", input.UserID)
	return nil
}
