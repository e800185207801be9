package projections

import (
	"context"
	"errors"
	"fmt"

	"fairway/internal/adapters/email"
	practiceStore "fairway/internal/adapters/storage/practice"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// ErrPracticeNotFound covers both missing practices and practices owned by someone else.
var ErrPracticeNotFound = errors.New("practice not found")

// PracticeGetter loads a practice.
type PracticeGetter interface {
	GetByID(ctx context.Context, id string) (practice.Practice, error)
}

// PracticeShotLister loads the shots recorded in a practice.
type PracticeShotLister interface {
	ListByPractice(ctx context.Context, practiceID string) ([]shot.Shot, error)
}

// PracticeDetailQuery identifies the practice to show.
type PracticeDetailQuery struct {
	UserID     string
	PracticeID string
}

// PracticeDetailResult carries a practice, its shots and its notes rendered to HTML.
type PracticeDetailResult struct {
	Practice  practice.Practice
	NotesHTML string
	Shots     []shot.Shot
}

// PracticeDetailDeps holds dependencies for the practice detail projection.
type PracticeDetailDeps struct {
	PracticeStore PracticeGetter
	ShotStore     PracticeShotLister
}

// QueryPracticeDetail returns one of the caller's practices.
// PRE: query.UserID is the authenticated account
// POST: returns ErrPracticeNotFound unless the practice exists and belongs to query.UserID
func QueryPracticeDetail(ctx context.Context, query PracticeDetailQuery, deps PracticeDetailDeps) (PracticeDetailResult, error) {
	p, err := deps.PracticeStore.GetByID(ctx, query.PracticeID)
	if errors.Is(err, practiceStore.ErrNotFound) {
		return PracticeDetailResult{}, ErrPracticeNotFound
	}
	if err != nil {
		return PracticeDetailResult{}, err
	}
	if p.UserID != query.UserID {
		return PracticeDetailResult{}, ErrPracticeNotFound
	}

	html, err := email.RenderMarkdown(p.Notes)
	if err != nil {
		return PracticeDetailResult{}, fmt.Errorf("render notes: %w", err)
	}
	shots, err := deps.ShotStore.ListByPractice(ctx, p.ID)
	if err != nil {
		return PracticeDetailResult{}, err
	}
	if shots == nil {
		shots = []shot.Shot{}
	}
	return PracticeDetailResult{Practice: p, NotesHTML: html, Shots: shots}, nil
}
