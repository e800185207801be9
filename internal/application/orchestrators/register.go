package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	emailAdapter "fairway/internal/adapters/email"
	accountStore "fairway/internal/adapters/storage/account"
	"fairway/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	EmailSender  emailAdapter.Sender // optional
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailAlreadyExists = errors.New("email already in use")
)

// ExecuteRegister creates an account and sends the welcome email.
// PRE: Email and Password are non-empty
// POST: Account is stored with a bcrypt hash; a failed welcome email does not fail registration
// INVARIANT: Email is unique after normalisation
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	email := account.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return account.Account{}, ErrMissingFields
	}

	_, err := deps.AccountStore.GetByEmail(ctx, email)
	if err == nil {
		slog.Info("auth_event", "event", "register_rejected", "email", email, "reason", "duplicate")
		return account.Account{}, ErrEmailAlreadyExists
	}
	if !errors.Is(err, accountStore.ErrNotFound) {
		return account.Account{}, err
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_created", "account_id", acct.ID, "email", acct.Email)

	if deps.EmailSender != nil {
		sendWelcome(ctx, deps.EmailSender, acct)
	}
	return acct, nil
}

func sendWelcome(ctx context.Context, sender emailAdapter.Sender, acct account.Account) {
	req, err := emailAdapter.WelcomeEmail(acct.Email, acct.Name)
	if err == nil {
		_, err = sender.Send(ctx, req)
	}
	if err != nil {
		slog.Warn("welcome_email_failed", "account_id", acct.ID, "error", err)
	}
}
