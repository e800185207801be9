package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	accountStore "fairway/internal/adapters/storage/account"
	"fairway/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginRecorder counts login outcomes. *metrics.Collector satisfies it.
type LoginRecorder interface {
	LoginOutcome(outcome string)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	Metrics      LoginRecorder // optional
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin checks credentials and returns the account for session or token issue.
// PRE: none; empty credentials are rejected
// POST: failed attempts are recorded; success resets the counter
// INVARIANT: a locked account never logs in, even with the right password
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (account.Account, error) {
	email := account.NormalizeEmail(input.Email)
	outcome := func(o string) {
		if deps.Metrics != nil {
			deps.Metrics.LoginOutcome(o)
		}
	}

	if email == "" || input.Password == "" {
		outcome("failed")
		return account.Account{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if errors.Is(err, accountStore.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		outcome("failed")
		return account.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return account.Account{}, err
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", email, "reason", "locked")
		outcome("locked")
		return account.Account{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			slog.Error("auth_event", "event", "record_failed_login", "email", email, "error", err)
		}
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		outcome("failed")
		return account.Account{}, ErrInvalidCredentials
	}

	if acct.FailedLogins > 0 || !acct.LockedUntil.IsZero() {
		acct.ResetFailedLogins()
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return account.Account{}, err
		}
	}

	slog.Info("auth_event", "event", "login_success", "account_id", acct.ID)
	outcome("success")
	return acct, nil
}
