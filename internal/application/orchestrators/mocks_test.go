package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	emailAdapter "fairway/internal/adapters/email"
	accountStore "fairway/internal/adapters/storage/account"
	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/domain/account"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

func init() {
	account.HashCost = bcrypt.MinCost
}

var fixedTime = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// mockAccountStore is an in-memory account store keyed by ID.
type mockAccountStore struct {
	accounts map[string]account.Account
	saveErr  error
	saves    int
}

func newMockAccountStore(accts ...account.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]account.Account)}
	for _, a := range accts {
		m.accounts[a.ID] = a
	}
	return m
}

// GetByID implements the account store.
// PRE: id is non-empty
// POST: returns the account or a wrapped ErrNotFound
func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, fmt.Errorf("%w: %s", accountStore.ErrNotFound, id)
	}
	return a, nil
}

// GetByEmail implements the account store.
// PRE: email is normalised
// POST: returns the account or a wrapped ErrNotFound
func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("%w: %s", accountStore.ErrNotFound, email)
}

// Save implements the account store.
// POST: account is stored unless saveErr is set
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts[a.ID] = a
	return nil
}

// mockShotStore is an in-memory shot store.
type mockShotStore struct {
	shots   map[string]shot.Shot
	order   []string
	saveErr error
	getErr  error
}

func newMockShotStore(shots ...shot.Shot) *mockShotStore {
	m := &mockShotStore{shots: make(map[string]shot.Shot)}
	for _, s := range shots {
		m.shots[s.ID] = s
		m.order = append(m.order, s.ID)
	}
	return m
}

// GetByID implements the shot store.
// POST: returns the shot or a wrapped ErrNotFound
func (m *mockShotStore) GetByID(_ context.Context, id string) (shot.Shot, error) {
	if m.getErr != nil {
		return shot.Shot{}, m.getErr
	}
	s, ok := m.shots[id]
	if !ok {
		return shot.Shot{}, fmt.Errorf("%w: %s", shotStore.ErrNotFound, id)
	}
	return s, nil
}

// Save implements the shot store.
// POST: shot is stored unless saveErr is set
func (m *mockShotStore) Save(_ context.Context, s shot.Shot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.shots[s.ID]; !ok {
		m.order = append(m.order, s.ID)
	}
	m.shots[s.ID] = s
	return nil
}

// Delete implements the shot store.
// POST: shot is removed
func (m *mockShotStore) Delete(_ context.Context, id string) error {
	delete(m.shots, id)
	return nil
}

// mockPracticeStore records SaveWithShots calls.
type mockPracticeStore struct {
	practices map[string]practice.Practice
	shots     map[string][]shot.Shot
	err       error
}

func newMockPracticeStore() *mockPracticeStore {
	return &mockPracticeStore{
		practices: make(map[string]practice.Practice),
		shots:     make(map[string][]shot.Shot),
	}
}

// SaveWithShots implements the practice store.
// POST: practice and shots are stored together, or neither when err is set
func (m *mockPracticeStore) SaveWithShots(_ context.Context, p practice.Practice, shots []shot.Shot) error {
	if m.err != nil {
		return m.err
	}
	m.practices[p.ID] = p
	m.shots[p.ID] = shots
	return nil
}

// mockRecorder counts metric calls.
type mockRecorder struct {
	mu       sync.Mutex
	logins   map[string]int
	recorded map[string]int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{logins: map[string]int{}, recorded: map[string]int{}}
}

func (r *mockRecorder) LoginOutcome(o string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins[o]++
}

func (r *mockRecorder) ShotRecorded(c string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded[c]++
}

// failingSender always fails to send.
type failingSender struct{}

func (failingSender) Send(context.Context, emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	return emailAdapter.SendResult{}, errors.New("provider down")
}
