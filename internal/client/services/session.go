// Package services contains application services for the gophauth client.
// This file defines the session manager: credential checks against the local
// directory, persistence of the active session and state change
// notifications for the front end.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// State is what the front end renders from. A zero CurrentUser with
// IsLoading unset means nobody is logged in.
type State struct {
	CurrentUser *models.User
	IsLoading   bool
}

// SessionService defines the session operations for the CLI.
//
// Contract:
//   - Initialize: restore the persisted session; never fails.
//   - Login: check credentials against the directory and start a session.
//   - Signup: validate, append to the directory and start a session.
//   - Logout: forget the persisted session.
//
// All methods honor context cancellation through the store.
type SessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email string, password []byte) error
	Signup(ctx context.Context, name, email string, password []byte) error
	Logout(ctx context.Context) error

	State() State
	CurrentUser() *models.User
	IsLoading() bool
	IsAuthenticated() bool
	Subscribe(fn func(State)) (unsubscribe func())
}

// SessionManager is the SessionService backed by a kvstore.Store for the
// session entry and a users.Repository for the directory.
type SessionManager struct {
	store      kvstore.Store
	users      users.Repository
	hasher     cryptox.Hasher
	sessionKey string
	log        logging.Logger

	newID func() (string, error)

	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

var _ SessionService = (*SessionManager)(nil)

// NewSessionManager returns a manager in the loading state. Call Initialize
// before relying on CurrentUser.
func NewSessionManager(store kvstore.Store, repo users.Repository, hasher cryptox.Hasher, sessionKey string, log logging.Logger) *SessionManager {
	return &SessionManager{
		store:      store,
		users:      repo,
		hasher:     hasher,
		sessionKey: sessionKey,
		log:        log,
		newID:      newUserID,
		state:      State{IsLoading: true},
		subs:       make(map[int]func(State)),
	}
}

func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Initialize restores the persisted session. Read and parse failures are
// logged and leave nobody logged in. Loading is always finished afterwards.
func (m *SessionManager) Initialize(ctx context.Context) {
	var current *models.User

	b, err := m.store.Get(ctx, m.sessionKey)
	switch {
	case err != nil:
		m.log.Warn(ctx, "error loading stored user", "error", err)
	case b != nil:
		var u *models.User
		if err := json.Unmarshal(b, &u); err != nil {
			m.log.Warn(ctx, "error loading stored user", "error", err)
		} else {
			current = u
		}
	}

	m.setState(ctx, State{CurrentUser: current})
}

// Login starts a session for the first directory record matching both email
// and password. The email comparison ignores case. Directories written by
// other clients may hold several records per email, so every match is tried.
func (m *SessionManager) Login(ctx context.Context, email string, password []byte) error {
	recs, err := m.users.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: read directory: %w", ErrStorage, err)
	}

	want := models.NormalizeEmail(email)
	for _, rec := range recs {
		if models.NormalizeEmail(rec.Email) != want {
			continue
		}
		if m.hasher.Verify(rec.Password, password) {
			return m.startSession(ctx, rec.Strip())
		}
	}

	return ErrInvalidCredentials
}

// Signup appends a new record to the directory and starts a session for it.
// The stored email is lowercased and the password is encoded by the
// configured hasher.
func (m *SessionManager) Signup(ctx context.Context, name, email string, password []byte) error {
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	if !StrongEnough(password) {
		return ErrWeakPassword
	}

	_, err := m.users.Get(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("%w: read directory: %w", ErrStorage, err)
	}

	id, err := m.newID()
	if err != nil {
		return fmt.Errorf("%w: generate id: %w", common.ErrorInternal, err)
	}
	encoded, err := m.hasher.Hash(password)
	if errors.Is(err, cryptox.ErrPasswordTooLong) {
		return ErrPasswordTooLong
	}
	if err != nil {
		return fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	rec := models.UserWithSecret{
		User: models.User{
			ID:    id,
			Name:  name,
			Email: models.NormalizeEmail(email),
		},
		Password: encoded,
	}

	if err := m.users.Insert(ctx, rec); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("%w: write directory: %w", ErrStorage, err)
	}

	return m.startSession(ctx, rec.Strip())
}

// Logout removes the persisted session. On failure the current user is kept.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, m.sessionKey); err != nil {
		m.log.Error(ctx, "error logging out", "error", err)
		return fmt.Errorf("%w: remove session: %w", ErrStorage, err)
	}
	m.setState(ctx, State{})
	return nil
}

func (m *SessionManager) startSession(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", common.ErrorInternal, err)
	}
	if err := m.store.Set(ctx, m.sessionKey, b); err != nil {
		return fmt.Errorf("%w: write session: %w", ErrStorage, err)
	}
	m.setState(ctx, State{CurrentUser: &u})
	return nil
}

func (m *SessionManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

func (m *SessionManager) CurrentUser() *models.User {
	return m.State().CurrentUser
}

func (m *SessionManager) IsLoading() bool {
	return m.State().IsLoading
}

func (m *SessionManager) IsAuthenticated() bool {
	s := m.State()
	return !s.IsLoading && s.CurrentUser != nil
}

// Subscribe registers fn to be called with every new state. fn runs on the
// goroutine that caused the change and must not call back into Subscribe.
func (m *SessionManager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// snapshot copies the state so callers cannot mutate the held user.
// m.mu must be held.
func (m *SessionManager) snapshot() State {
	s := m.state
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		s.CurrentUser = &u
	}
	return s
}

func (m *SessionManager) setState(ctx context.Context, s State) {
	m.mu.Lock()
	m.state = s
	snap := m.snapshot()
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if snap.CurrentUser != nil {
		m.log.Debug(ctx, "session state changed", "authenticated", true, "user_id", snap.CurrentUser.ID)
	} else {
		m.log.Debug(ctx, "session state changed", "authenticated", false)
	}

	for _, fn := range subs {
		fn(snap)
	}
}
