package client

import (
	"context"
	"errors"
	"sync"

	"github.com/nycbookings/api/internal/domain"
)

// SessionState tracks where the session is in its lifecycle. A session starts
// Loading until Restore has decided whether the persisted token still works.
type SessionState int

const (
	StateLoading SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session binds a Client to a TokenStore and keeps the current user in
// memory. Safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	client *Client
	store  TokenStore
	state  SessionState
	user   *domain.User
}

func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store, state: StateLoading}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Restore loads the persisted token and validates it against the server.
// The token is discarded only when the server rejects it; transient failures
// leave it in place so a later Restore can try again.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		s.setAnonymous()
		return err
	}
	if token == "" {
		s.setAnonymous()
		return nil
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.client.SetToken("")
			_ = s.store.Clear()
			s.setAnonymous()
			return nil
		}
		// Network or server trouble: keep the token, stay anonymous for now.
		s.setAnonymous()
		return err
	}

	s.setAuthenticated(user)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(result.Token); err != nil {
		return nil, err
	}
	s.setAuthenticated(result.User)
	return result.User, nil
}

func (s *Session) Signup(ctx context.Context, input RegisterInput) (*domain.User, error) {
	result, err := s.client.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(result.Token); err != nil {
		return nil, err
	}
	s.setAuthenticated(result.User)
	return result.User, nil
}

// Logout is purely client side: the server keeps no session state.
func (s *Session) Logout() error {
	s.client.SetToken("")
	err := s.store.Clear()
	s.setAnonymous()
	return err
}

func (s *Session) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.client.UpdateProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *Session) setAuthenticated(user *domain.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}
