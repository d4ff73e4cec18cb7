package api

import (
	"context"
	"fmt"

	"github.com/deciflow/deciflow/internal/model"
	"github.com/deciflow/deciflow/internal/session"
)

// AuthService wraps the authentication endpoints and keeps the session store
// in sync with their results.
type AuthService struct {
	gw    *Gateway
	store *session.Store
}

func NewAuthService(gw *Gateway, store *session.Store) *AuthService {
	return &AuthService{gw: gw, store: store}
}

// Login exchanges credentials for a token and caches both in the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	in := model.LoginInput{Email: email, Password: password}
	if err := s.gw.Post(ctx, "/v1/auth/login", in, &resp); err != nil {
		return nil, err
	}
	s.store.SetAuth(resp.User, resp.Token)
	return &resp, nil
}

// Logout asks the backend to revoke the token, then clears the local session
// regardless of whether the revocation call succeeded.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.gw.Post(ctx, "/v1/auth/logout", nil, nil)
	s.store.Logout()
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// FetchMe refreshes the cached user record from the backend.
func (s *AuthService) FetchMe(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.gw.Get(ctx, "/v1/me", &user); err != nil {
		return nil, err
	}
	s.store.SetUser(user)
	return &user, nil
}
