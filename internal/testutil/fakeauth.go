package testutil

import (
	"context"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

// FakeAuthService is an in-memory implementation of service.AuthService with
// a single known account.
type FakeAuthService struct {
	Email    string
	Password string
	Token    string

	LoginErr   error
	LogoutErr  error
	CurrentErr error

	LoggedOut bool
}

// NewFakeAuthService creates a fake accepting the given credentials.
func NewFakeAuthService(email, password string) *FakeAuthService {
	return &FakeAuthService{Email: email, Password: password, Token: "test-token"}
}

// Login implements service.AuthService.
func (f *FakeAuthService) Login(ctx context.Context, email, password string) (service.Session, error) {
	if f.LoginErr != nil {
		return service.Session{}, f.LoginErr
	}
	if email != f.Email || password != f.Password {
		return service.Session{}, apperr.Auth("invalid credentials")
	}
	return service.Session{
		AccessToken: f.Token,
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        service.User{ID: "user-1", Email: f.Email, Name: "Test User"},
	}, nil
}

// Register implements service.AuthService.
func (f *FakeAuthService) Register(ctx context.Context, email, password, name string) error {
	return nil
}

// Logout implements service.AuthService.
func (f *FakeAuthService) Logout(ctx context.Context) error {
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.LoggedOut = true
	return nil
}

// CurrentUser implements service.AuthService.
func (f *FakeAuthService) CurrentUser(ctx context.Context) (service.User, error) {
	if f.CurrentErr != nil {
		return service.User{}, f.CurrentErr
	}
	return service.User{ID: "user-1", Email: f.Email, Name: "Test User"}, nil
}
