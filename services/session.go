package services

import (
	"encoding/json"
	"net/http"
	"strings"

	"rental-admin/models"

	"github.com/pkg/errors"
)

// SessionContext exposes the auth token and user kept in a browser's
// storage. Tokens are trusted until the backend rejects them.
type SessionContext struct {
	Storage *ClientStorage
}

func NewSessionContext(storage *ClientStorage) *SessionContext {
	return &SessionContext{Storage: storage}
}

func (s *SessionContext) Token() (string, bool) {
	var token string
	ok, err := s.Storage.Get(models.KeyAuthToken, &token)
	if err != nil || !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// AuthHeaders returns the headers every backend request carries.
func (s *SessionContext) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if token, ok := s.Token(); ok {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func (s *SessionContext) RequireSession() error {
	if _, ok := s.Token(); !ok {
		return ErrUnauthenticated
	}
	return nil
}

func (s *SessionContext) Username() string {
	var name string
	if ok, err := s.Storage.Get(models.KeyUsername, &name); err != nil || !ok {
		return ""
	}
	return name
}

// UserData decodes the stored user object into out.
func (s *SessionContext) UserData(out any) (bool, error) {
	return s.Storage.Get(models.KeyUserData, out)
}

// Establish stores the result of a successful login.
func (s *SessionContext) Establish(resp models.LoginResponse) error {
	if strings.TrimSpace(resp.Token) == "" {
		return errors.New("login response carries no token")
	}
	if err := s.Storage.Set(models.KeyAuthToken, resp.Token); err != nil {
		return err
	}
	if err := s.Storage.Set(models.KeyUsername, resp.Username); err != nil {
		return err
	}
	user := json.RawMessage("null")
	if len(resp.User) > 0 {
		user = resp.User
	}
	return s.Storage.Set(models.KeyUserData, user)
}

// Clear forgets the session; pending toasts are kept.
func (s *SessionContext) Clear() error {
	return s.Storage.Remove(models.KeyAuthToken, models.KeyUsername, models.KeyUserData)
}
