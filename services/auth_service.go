package services

import (
	"context"
	"strings"

	"rental-admin/models"
)

// AuthService exchanges credentials for a token and keeps it in the
// browser's session.
type AuthService struct {
	Client *RestClient
}

func (s AuthService) Login(ctx context.Context, session *SessionContext, req models.LoginRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	var resp models.LoginResponse
	if err := s.Client.Post(ctx, "/auth/login", req, &resp); err != nil {
		return err
	}
	if resp.Username == "" {
		resp.Username = req.Username
	}
	return session.Establish(resp)
}

func (s AuthService) Logout(session *SessionContext) error {
	return session.Clear()
}
