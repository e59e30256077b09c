package dto

import "jobwise/internal/domain/user"

type SessionResponse struct {
	Token string        `json:"token"`
	User  *user.Account `json:"user"`
}

func NewSessionResponse(s user.Session) SessionResponse {
	return SessionResponse{Token: s.Token, User: s.User}
}
