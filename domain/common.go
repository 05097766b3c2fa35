package domain

import (
	"errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedAuth           = "failed to authenticate"

	ErrParseID        = errors.New("failed to parse id")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Actor is the authenticated caller of a service operation. The zero value is
// an anonymous caller.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type (
	PaginationQuery struct {
		Page  int
		Limit int
	}

	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func (p PaginationQuery) Normalize() PaginationQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
	return p
}

func (p PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPaginationResponse(p PaginationQuery, total int64) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
	}
}
