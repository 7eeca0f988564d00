package services

import (
	"context"

	"fitness-journal/internal/domain"
)

// AuthResult is returned by register and login
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// StatsCache stores computed stats per user and calendar day. Get reports a
// miss with nil stats and returns the user's generation either way; Set must
// be given the generation read before the stats were computed, and a value
// stored under a generation that Invalidate has since bumped is never served.
type StatsCache interface {
	Get(ctx context.Context, userID, day string) (stats *domain.Stats, generation int64, err error)
	Set(ctx context.Context, userID, day string, generation int64, stats domain.Stats) error
	Invalidate(ctx context.Context, userID string) error
}

// EntryService handles the workout entry use cases. Every operation is scoped
// to the calling user.
type EntryService interface {
	// List returns one page of entries matching opts together with page metadata
	List(ctx context.Context, opts domain.ListOptions) (*domain.EntryPage, error)

	Create(ctx context.Context, userID string, input domain.CreateEntryInput) (*domain.Entry, error)
	Get(ctx context.Context, userID, id string) (*domain.Entry, error)
	Update(ctx context.Context, userID, id string, input domain.UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, userID, id string) error
}

// StatsService derives aggregate figures from a user's entries
type StatsService interface {
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)
}

// TokenService issues and verifies bearer tokens
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by a valid token
	Verify(token string) (string, error)
}

// AuthService handles registration, login and profile lookup
type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Authenticate(token string) (string, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	EntryService EntryService
	StatsService StatsService
	AuthService  AuthService
}
