// Package repository defines the storage contracts the services depend on.
package repository

import (
	"context"

	"fitness-journal/internal/domain"
)

// EntryRepository persists workout entries. Every method is scoped by the
// owning user; an entry owned by someone else behaves as missing.
type EntryRepository interface {
	Create(ctx context.Context, entry domain.Entry) (*domain.Entry, error)
	Get(ctx context.Context, userID, id string) (*domain.Entry, error)
	List(ctx context.Context, opts domain.ListOptions) ([]domain.Entry, error)
	Count(ctx context.Context, opts domain.ListOptions) (int, error)
	ListAll(ctx context.Context, userID string) ([]domain.Entry, error)
	Update(ctx context.Context, userID, id string, update domain.UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, userID, id string) error
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
