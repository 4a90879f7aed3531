package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"updatesfeed/internal/models"
)

type OwnerRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.Owner, error)
	EnsureOwner(ctx context.Context, email, password, displayName string) error
}

type Repository struct {
	Owner OwnerRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Owner: NewOwnerRepository(db),
	}
}
