package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"updatesfeed/internal/models"
)

type ownerRepository struct {
	db *sqlx.DB
}

func NewOwnerRepository(db *sqlx.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var owner models.Owner

	query := `SELECT * FROM owners WHERE email = $1`

	err := r.db.GetContext(ctx, &owner, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("owner with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to fetch owner: %w", err)
	}

	return &owner, nil
}

func (r *ownerRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Owner, error) {
	owner, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("invalid password")
	}

	return owner, nil
}

// EnsureOwner creates the configured owner account on first boot so that
// sign-in has a counterpart. An already-existing account is left untouched.
func (r *ownerRepository) EnsureOwner(ctx context.Context, email, password, displayName string) error {
	if email == "" || password == "" {
		return fmt.Errorf("owner email and password are not configured")
	}

	if _, err := r.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	owner := &models.Owner{
		OwnerID:      uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
	}

	query := `
		INSERT INTO owners (owner_id, email, password_hash, display_name)
		VALUES (:owner_id, :email, :password_hash, :display_name)
	`

	_, err = r.db.NamedExecContext(ctx, query, owner)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}

	return nil
}
