package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMockRepo(t *testing.T) (OwnerRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewOwnerRepository(sqlxDB), mock, func() { db.Close() }
}

func ownerRows(email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"owner_id", "email", "password_hash", "display_name"}).
		AddRow("o1", email, passwordHash, "Owner")
}

func TestOwnerRepository_GetByEmail(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()
	email := "owner@example.com"

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(ownerRows(email, "hash"))

		owner, err := repo.GetByEmail(ctx, email)

		require.NoError(t, err)
		assert.Equal(t, email, owner.Email)
		assert.Equal(t, "Owner", owner.DisplayName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		owner, err := repo.GetByEmail(ctx, email)

		assert.Error(t, err)
		assert.Nil(t, owner)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestOwnerRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	ctx := context.Background()
	email := "owner@example.com"
	password := "correct_password"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(ownerRows(email, string(hashedPassword)))

		owner, err := repo.VerifyPassword(ctx, email, password)

		require.NoError(t, err)
		assert.Equal(t, email, owner.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(ownerRows(email, string(hashedPassword)))

		owner, err := repo.VerifyPassword(ctx, email, "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, owner)
		assert.Contains(t, err.Error(), "invalid password")
	})
}

func TestOwnerRepository_EnsureOwner(t *testing.T) {
	ctx := context.Background()
	email := "owner@example.com"

	t.Run("creates the owner when missing", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectExec(`
			INSERT INTO owners (owner_id, email, password_hash, display_name)
			VALUES (?, ?, ?, ?)
		`).
			WithArgs(sqlmock.AnyArg(), email, sqlmock.AnyArg(), "Owner").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.EnsureOwner(ctx, email, "secret", "Owner")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leaves an existing owner untouched", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(ownerRows(email, "hash"))

		err := repo.EnsureOwner(ctx, email, "secret", "Owner")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects missing configuration", func(t *testing.T) {
		repo, _, closeDB := newMockRepo(t)
		defer closeDB()

		err := repo.EnsureOwner(ctx, "", "", "Owner")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("insert failure", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectQuery(`SELECT * FROM owners WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectExec(`
			INSERT INTO owners (owner_id, email, password_hash, display_name)
			VALUES (?, ?, ?, ?)
		`).
			WillReturnError(errors.New("duplicate key value violates unique constraint"))

		err := repo.EnsureOwner(ctx, email, "secret", "Owner")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create owner")
	})
}
