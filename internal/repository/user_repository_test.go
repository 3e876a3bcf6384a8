package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/models"
)

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "active", "last_login", "created_at", "updated_at"}).
		AddRow(int64(1), "alice", "$2a$10$hash", "ROLE_ADMIN", true, nil, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT id, username, password_hash, role, active, .* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpsertAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users .* ON CONFLICT \(username\) DO UPDATE .* RETURNING id`).
		WithArgs("admin", "$2a$10$hash", "ROLE_ADMIN", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user := &models.User{
		Username:     "admin",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	require.NoError(t, repo.Upsert(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
