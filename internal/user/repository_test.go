package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "address", "avatar_url", "created_at"}).
			AddRow(1, "Rahim", "rahim@example.com", "", "", "", time.Now())

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Rahim", "rahim@example.com", "hashed").
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), "Rahim", "rahim@example.com", "hashed")
		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, uint(1), u.ID)
		assert.Empty(t, u.Password)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), "Rahim", "rahim@example.com", "hashed")
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success includes credential hash", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "phone", "address", "avatar_url", "created_at"}).
			AddRow(1, "Rahim", "rahim@example.com", "hashed", "", "", "", time.Now())

		mock.ExpectQuery("SELECT id, name, email, password, phone, address, avatar_url, created_at FROM users").
			WithArgs("rahim@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "rahim@example.com")
		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "hashed", u.Password)
	})

	t.Run("Not found returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, phone, address, avatar_url, created_at FROM users").
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	phone := "01712345678"

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "address", "avatar_url", "created_at"}).
			AddRow(1, "Rahim", "rahim@example.com", phone, "", "", time.Now())

		mock.ExpectQuery("UPDATE users").
			WithArgs(uint(1), nil, phone, nil, nil).
			WillReturnRows(rows)

		u, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{UserID: 1, Phone: &phone})
		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, phone, u.Phone)
	})

	t.Run("Not found returns nil", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{UserID: 99})
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success excludes credential", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "address", "avatar_url", "created_at"}).
			AddRow(2, "Karim", "karim@example.com", "", "", "", time.Now()).
			AddRow(1, "Rahim", "rahim@example.com", "", "", "", time.Now())

		mock.ExpectQuery("SELECT id, name, email, phone, address, avatar_url, created_at FROM users").
			WillReturnRows(rows)

		users, err := repo.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Empty(t, users[0].Password)
	})
}
