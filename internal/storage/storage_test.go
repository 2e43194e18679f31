package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/shop-cart/internal/domain/models"
	"github.com/linemk/shop-cart/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestGetUserByID_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	userID := int64(1)

	rows := sqlmock.NewRows([]string{"id", "username", "pass_hash"}).
		AddRow(userID, "test@example.com", []byte("hashed-password"))

	mock.ExpectQuery("SELECT id, username, pass_hash FROM users WHERE id = \\$1").
		WithArgs(userID).WillReturnRows(rows)

	user, err := repo.GetUserByID(ctx, userID)
	assert.NoError(t, err, "Expected no error when user is found")
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, []byte("hashed-password"), user.PassHash)

	// Проверяем, что все ожидания sqlmock выполнены.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	userID := int64(2)

	rows := sqlmock.NewRows([]string{"id", "username", "pass_hash"})
	mock.ExpectQuery("SELECT id, username, pass_hash FROM users WHERE id = \\$1").
		WithArgs(userID).WillReturnRows(rows)

	user, err := repo.GetUserByID(context.Background(), userID)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))
	assert.Nil(t, user, "User should be nil when not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	email := "nonexistent@example.com"

	query := regexp.QuoteMeta("SELECT id, username, pass_hash FROM users WHERE username = $1")
	mock.ExpectQuery(query).WithArgs(email).WillReturnRows(sqlmock.NewRows([]string{"id", "username", "pass_hash"}))

	user, err := repo.GetUserByEmail(context.Background(), email)
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	email := "create@example.com"
	passHash := []byte("hashed")

	query := regexp.QuoteMeta("INSERT INTO users (username, pass_hash) VALUES ($1, $2) RETURNING id")
	mock.ExpectQuery(query).WithArgs(email, passHash).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	createdUser, err := repo.CreateUser(context.Background(), &models.User{Email: email, PassHash: passHash})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), createdUser.ID)
	assert.Equal(t, email, createdUser.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockUserByIDTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	userID := int64(1)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "username", "pass_hash"}).
		AddRow(userID, "test@example.com", []byte("hashed"))
	query := regexp.QuoteMeta("SELECT id, username, pass_hash FROM users WHERE id = $1 FOR UPDATE")
	mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)

	user, err := repo.LockUserByIDTx(ctx, tx, userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockUserByIDTx_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	userID := int64(99)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	query := regexp.QuoteMeta("SELECT id, username, pass_hash FROM users WHERE id = $1 FOR UPDATE")
	mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"id", "username", "pass_hash"}))

	user, err := repo.LockUserByIDTx(context.Background(), tx, userID)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
