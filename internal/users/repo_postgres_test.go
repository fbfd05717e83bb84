package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepo(db), mock, db
}

const selectByIDQuery = `(?s)SELECT\s+id,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`

func TestPostgresRepo_Create(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Unix(1700000000, 0).UTC()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users\s*\(email,\s*password_hash\)`).
		WithArgs("a@test.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	u, err := repo.Create(context.Background(), User{Email: "a@test.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 7 || !u.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepo_CreateDuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users`).
		WithArgs("a@test.com", "hash").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), User{Email: "a@test.com", PasswordHash: "hash"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestPostgresRepo_FindByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQuery).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "a@test.com", "hash", time.Now()))

	u, err := repo.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "a@test.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestPostgresRepo_FindByIDNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQuery).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), 9); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestPostgresRepo_FindByEmailDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("a@test.com").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByEmail(context.Background(), "a@test.com")
	if err == nil || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
