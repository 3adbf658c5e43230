package tokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	token := &models.AccessToken{
		Token:     "t-1",
		FileID:    "f-1",
		IssuedTo:  "bob",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+tokens\s*\(token,\s*file_id,\s*issued_to,\s*expires_at,\s*revoked,\s*created_at\)`).
		WithArgs(token.Token, token.FileID, token.IssuedTo, token.ExpiresAt, token.Revoked, token.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), token); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"token", "file_id", "issued_to", "expires_at", "revoked", "created_at"}).
		AddRow("t-1", "f-1", "", now.Add(time.Hour), false, now)

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+tokens\s+WHERE\s+token\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Token != "t-1" || got.FileID != "f-1" || got.Revoked {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+tokens\s+WHERE\s+token\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetRevoked_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE\s+tokens\s+SET\s+revoked\s*=\s*TRUE\s+WHERE\s+token\s*=\s*\$1$`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetRevoked(context.Background(), "t-1"); err != nil {
		t.Fatalf("SetRevoked error: %v", err)
	}
}

func TestSetRevoked_Unknown(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tokens\s+SET\s+revoked`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetRevoked(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetRevoked_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tokens\s+SET\s+revoked`).
		WithArgs("t-1").
		WillReturnError(errors.New("db down"))

	err := repo.SetRevoked(context.Background(), "t-1")
	if err == nil || !regexp.MustCompile(`failed to revoke token: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestListByOwner_Join(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"token", "file_id", "revoked", "expires_at", "created_at",
		"title", "name", "size_bytes"}).
		AddRow("t-2", "f-1", true, now.Add(time.Hour), now, "report", "report.pdf", int64(1024)).
		AddRow("t-1", "f-1", false, now.Add(time.Hour), now.Add(-time.Minute), "report", "report.pdf", int64(1024))

	mock.ExpectQuery(`(?s)SELECT\s+t\.token,.*JOIN\s+files\s+f\s+ON\s+f\.id\s*=\s*t\.file_id.*lower\(f\.owner_address\)\s*=\s*lower\(\$1\)`).
		WithArgs("0xabc", 500).
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "0xabc", 500)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Token != "t-2" || !got[0].Revoked || got[1].Title != "report" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
