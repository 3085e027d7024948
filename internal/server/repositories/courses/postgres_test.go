package courses

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/edustream/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseCols = []string{"id", "title", "description", "media_url", "price", "category", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestList_ReturnsRows(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+courses\s+ORDER\s+BY\s+created_at,\s*title$`).
		WillReturnRows(sqlmock.NewRows(courseCols).
			AddRow("c1", "Go", "d", "http://v/1.mp4", 29.99, "Backend", now).
			AddRow("c2", "React", "d", "http://v/2.mp4", 49.99, "Frontend", now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, 49.99, got[1].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNonNil(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+courses`).WillReturnRows(sqlmock.NewRows(courseCols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+courses`).WillReturnError(errors.New("down"))

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "db error: down")
}

func TestGetByIDs_BuildsPlaceholders(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+id::text\s+IN\s+\(\$1,\s*\$2\)$`).
		WithArgs("c1", "c9").
		WillReturnRows(sqlmock.NewRows(courseCols).AddRow("c1", "Go", "", "", 10.0, "", time.Now()))

	got, err := repo.GetByIDs(context.Background(), []string{"c1", "c9"})
	require.NoError(t, err)
	require.Contains(t, got, "c1")
	assert.NotContains(t, got, "c9")
}

func TestGetByIDs_NoIDsSkipsQuery(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	got, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+courses\s*\(title,\s*description,\s*media_url,\s*price,\s*category\).*RETURNING\s+id,\s*created_at\s*$`).
		WithArgs("Go", "desc", "http://v.mp4", 12.5, "Backend").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c3", now))

	c, err := repo.Create(context.Background(), &models.Course{Title: "Go", Description: "desc", MediaURL: "http://v.mp4", Price: 12.5, Category: "Backend"})
	require.NoError(t, err)
	assert.Equal(t, "c3", c.ID)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+courses`).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Course{Title: "Go"})
	require.ErrorContains(t, err, "db error: boom")
}
