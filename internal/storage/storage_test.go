package storage

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(id string, created time.Time) *types.Report {
	return &types.Report{
		ID:          id,
		Filename:    id + ".pdf",
		Checksum:    "abc",
		CreatedAt:   created,
		CountSlides: 3,
		Summary: types.PresentationSummary{
			PresentationScore: 6.5,
			OverallVerdict:    "Хорошая основа",
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Minute))))
	}

	report, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", report.Filename)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)

	list, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, 6.5, list[0].PresentationScore)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresSave(t *testing.T) {
	store, mock := newMockStore(t)
	report := sampleReport("r1", time.Now().UTC())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs("r1", "r1.pdf", "abc", 3, 6.5, "Хорошая основа", sqlmock.AnyArg(), report.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMockStore(t)
	payload, err := json.Marshal(sampleReport("r1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM reports WHERE id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	report, err := store.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1.pdf", report.Filename)
	assert.Equal(t, 6.5, report.Summary.PresentationScore)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM reports WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, filename, count_slides").
		WithArgs(DEFAULT_LIST_LIMIT).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "filename", "count_slides", "presentation_score", "overall_verdict", "created_at",
		}).AddRow("r2", "b.pdf", 4, 7.0, "Хорошая основа", created).
			AddRow("r1", "a.pdf", 2, 4.5, "Требует доработки", created))

	list, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID)
	assert.Equal(t, 4, list[0].CountSlides)
	assert.Equal(t, "Требует доработки", list[1].OverallVerdict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
