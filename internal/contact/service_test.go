package contact

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestUpdateSubmissionStatus_RespondedStampsTimestamp(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	id := uuid.New()
	respondedAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "status", "responded_at"}).
		AddRow(id.String(), "responded", respondedAt)
	mock.ExpectQuery(`update contact_submissions`).
		WillReturnRows(rows)

	res, err := svc.UpdateSubmissionStatus(context.Background(), id, "responded")

	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, "responded", res.Status)
	require.NotNil(t, res.RespondedAt)
	assert.WithinDuration(t, respondedAt, *res.RespondedAt, time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSubmissionStatus_NotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	mock.ExpectQuery(`update contact_submissions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "responded_at"}))

	_, err := svc.UpdateSubmissionStatus(context.Background(), uuid.New(), "closed")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSubmissions_EchoesClampedPagination(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery(`SELECT cs\.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_type", "status"}))

	res, err := svc.ListSubmissions(context.Background(), ListQuery{Limit: 500, Offset: -5})

	require.NoError(t, err)
	// out-of-range inputs collapse to the defaults the query ran with
	assert.Equal(t, 50, res.Limit)
	assert.Equal(t, 0, res.Offset)
	assert.Equal(t, int64(120), res.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	overview := sqlmock.NewRows([]string{
		"total_submissions", "new_submissions", "in_progress", "responded",
		"closed", "residential", "commercial", "fleet", "other",
	}).AddRow(12, 4, 3, 3, 2, 7, 3, 1, 1)
	mock.ExpectQuery(`from contact_submissions`).WillReturnRows(overview)

	recent := sqlmock.NewRows([]string{"date", "count"}).
		AddRow(time.Now().Truncate(24*time.Hour), 5)
	mock.ExpectQuery(`date_trunc`).WillReturnRows(recent)

	st, daily, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), st.TotalSubmissions)
	assert.Equal(t, int64(4), st.NewSubmissions)
	assert.Equal(t, int64(1), st.Fleet)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(5), daily[0].Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
