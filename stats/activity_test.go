// stats/activity_test.go
package stats

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDailyActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC)
	day := "2025-05-16"

	mock.ExpectQuery("FROM chat_requests").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"total", "accepted", "declined"}).
			AddRow(10, 6, 3))
	mock.ExpectQuery("FROM messages").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery("FROM chats").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("INSERT INTO daily_activity").
		WithArgs(day, 10, 6, 3, 120, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	activity, err := CollectDailyActivity(db, date)
	require.NoError(t, err)
	assert.Equal(t, 10, activity.NewRequests)
	assert.Equal(t, 6, activity.AcceptedRequests)
	assert.Equal(t, 3, activity.DeclinedRequests)
	assert.Equal(t, 120, activity.NewMessages)
	assert.Equal(t, 2, activity.ClosedChats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectDailyActivityEmptyDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)
	day := "2025-05-17"

	// В день без активности агрегаты должны быть нулями, а не NULL
	mock.ExpectQuery("FROM chat_requests").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"total", "accepted", "declined"}).
			AddRow(0, 0, 0))
	mock.ExpectQuery("FROM messages").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM chats").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO daily_activity").
		WithArgs(day, 0, 0, 0, 0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	activity, err := CollectDailyActivity(db, date)
	require.NoError(t, err)
	assert.Equal(t, 0, activity.NewRequests)
}
