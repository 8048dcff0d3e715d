package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-allocation-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// TestAllocate_GuardedIncrement verifies the occupancy increment is issued as
// a single conditional UPDATE and that a full room rolls the whole
// transaction back with ErrRoomFull. The check and the increment must be one
// statement; a separate read would reopen the over-capacity race.
func TestAllocate_GuardedIncrement(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	req := &model.RoomRequest{
		ID:        1,
		StudentID: 10,
		RoomID:    20,
		Status:    model.RequestApproved,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "rooms" SET "current_occupancy"=current_occupancy + 1 WHERE id = $1 AND current_occupancy < capacity`)).
		WithArgs(int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.Allocate(context.Background(), req, 99, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoomFull), "a lost race must surface as ErrRoomFull, got: %v", err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOptions_Defaults(t *testing.T) {
	opts := ListOptions{}.withDefaults()
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)

	assert.Equal(t, int64(0), ListOptions{Limit: 10}.TotalPages(0))
	assert.Equal(t, int64(1), ListOptions{Limit: 10}.TotalPages(10))
	assert.Equal(t, int64(2), ListOptions{Limit: 10}.TotalPages(11))
	assert.Equal(t, int64(3), ListOptions{Limit: 2}.TotalPages(5))
}
