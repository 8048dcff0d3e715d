package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-allocation-backend/internal/model"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from, to model.RequestStatus
		allowed  bool
	}{
		{model.RequestPending, model.RequestApproved, true},
		{model.RequestPending, model.RequestRejected, true},
		{model.RequestPending, model.RequestPending, false},
		{model.RequestApproved, model.RequestRejected, false},
		{model.RequestApproved, model.RequestPending, false},
		{model.RequestRejected, model.RequestApproved, false},
		{model.RequestRejected, model.RequestPending, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDecide(t *testing.T) {
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stamps the decision fields", func(t *testing.T) {
		req := &model.RoomRequest{Status: model.RequestPending}
		require.NoError(t, decide(req, model.RequestApproved, 7, at))
		assert.Equal(t, model.RequestApproved, req.Status)
		require.NotNil(t, req.DecisionByID)
		assert.Equal(t, int64(7), *req.DecisionByID)
		require.NotNil(t, req.DecisionDate)
		assert.Equal(t, at, *req.DecisionDate)
	})

	t.Run("refuses to leave a terminal state", func(t *testing.T) {
		for _, from := range []model.RequestStatus{model.RequestApproved, model.RequestRejected} {
			req := &model.RoomRequest{Status: from}
			err := decide(req, model.RequestRejected, 7, at)
			assert.Equal(t, KindConflict, KindOf(err))
			assert.Equal(t, from, req.Status, "a failed transition must not mutate the request")
			assert.Nil(t, req.DecisionByID)
		}
	})
}
