package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-allocation-backend/internal/db"
	"hostel-allocation-backend/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(bytes.NewReader(nil))}
}

func seedDecidedRequest(t *testing.T, gormDB *gorm.DB, status model.RequestStatus) *model.RoomRequest {
	t.Helper()
	student := model.User{Name: "alice", Email: "alice@example.edu", PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, gormDB.Create(&student).Error)
	room := model.Room{RoomNumber: "101", Capacity: 2, MonthlyRent: 450, IsActive: true}
	require.NoError(t, gormDB.Create(&room).Error)
	req := model.RoomRequest{StudentID: student.ID, RoomID: room.ID, Status: status}
	require.NoError(t, gormDB.Create(&req).Error)
	sub := model.PushSubscription{Endpoint: "https://example.com/push", P256DH: "p", Auth: "a", UserID: student.ID}
	require.NoError(t, gormDB.Create(&sub).Error)
	return &req
}

func TestRequestDecided_NeverBlocks(t *testing.T) {
	gormDB := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	// Queue capacity is 1 and no worker is running; the second dispatch
	// must drop instead of blocking the workflow.
	done := make(chan struct{})
	go func() {
		wp.RequestDecided(1)
		wp.RequestDecided(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestDecided blocked on a full queue")
	}

	assert.Equal(t, int64(1), <-wp.Jobs())
}

func TestWorker_SendsDecisionNotification(t *testing.T) {
	gormDB := newTestDB(t)
	req := seedDecidedRequest(t, gormDB, model.RequestApproved)

	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	var mu sync.Mutex
	var payloads []string
	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			mu.Lock()
			payloads = append(payloads, string(payload))
			mu.Unlock()
			wg.Done()
			return okResponse(), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.RequestDecided(req.ID)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, payloads, 1)
	assert.Contains(t, payloads[0], "approved")
	assert.Contains(t, payloads[0], "101")
}

func TestWorker_SkipsPendingRequests(t *testing.T) {
	gormDB := newTestDB(t)
	req := seedDecidedRequest(t, gormDB, model.RequestPending)

	wp := NewWorkerPool(1, gormDB, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			t.Error("no notification may be sent for a pending request")
			return okResponse(), nil
		},
	}

	// Run the job synchronously; a pending request is not a decision.
	wp.notifyDecision(context.Background(), req.ID)
}

func TestWorker_DeletesExpiredSubscription(t *testing.T) {
	gormDB := newTestDB(t)
	req := seedDecidedRequest(t, gormDB, model.RequestRejected)

	wp := NewWorkerPool(1, gormDB, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusGone, Body: io.NopCloser(bytes.NewReader(nil))}, nil
		},
	}

	wp.notifyDecision(context.Background(), req.ID)

	var count int64
	gormDB.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count, "a 410 response must delete the subscription")
}
