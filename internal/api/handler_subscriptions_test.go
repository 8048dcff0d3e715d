package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-allocation-backend/internal/auth"
	"hostel-allocation-backend/internal/db"
	"hostel-allocation-backend/internal/model"
	"hostel-allocation-backend/internal/store"
	"hostel-allocation-backend/internal/workflow"
)

func newSubscriptionTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))

	user := model.User{Name: "alice", Email: "alice@example.edu", PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, gormDB.Create(&user).Error)

	tokens := auth.NewManager("subscription-test-secret", time.Hour)
	token, err := tokens.Issue(&user, time.Now())
	require.NoError(t, err)

	appStore := store.NewGormStore(gormDB)
	router := NewRouter(appStore, workflow.NewEngine(appStore, nil), tokens, nil, RouterOptions{
		RateLimit:      rate.Limit(1000),
		RateLimitBurst: 1000,
		CacheTTL:       time.Minute,
	})
	return router, gormDB, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubscriptionLifecycle(t *testing.T) {
	router, gormDB, token := newSubscriptionTestRouter(t)

	// No subscription yet.
	w := doJSON(t, router, http.MethodGet, "/api/subscriptions", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Register one.
	w = doJSON(t, router, http.MethodPut, "/api/subscriptions", token, gin.H{
		"endpoint": "https://example.com/push/1",
		"p256dh":   "key",
		"auth":     "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.com/push/1")

	// Replacing the same endpoint upserts instead of duplicating.
	w = doJSON(t, router, http.MethodPut, "/api/subscriptions", token, gin.H{
		"endpoint": "https://example.com/push/1",
		"p256dh":   "rotated",
		"auth":     "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	gormDB.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var sub model.PushSubscription
	require.NoError(t, gormDB.First(&sub).Error)
	assert.Equal(t, "rotated", sub.P256DH)

	// Delete it.
	w = doJSON(t, router, http.MethodDelete, "/api/subscriptions", token, gin.H{
		"endpoint": "https://example.com/push/1",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	gormDB.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubscriptionRequiresAuth(t *testing.T) {
	router, _, _ := newSubscriptionTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions", "", gin.H{
		"endpoint": "https://example.com/push/1",
		"p256dh":   "key",
		"auth":     "secret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVAPIDKeyUnconfigured(t *testing.T) {
	router, _, _ := newSubscriptionTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
