package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-allocation-backend/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	user := &model.User{ID: 42, Role: model.RoleAdmin}

	token, err := manager.Issue(user, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Role: model.RoleStudent}, time.Now())
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", time.Minute)

	token, err := manager.Issue(&model.User{ID: 1, Role: model.RoleStudent}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	_, _, err := manager.Verify("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
