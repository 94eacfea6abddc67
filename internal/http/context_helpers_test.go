package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
)

func TestGetUserSessionFromContext(t *testing.T) {
	if s, ok := GetUserSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}

	sess := &domainauth.Session{ID: "abc", Role: domainauth.RoleUser}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)
	assert.Same(t, sess, GetSessionFromContext(ctx))
}

func TestSetSessionInContext_NilLeavesContextAlone(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))
	assert.False(t, IsLoggedIn(ctx))
	assert.Nil(t, GetSessionFromContext(ctx))
}

func TestIsLoggedIn(t *testing.T) {
	sess := &domainauth.Session{ID: "u", Role: domainauth.RoleGuest}
	assert.True(t, IsLoggedIn(SetSessionInContext(context.Background(), sess)))
}
