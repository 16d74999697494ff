package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUserMintsUid(t *testing.T) {
	service := NewUserService(NewStubUserRepo())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, User{Username: "traveler", DisplayName: "Traveler"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, 1, created.Id)

	withUid, err := service.CreateUser(ctx, User{Uid: "given-uid", Username: "other", DisplayName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "given-uid", withUid.Uid)
}

func TestUserService_GetCurrentUser(t *testing.T) {
	service := NewUserService(NewStubUserRepo())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, User{Username: "traveler", DisplayName: "Traveler"})
	require.NoError(t, err)

	current, err := service.GetCurrentUser(WithUser(ctx, created))
	require.NoError(t, err)
	assert.Equal(t, created.Id, current.Id)
	assert.Equal(t, "traveler", current.Username)

	_, err = service.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestUserService_GetUserByUid(t *testing.T) {
	service := NewUserService(NewStubUserRepo())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, User{Username: "traveler", DisplayName: "Traveler"})
	require.NoError(t, err)

	found, err := service.GetUserByUid(ctx, created.Uid)
	require.NoError(t, err)
	assert.Equal(t, created.Id, found.Id)

	_, err = service.GetUserByUid(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_IsUsernameAvailable(t *testing.T) {
	service := NewUserService(NewStubUserRepo())
	ctx := context.Background()

	available, err := service.IsUsernameAvailable(ctx, "traveler")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = service.CreateUser(ctx, User{Username: "traveler", DisplayName: "Traveler"})
	require.NoError(t, err)

	available, err = service.IsUsernameAvailable(ctx, "traveler")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestUserService_DeleteUser(t *testing.T) {
	service := NewUserService(NewStubUserRepo())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, User{Username: "traveler", DisplayName: "Traveler"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(ctx, created.Id))

	_, err = service.GetUser(ctx, created.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
