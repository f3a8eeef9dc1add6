package store

import (
	"context"
	"database/sql"
	"testing"

	users "github.com/AdamBeresnev/cue-bracket/internal/user"
	"github.com/AdamBeresnev/cue-bracket/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestUserIsSeeded(t *testing.T) {
	store := NewUserStore(setupTestDB(t))

	guest, err := store.GetUser(context.Background(), users.GuestID)
	require.NoError(t, err)
	assert.True(t, guest.IsGuest())
	assert.Equal(t, "Guest User", guest.DisplayName())
}

func TestUserByProvider(t *testing.T) {
	store := NewUserStore(setupTestDB(t))
	ctx := context.Background()

	user := &users.User{
		ID:         uuid.New(),
		Email:      "ana@example.com",
		Provider:   utils.StringOrNil("discord"),
		ProviderID: utils.StringOrNil("42"),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	fetched, err := store.GetUserByProvider(ctx, "discord", "42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "ana@example.com", fetched.DisplayName())

	fetched.Username = "ana"
	fetched.AvatarURL = utils.StringOrNil("https://cdn.example.com/ana.png")
	require.NoError(t, store.UpdateUserProfile(ctx, fetched))

	again, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", again.Username)
	require.NotNil(t, again.AvatarURL)

	_, err = store.GetUserByProvider(ctx, "google", "42")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
