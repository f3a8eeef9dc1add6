package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/store"
	users "github.com/AdamBeresnev/cue-bracket/internal/user"
	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateUserByProvider(t *testing.T) {
	svc := NewUserService(store.NewUserStore(setupTestDB(t)))
	ctx := context.Background()

	login := goth.User{Provider: "discord", UserID: "42", Email: "ana@example.com", NickName: "ana", AvatarURL: "https://cdn/a.png"}

	created, err := svc.FindOrCreateUserByProvider(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, "ana", created.Username)

	login.NickName = "ana_sinuca"
	login.AvatarURL = ""
	again, err := svc.FindOrCreateUserByProvider(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "ana_sinuca", again.Username)
	assert.Nil(t, again.AvatarURL)
}

func TestEnsureGuestUser(t *testing.T) {
	database := setupTestDB(t)
	svc := NewUserService(store.NewUserStore(database))

	guest, err := svc.EnsureGuestUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users.GuestID, guest.ID)

	// Drop the seeded row so the guest is recreated.
	_, err = database.Exec("DELETE FROM users WHERE id = ?", users.GuestID)
	require.NoError(t, err)

	guest, err = svc.EnsureGuestUser(context.Background())
	require.NoError(t, err)
	assert.True(t, guest.IsGuest())
}
