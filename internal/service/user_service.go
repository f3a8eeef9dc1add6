package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/cue-bracket/internal/store"
	users "github.com/AdamBeresnev/cue-bracket/internal/user"
	"github.com/AdamBeresnev/cue-bracket/internal/utils"
	"github.com/google/uuid"
	"github.com/markbates/goth"
)

type UserService struct {
	store *store.UserStore
}

func NewUserService(store *store.UserStore) *UserService {
	return &UserService{store: store}
}

// FindOrCreateUserByProvider maps an OAuth login to a local organizer,
// refreshing the username and avatar the provider reports.
func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	username := gothUser.NickName
	if username == "" {
		username = gothUser.Name
	}

	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		if utils.OrZero(user.AvatarURL) != gothUser.AvatarURL || user.Username != username {
			user.Username = username
			user.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			if err := s.store.UpdateUserProfile(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   username,
			Provider:   utils.StringOrNil(gothUser.Provider),
			ProviderID: utils.StringOrNil(gothUser.UserID),
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		if err := s.store.CreateUser(ctx, newUser); err != nil {
			return nil, err
		}
		return newUser, nil
	}

	return nil, err
}

// EnsureGuestUser returns the seeded guest account, creating it when the
// row was removed.
func (s *UserService) EnsureGuestUser(ctx context.Context) (*users.User, error) {
	user, err := s.store.GetUser(ctx, users.GuestID)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		guestUser := &users.User{
			ID:       users.GuestID,
			Email:    "guest@cue-bracket.app",
			Username: "Guest User",
		}
		if err := s.store.CreateUser(ctx, guestUser); err != nil {
			return nil, err
		}
		return guestUser, nil
	}
	return nil, err
}
