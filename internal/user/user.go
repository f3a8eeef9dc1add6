package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

// GuestID is the seeded account used by the guest login.
var GuestID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// User is a tournament organizer. Players on a roster are not users.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Username   string    `db:"username" json:"username"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	Provider   *string   `db:"provider" json:"provider,omitempty"`
	ProviderID *string   `db:"provider_id" json:"-"`
	AvatarURL  *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
}

func (u *User) IsGuest() bool {
	return u.ID == GuestID
}

// DisplayName falls back to the email when the provider gave no username.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
