package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque token to the identity that logged in with it.
// The identity is a lookup reference only; deleting a session never
// cascades to the owning record.
type Session struct {
	Token     string    `json:"token"`
	Identity  uuid.UUID `json:"identity"`
	LoggedIn  bool      `json:"logged_in"`
	UpdatedAt time.Time `json:"updated_at"`
}
