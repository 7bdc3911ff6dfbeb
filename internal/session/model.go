package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the durable per-client bag. Anonymous until a login binds a
// user; destroyed entirely on logout.
type Session struct {
	ID        uuid.UUID
	UserID    *uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Identity is the resolved caller for one request: always a session, plus
// the bound account when authenticated. It is threaded explicitly through
// context rather than read from ambient state.
type Identity struct {
	SessionID uuid.UUID
	UserID    *uint
}

func (i Identity) Authenticated() bool {
	return i.UserID != nil
}
