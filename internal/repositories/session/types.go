package session

import "github.com/KirkDiggler/clapometer/internal/models"

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

// MutateFunc changes a session in place. Returning an error aborts the update without writing.
type MutateFunc func(session *models.Session) error

type UpdateSessionInput struct {
	SessionID string
	Mutate    MutateFunc
}

type UpdateSessionOutput struct {
	Session *models.Session
}

type DeleteSessionInput struct {
	SessionID string
}

type SubscribeInput struct {
	SessionID string
}

// Event is a change notification for a session
type Event struct {
	// Session is the state after the change; nil when deleted
	Session *models.Session `json:"session,omitempty"`

	// Deleted is set when the session was removed
	Deleted bool `json:"deleted"`
}

type SubscribeOutput struct {
	// Events is closed once the subscription ends
	Events <-chan *Event

	// Close ends the subscription
	Close func() error
}

type ListSessionsByAdminInput struct {
	AdminID string
	Limit   int
}

type ListSessionsByAdminOutput struct {
	Sessions []*models.Session
}

type BindChannelInput struct {
	ChannelID string
	SessionID string
}

type GetSessionByChannelInput struct {
	ChannelID string
}
