package access

import (
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
)

// AccessError is returned when a vote cannot be accepted
type AccessError string

// Error implements the error interface
func (e AccessError) Error() string {
	return string(e)
}

const (
	ErrRoundClosed AccessError = "voting round is not open"
	ErrNoPresenter AccessError = "no presenter is currently active"
)

// IsAdmin reports whether the actor is the session's designated admin
func IsAdmin(actorID string, s *models.Session) bool {
	if s == nil || actorID == "" {
		return false
	}
	return s.AdminID == actorID
}

// HasJoined reports whether the actor has joined the session with a nickname
func HasJoined(actorID string, s *models.Session) bool {
	if s == nil {
		return false
	}
	p, ok := s.Participant(actorID)
	return ok && p.Nickname != ""
}

// CanSeeResults reports whether the actor may read recorded presenter scores.
// Admins always can; everyone else once results are shown or the session has ended.
func CanSeeResults(actorID string, s *models.Session) bool {
	if s == nil {
		return false
	}
	return IsAdmin(actorID, s) || s.ResultsVisible || s.SessionEnded
}

// CanVote checks that the session is accepting votes right now.
// Votes are accepted in general feedback mode or while a presenter is active.
func CanVote(s *models.Session) error {
	state := queue.StateOf(s)
	if state == queue.StateEnded {
		return queue.ErrSessionEnded
	}
	if !s.IsRoundActive {
		return ErrRoundClosed
	}
	if state != queue.StateEmptyQueue && state != queue.StatePresenting {
		return ErrNoPresenter
	}
	return nil
}
