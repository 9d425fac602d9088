package queue

import (
	"github.com/KirkDiggler/clapometer/internal/models"
)

// State is the presenter-queue state derived from a session
type State string

const (
	// StateEmptyQueue is general feedback mode: no presenters queued
	StateEmptyQueue State = "EMPTY_QUEUE"

	// StateAwaitingStart has presenters queued but none selected yet
	StateAwaitingStart State = "AWAITING_START"

	// StatePresenting has a valid current presenter
	StatePresenting State = "PRESENTING"

	// StateQueueExhausted has moved past the last presenter
	StateQueueExhausted State = "QUEUE_EXHAUSTED"

	// StateEnded overrides every other state once the session is ended
	StateEnded State = "ENDED"
)

// StateOf derives the queue state of a session
func StateOf(s *models.Session) State {
	switch {
	case s.SessionEnded:
		return StateEnded
	case len(s.PresenterQueue) == 0:
		return StateEmptyQueue
	case s.CurrentPresenterIndex < 0:
		return StateAwaitingStart
	case s.CurrentPresenterIndex >= len(s.PresenterQueue):
		return StateQueueExhausted
	default:
		return StatePresenting
	}
}

// CurrentPresenter returns the active presenter, or nil when nobody is presenting
func CurrentPresenter(s *models.Session) *models.QueueEntry {
	if StateOf(s) != StatePresenting {
		return nil
	}
	return s.PresenterQueue[s.CurrentPresenterIndex]
}

// Normalize forces the invariants that must hold for any stored session
func Normalize(s *models.Session) {
	if s.SessionEnded {
		s.IsRoundActive = false
	}
	if s.LikeClicks < 0 {
		s.LikeClicks = 0
	}
	if s.DislikeClicks < 0 {
		s.DislikeClicks = 0
	}
	if s.CurrentPresenterIndex < models.NoPresenter {
		s.CurrentPresenterIndex = models.NoPresenter
	}
}
