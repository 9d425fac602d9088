package queue

import (
	"strings"
	"time"

	"github.com/KirkDiggler/clapometer/internal/models"
)

// AddPresenter appends an entry to the queue. The pointer and counters are untouched.
func AddPresenter(s *models.Session, entry *models.QueueEntry) error {
	if s.SessionEnded {
		return ErrSessionEnded
	}
	if entry == nil || strings.TrimSpace(entry.Name) == "" {
		return ErrEmptyName
	}

	added := *entry
	added.Name = strings.TrimSpace(added.Name)
	s.PresenterQueue = append(s.PresenterQueue, &added)
	return nil
}

// Advance closes the current presenter's round, if any, and moves to the next presenter.
// The returned score is nil when no presenter was active.
func Advance(s *models.Session, now time.Time) (*models.PresenterScore, error) {
	switch StateOf(s) {
	case StateEnded:
		return nil, ErrSessionEnded
	case StateEmptyQueue:
		return nil, ErrCannotAdvance
	case StateQueueExhausted:
		return nil, ErrQueueExhausted
	}

	var score *models.PresenterScore
	if current := CurrentPresenter(s); current != nil {
		score = models.NewPresenterScore(current, s.LikeClicks, s.DislikeClicks, now)
		s.PresenterScores = append(s.PresenterScores, score)
	}

	s.CurrentPresenterIndex++
	restartCounters(s)
	s.IsRoundActive = s.CurrentPresenterIndex < len(s.PresenterQueue)

	return score, nil
}

// RemovePresenter deletes the entry at position and keeps the pointer addressing the same presenter.
// Removing the active presenter resets the counters and clamps the pointer into the shrunk queue.
// Recorded scores are never touched.
func RemovePresenter(s *models.Session, position int) error {
	if s.SessionEnded {
		return ErrSessionEnded
	}
	if position < 0 || position >= len(s.PresenterQueue) {
		return ErrInvalidPosition
	}

	wasCurrent := position == s.CurrentPresenterIndex
	s.PresenterQueue = append(s.PresenterQueue[:position], s.PresenterQueue[position+1:]...)

	switch {
	case position < s.CurrentPresenterIndex:
		s.CurrentPresenterIndex--
	case wasCurrent:
		restartCounters(s)
		if len(s.PresenterQueue) == 0 {
			s.CurrentPresenterIndex = models.NoPresenter
		} else if s.CurrentPresenterIndex >= len(s.PresenterQueue) {
			s.CurrentPresenterIndex = len(s.PresenterQueue) - 1
		}
		s.IsRoundActive = CurrentPresenter(s) != nil
	}

	return nil
}

// RemoveParticipantEntries removes every queue entry referencing the participant.
// Entries are removed from the back so earlier positions stay valid. Returns the number removed.
func RemoveParticipantEntries(s *models.Session, participantID string) int {
	if participantID == "" {
		return 0
	}

	removed := 0
	for i := len(s.PresenterQueue) - 1; i >= 0; i-- {
		entry := s.PresenterQueue[i]
		if entry.ParticipantID != participantID && entry.AccountID != participantID {
			continue
		}
		if err := RemovePresenter(s, i); err == nil {
			removed++
		}
	}
	return removed
}

// ClearQueue drops all presenters and their history and returns to general feedback mode
func ClearQueue(s *models.Session) error {
	if s.SessionEnded {
		return ErrSessionEnded
	}

	s.PresenterQueue = []*models.QueueEntry{}
	s.PresenterScores = []*models.PresenterScore{}
	s.CurrentPresenterIndex = models.NoPresenter
	restartCounters(s)
	s.IsRoundActive = true
	return nil
}

// ResetPresenterVotes zeroes the counters of the active presenter without recording a score
func ResetPresenterVotes(s *models.Session) error {
	switch StateOf(s) {
	case StateEnded:
		return ErrSessionEnded
	case StatePresenting:
	default:
		return ErrNotPresenting
	}

	restartCounters(s)
	return nil
}

// ResetGeneralVotes zeroes the counters in general feedback mode
func ResetGeneralVotes(s *models.Session) error {
	switch StateOf(s) {
	case StateEnded:
		return ErrSessionEnded
	case StateEmptyQueue:
	default:
		return ErrNotGeneralMode
	}

	restartCounters(s)
	return nil
}

// restartCounters zeroes the counters and opens a new vote round
func restartCounters(s *models.Session) {
	s.LikeClicks = 0
	s.DislikeClicks = 0
	s.VoteRound++
}

// SetRoundActive pauses or resumes voting without touching counters or pointer
func SetRoundActive(s *models.Session, active bool) error {
	if s.SessionEnded {
		return ErrSessionEnded
	}
	s.IsRoundActive = active
	return nil
}

// FinalizeCurrent records the active presenter's score ahead of ending the session.
// Returns nil when nobody is presenting.
func FinalizeCurrent(s *models.Session, now time.Time) *models.PresenterScore {
	current := CurrentPresenter(s)
	if current == nil {
		return nil
	}
	score := models.NewPresenterScore(current, s.LikeClicks, s.DislikeClicks, now)
	s.PresenterScores = append(s.PresenterScores, score)
	return score
}
