package votes

import (
	"strconv"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/models"
)

// Kind is the reaction being cast
type Kind string

const (
	KindLike    Kind = "like"
	KindDislike Kind = "dislike"
)

// IsValid reports whether the kind is a known reaction
func (k Kind) IsValid() bool {
	return k == KindLike || k == KindDislike
}

// VoteError is returned for malformed votes
type VoteError string

// Error implements the error interface
func (e VoteError) Error() string {
	return string(e)
}

const ErrInvalidKind VoteError = "vote must be like or dislike"

// Apply adds one reaction to the session counters if the session accepts votes
func Apply(s *models.Session, kind Kind) error {
	if !kind.IsValid() {
		return ErrInvalidKind
	}
	if err := access.CanVote(s); err != nil {
		return err
	}

	switch kind {
	case KindLike:
		s.LikeClicks++
	case KindDislike:
		s.DislikeClicks++
	}
	return nil
}

// RoundID identifies the current voting round for single-vote tracking.
// The queue bumps VoteRound in the same update that restarts the counters (advance, reset,
// clear, removal of the active presenter), so an identity is never reused within a session.
func RoundID(s *models.Session) string {
	return strconv.Itoa(s.VoteRound)
}

// LimitsVotes reports whether participants are held to one vote per round
func LimitsVotes(s *models.Session) bool {
	return s.VotingMode != models.VotingModeInfinite
}
