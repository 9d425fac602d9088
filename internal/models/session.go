package models

import (
	"time"
)

// VotingMode controls how many votes a participant may cast per round
type VotingMode string

const (
	// VotingModeSingle allows one vote per participant per presenter round
	VotingModeSingle VotingMode = "single"

	// VotingModeInfinite allows unlimited votes
	VotingModeInfinite VotingMode = "infinite"
)

// IsValid reports whether the mode is a known voting mode
func (m VotingMode) IsValid() bool {
	return m == VotingModeSingle || m == VotingModeInfinite
}

// SessionType determines what happens to a session when it ends
type SessionType string

const (
	// SessionTypeQuick sessions are deleted on end unless permanently saved
	SessionTypeQuick SessionType = "quick"

	// SessionTypePersisted sessions are always retained after they end
	SessionTypePersisted SessionType = "persisted"
)

// IsValid reports whether the type is a known session type
func (t SessionType) IsValid() bool {
	return t == SessionTypeQuick || t == SessionTypePersisted
}

// NoPresenter is the current presenter index before the queue has been started
const NoPresenter = -1

// Session is the single shared document for one voting event
type Session struct {
	// ID is the short shareable session code
	ID string `json:"id" bson:"_id"`

	// AdminID is the identity allowed to mutate the session
	AdminID string `json:"adminUid" bson:"adminUid"`

	// IsRoundActive indicates whether votes are currently accepted
	IsRoundActive bool `json:"isRoundActive" bson:"isRoundActive"`

	// LikeClicks counts likes for the active presenter or general feedback
	LikeClicks int `json:"likeClicks" bson:"likeClicks"`

	// DislikeClicks counts dislikes for the active presenter or general feedback
	DislikeClicks int `json:"dislikeClicks" bson:"dislikeClicks"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// SessionEnded is set once the session has been soft-ended
	SessionEnded bool `json:"sessionEnded" bson:"sessionEnded"`

	// EndedAt is when the session was soft-ended
	EndedAt *time.Time `json:"endedAt,omitempty" bson:"endedAt,omitempty"`

	// SoundsEnabled toggles audio cues on clients
	SoundsEnabled bool `json:"soundsEnabled" bson:"soundsEnabled"`

	// ResultsVisible exposes the leaderboard to participants
	ResultsVisible bool `json:"resultsVisible" bson:"resultsVisible"`

	// Participants maps identity to participant record
	Participants map[string]*Participant `json:"participants" bson:"participants"`

	// PresenterQueue is the ordered list of scheduled presenters
	PresenterQueue []*QueueEntry `json:"presenterQueue" bson:"presenterQueue"`

	// CurrentPresenterIndex points into PresenterQueue, or NoPresenter
	CurrentPresenterIndex int `json:"currentPresenterIndex" bson:"currentPresenterIndex"`

	// VoteRound advances whenever the counters restart; single-mode ballots are keyed by it
	VoteRound int `json:"voteRound" bson:"voteRound"`

	// PresenterScores is the append-only history of closed presenter rounds
	PresenterScores []*PresenterScore `json:"presenterScores" bson:"presenterScores"`

	// IsPermanentlySaved keeps a quick session around after it ends
	IsPermanentlySaved bool `json:"isPermanentlySaved" bson:"isPermanentlySaved"`

	// VotingMode is single or infinite
	VotingMode VotingMode `json:"votingMode" bson:"votingMode"`

	// SessionType is quick or persisted
	SessionType SessionType `json:"sessionType" bson:"sessionType"`
}

// DeleteOnEnd reports whether ending the session removes it instead of retaining it
func (s *Session) DeleteOnEnd() bool {
	return s.SessionType == SessionTypeQuick && !s.IsPermanentlySaved
}

// Participant looks up a participant by identity
func (s *Session) Participant(id string) (*Participant, bool) {
	if s.Participants == nil {
		return nil, false
	}
	p, ok := s.Participants[id]
	return p, ok
}
