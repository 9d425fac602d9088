package session

import (
	"github.com/KirkDiggler/clapometer/internal/common/clock"
	"github.com/KirkDiggler/clapometer/internal/common/idgen"
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/repositories/archive"
	"github.com/KirkDiggler/clapometer/internal/repositories/ballot"
	sessionRepo "github.com/KirkDiggler/clapometer/internal/repositories/session"
	"github.com/KirkDiggler/clapometer/internal/votes"
)

const (
	// MaxNicknameLength is the longest nickname accepted, in characters
	MaxNicknameLength = 32

	// DefaultCodeAttempts is how many session codes are tried before giving up
	DefaultCodeAttempts = 5

	// DefaultListLimit caps ListSessions when no limit is given
	DefaultListLimit = 25
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	BallotRepo  ballot.Repository

	// ArchiveRepo is optional; without it ended sessions live only in the session store
	ArchiveRepo archive.Repository

	// Service dependencies
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// CodeAttempts bounds session code collision retries
	CodeAttempts int
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	// AdminID is the identity that will own the session
	AdminID string

	// SessionType defaults to quick
	SessionType models.SessionType

	// VotingMode defaults to single
	VotingMode models.VotingMode

	// ChannelID optionally binds the new session to a chat channel
	ChannelID string
}

// CreateSessionOutput contains the created session
type CreateSessionOutput struct {
	Session *models.Session
}

// GetSessionInput identifies a session
type GetSessionInput struct {
	SessionID string

	// ActorID decides whether hidden presenter scores are included
	ActorID string
}

// GetSessionOutput contains the session state
type GetSessionOutput struct {
	Session *models.Session

	// Archived is set when the session was loaded from the archive
	Archived bool
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	SessionID string

	// ParticipantID is the joining identity; an anonymous one is issued when empty
	ParticipantID string

	Nickname string
}

// JoinSessionOutput contains the result of joining
type JoinSessionOutput struct {
	Participant *models.Participant

	// AlreadyJoined is set when the participant re-joined with the same nickname
	AlreadyJoined bool
}

// AddPresenterInput contains parameters for queueing a presenter
type AddPresenterInput struct {
	SessionID string
	ActorID   string

	// Name defaults to the participant's nickname when ParticipantID is set
	Name          string
	AccountID     string
	ParticipantID string
}

// AddPresenterOutput contains the result of queueing a presenter
type AddPresenterOutput struct {
	Session *models.Session

	// Position is the zero-based queue position of the new entry
	Position int
}

// AdvancePresenterInput contains parameters for advancing the queue
type AdvancePresenterInput struct {
	SessionID string
	ActorID   string
}

// AdvancePresenterOutput contains the result of advancing
type AdvancePresenterOutput struct {
	Session *models.Session

	// Score is the record of the round that just closed, if a presenter was active
	Score *models.PresenterScore

	// Presenter is the new current presenter; nil once the queue is exhausted
	Presenter *models.QueueEntry
}

// RemovePresenterInput contains parameters for removing a presenter
type RemovePresenterInput struct {
	SessionID string
	ActorID   string
	Position  int
}

// RemovePresenterOutput contains the result of removing a presenter
type RemovePresenterOutput struct {
	Session *models.Session
	Removed *models.QueueEntry
}

type ClearQueueInput struct {
	SessionID string
	ActorID   string
}

type ClearQueueOutput struct {
	Session *models.Session
}

type ResetVotesInput struct {
	SessionID string
	ActorID   string
}

type ResetVotesOutput struct {
	Session *models.Session
}

type SetRoundActiveInput struct {
	SessionID string
	ActorID   string
	Active    bool
}

type SetRoundActiveOutput struct {
	Session *models.Session
}

// UpdateSettingsInput changes only the fields that are set
type UpdateSettingsInput struct {
	SessionID string
	ActorID   string

	SoundsEnabled      *bool
	ResultsVisible     *bool
	IsPermanentlySaved *bool
	VotingMode         *models.VotingMode
}

type UpdateSettingsOutput struct {
	Session *models.Session
}

// CastVoteInput contains parameters for voting
type CastVoteInput struct {
	SessionID     string
	ParticipantID string
	Kind          votes.Kind
}

// CastVoteOutput contains the counters after the vote
type CastVoteOutput struct {
	Session       *models.Session
	LikeClicks    int
	DislikeClicks int
}

type EndSessionInput struct {
	SessionID string
	ActorID   string
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	// Session is the final state; for deleted sessions it is the last snapshot
	Session *models.Session

	// Deleted is set when the session was removed instead of retained
	Deleted bool

	// FinalScore is the score of the presenter active at the end, if any
	FinalScore *models.PresenterScore
}

type KickParticipantInput struct {
	SessionID     string
	ActorID       string
	ParticipantID string
}

type KickParticipantOutput struct {
	Session *models.Session

	// RemovedEntries counts queue entries dropped with the participant
	RemovedEntries int
}

type GetLeaderboardInput struct {
	SessionID string
	ActorID   string
}

type GetLeaderboardOutput struct {
	Session *models.Session
	Entries []*models.LeaderboardEntry
}

type ListSessionsInput struct {
	AdminID string
	Limit   int
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}

type SubscribeInput struct {
	SessionID string
}

// SubscribeOutput streams session changes until closed
type SubscribeOutput struct {
	Events <-chan *sessionRepo.Event
	Close  func() error
}

type BindChannelInput struct {
	ChannelID string
	SessionID string
	ActorID   string
}

type BindChannelOutput struct {
	Session *models.Session
}

type GetSessionByChannelInput struct {
	ChannelID string
}
