package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/clapometer/internal/services/session Service

import "context"

// Service defines the interface for voting session operations
type Service interface {
	// CreateSession starts a new session owned by the caller
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession returns the current state of a session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// JoinSession registers a participant with a nickname
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// AddPresenter appends a presenter to the queue
	AddPresenter(ctx context.Context, input *AddPresenterInput) (*AddPresenterOutput, error)

	// AdvancePresenter closes the current round and moves to the next presenter
	AdvancePresenter(ctx context.Context, input *AdvancePresenterInput) (*AdvancePresenterOutput, error)

	// RemovePresenter removes a presenter from the queue by position
	RemovePresenter(ctx context.Context, input *RemovePresenterInput) (*RemovePresenterOutput, error)

	// ClearQueue empties the queue and returns to general feedback
	ClearQueue(ctx context.Context, input *ClearQueueInput) (*ClearQueueOutput, error)

	// ResetVotes zeroes the counters of the current round
	ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error)

	// SetRoundActive pauses or resumes voting
	SetRoundActive(ctx context.Context, input *SetRoundActiveInput) (*SetRoundActiveOutput, error)

	// UpdateSettings changes session toggles and the voting mode
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)

	// CastVote records a like or dislike
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// EndSession ends a session, deleting or retaining it by type
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// KickParticipant removes a participant and their queue entries
	KickParticipant(ctx context.Context, input *KickParticipantInput) (*KickParticipantOutput, error)

	// GetLeaderboard ranks the recorded presenter scores
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// ListSessions returns an admin's live and archived sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// Subscribe streams changes to a session
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// BindChannel associates a chat channel with a session
	BindChannel(ctx context.Context, input *BindChannelInput) (*BindChannelOutput, error)

	// GetSessionByChannel returns the session bound to a chat channel
	GetSessionByChannel(ctx context.Context, input *GetSessionByChannelInput) (*GetSessionOutput, error)
}
