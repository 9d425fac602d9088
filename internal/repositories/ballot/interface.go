package ballot

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/clapometer/internal/repositories/ballot Repository

import (
	"context"
)

// Repository tracks which participants have voted in which round
type Repository interface {
	// RecordVote marks a participant as having voted in a round
	RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error)

	// ReleaseVote removes a participant's ballot for a round
	ReleaseVote(ctx context.Context, input *ReleaseVoteInput) error

	// ClearSession removes every ballot recorded for a session
	ClearSession(ctx context.Context, input *ClearSessionInput) error
}
