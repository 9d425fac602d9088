package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/clapometer/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns a message for when a participant joins a session
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetPresenterUpMessage announces the presenter who just took the stage
	GetPresenterUpMessage(ctx context.Context, input *GetPresenterUpMessageInput) (*GetPresenterUpMessageOutput, error)

	// GetRoundResultMessage announces the result of a closed presenter round
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetSessionEndedMessage announces the end of a session
	GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
