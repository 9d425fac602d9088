package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/clapometer/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/clapometer/internal/models"
)

// Repository is the session document store
type Repository interface {
	// CreateSession stores a new session, failing if the code is already taken
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateSession applies a mutation to a session atomically
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// Subscribe streams change notifications for a session
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// ListSessionsByAdmin returns the live sessions created by an admin, newest first
	ListSessionsByAdmin(ctx context.Context, input *ListSessionsByAdminInput) (*ListSessionsByAdminOutput, error)

	// BindChannel associates a chat channel with a session
	BindChannel(ctx context.Context, input *BindChannelInput) error

	// GetSessionByChannel retrieves the session bound to a chat channel
	GetSessionByChannel(ctx context.Context, input *GetSessionByChannelInput) (*models.Session, error)
}
