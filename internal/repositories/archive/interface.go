package archive

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/clapometer/internal/repositories/archive Repository

import (
	"context"

	"github.com/KirkDiggler/clapometer/internal/models"
)

// Repository keeps retained sessions after they leave the live store
type Repository interface {
	// SaveSession inserts or replaces an archived session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves an archived session by code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// ListSessions queries archived sessions for an admin, newest first
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
