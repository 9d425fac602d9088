package archive

import "github.com/KirkDiggler/clapometer/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type ListSessionsInput struct {
	AdminID string

	// OnlyEnded restricts the listing to sessions that have ended
	OnlyEnded bool

	Limit int64
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}
