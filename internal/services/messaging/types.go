package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/clapometer/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Rand selects between message variants; seeded from the clock when nil
	Rand *rand.Rand
}

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	// Nickname is the name the participant joined with
	Nickname string

	// AlreadyJoined indicates the participant had joined before
	AlreadyJoined bool

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetJoinMessageOutput contains the result of getting a join message
type GetJoinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetPresenterUpMessageInput is the input for GetPresenterUpMessage
type GetPresenterUpMessageInput struct {
	PresenterName string

	// Position is the zero-based queue position of the presenter
	Position    int
	QueueLength int
}

// GetPresenterUpMessageOutput is the output for GetPresenterUpMessage
type GetPresenterUpMessageOutput struct {
	Title   string
	Message string
}

// GetRoundResultMessageInput is the input for GetRoundResultMessage
type GetRoundResultMessageInput struct {
	Score *models.PresenterScore
}

// GetRoundResultMessageOutput is the output for GetRoundResultMessage
type GetRoundResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetSessionEndedMessageInput is the input for GetSessionEndedMessage
type GetSessionEndedMessageInput struct {
	// Deleted indicates the session was removed rather than kept
	Deleted bool

	// Leaderboard is the final ranking; may be empty for general feedback sessions
	Leaderboard []*models.LeaderboardEntry

	// LikeClicks and DislikeClicks are the general feedback totals at the end
	LikeClicks    int
	DislikeClicks int
}

// GetSessionEndedMessageOutput is the output for GetSessionEndedMessage
type GetSessionEndedMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the session service
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string

	// Quiet is set for authorization failures that should not draw attention
	Quiet bool
}
