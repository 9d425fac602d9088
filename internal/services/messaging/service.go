package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/KirkDiggler/clapometer/internal/votes"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	r := config.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetJoinMessage returns a message for when a participant joins a session
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	if input.AlreadyJoined {
		messages = []string{
			"You're already in, %s. Your clapping hands are ready.",
			"Welcome back, %s! Same seat, same nickname.",
			"%s, you never left. Keep those reactions coming.",
		}
	} else {
		switch tone {
		case ToneNeutral:
			messages = []string{
				"%s joined the session.",
			}
		default:
			messages = []string{
				"%s has entered the audience. Warm up those hands!",
				"Make some noise for %s, the newest critic in the room.",
				"%s grabbed a seat. Front row, hopefully.",
				"A wild %s appears! They look ready to clap.",
			}
		}
	}

	return &GetJoinMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.Nickname),
		Tone:    tone,
	}, nil
}

// GetPresenterUpMessage announces the presenter who just took the stage
func (s *service) GetPresenterUpMessage(ctx context.Context, input *GetPresenterUpMessageInput) (*GetPresenterUpMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	titles := []string{
		"🎤 Now Presenting",
		"🎬 On Stage",
		"🌟 Spotlight",
	}

	var messages []string
	switch {
	case input.Position == 0:
		messages = []string{
			"%s kicks things off! Be kind, be honest, be loud.",
			"First up: %s. No pressure!",
		}
	case input.QueueLength > 0 && input.Position == input.QueueLength-1:
		messages = []string{
			"Last but not least, %s!",
			"%s closes the show. Make it count!",
		}
	default:
		messages = []string{
			"%s takes the stage.",
			"Give it up for %s!",
			"The floor is yours, %s.",
		}
	}

	message := fmt.Sprintf(s.pick(messages), input.PresenterName)
	if input.QueueLength > 0 {
		message = fmt.Sprintf("%s (%d of %d)", message, input.Position+1, input.QueueLength)
	}

	return &GetPresenterUpMessageOutput{
		Title:   s.pick(titles),
		Message: message,
	}, nil
}

// GetRoundResultMessage announces the result of a closed presenter round
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil || input.Score == nil {
		return nil, errors.New("input and score cannot be nil")
	}

	score := input.Score
	var titles, messages []string
	var tone MessageTone
	switch {
	case score.Likes+score.Dislikes == 0:
		tone = ToneEncouraging
		titles = []string{"🦗 Crickets"}
		messages = []string{
			"Nobody voted for %s. Tough crowd, or a very quiet one.",
			"%s finished to total silence. We'll assume it was stunned admiration.",
		}
	case score.NetScore > 0 && score.Dislikes == 0:
		tone = ToneCelebration
		titles = []string{"🏆 Flawless", "💯 Unanimous"}
		messages = []string{
			"Not a single dislike for %s!",
			"%s won over the entire room.",
		}
	case score.NetScore > 0:
		tone = ToneCelebration
		titles = []string{"👏 Round Closed", "🎉 Well Done"}
		messages = []string{
			"%s leaves the stage to applause.",
			"The crowd liked what %s had to say.",
		}
	case score.NetScore == 0:
		tone = ToneNeutral
		titles = []string{"⚖️ Split Decision"}
		messages = []string{
			"The room is perfectly divided on %s.",
			"%s broke even. Balanced, as all things should be.",
		}
	default:
		tone = ToneEncouraging
		titles = []string{"🌱 Room To Grow"}
		messages = []string{
			"Tough crowd for %s. Every great speaker has a night like this.",
			"%s got more thumbs down than up, but it took guts to present.",
		}
	}

	message := fmt.Sprintf(s.pick(messages), score.Name)
	message = fmt.Sprintf("%s\n👍 %d  👎 %d  (net %+d)", message, score.Likes, score.Dislikes, score.NetScore)

	return &GetRoundResultMessageOutput{
		Title:   s.pick(titles),
		Message: message,
		Tone:    tone,
	}, nil
}

// GetSessionEndedMessage announces the end of a session and its winner, if any
func (s *service) GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := "🏁 Session Ended"

	var message string
	if len(input.Leaderboard) > 0 && input.Leaderboard[0].Score != nil {
		winner := input.Leaderboard[0].Score
		messages := []string{
			"%s takes the crown with %d likes!",
			"And the audience favourite is... %s, with %d likes!",
			"%s wins the night. %d likes can't be wrong.",
		}
		message = fmt.Sprintf(s.pick(messages), winner.Name, winner.Likes)
	} else {
		message = fmt.Sprintf("Final feedback: 👍 %d  👎 %d", input.LikeClicks, input.DislikeClicks)
	}

	if input.Deleted {
		message += "\nThis was a quick session, so the results were not kept."
	}

	return &GetSessionEndedMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// GetErrorMessage translates a session error into something a participant can act on
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	quiet := false
	switch err := input.Err; {
	case err == nil:
		message = "All good!"
	case errors.Is(err, session.ErrNotAdmin):
		message = "Only the session admin can do that."
		quiet = true
	case errors.Is(err, session.ErrSessionNotFound):
		message = "That session doesn't exist or has already been cleaned up."
	case errors.Is(err, session.ErrNotJoined):
		message = "Join the session with a nickname before voting."
	case errors.Is(err, session.ErrAlreadyVoted):
		message = s.pick([]string{
			"You already voted for this round. One clap per customer!",
			"Easy there! You've had your say this round.",
		})
	case errors.Is(err, session.ErrRoundChanged):
		message = "The presenter changed while you were voting. Try again!"
	case errors.Is(err, session.ErrNicknameTaken):
		message = "Someone already grabbed that nickname. Pick another."
	case errors.Is(err, session.ErrNicknameLocked):
		message = "Your nickname is set for this session and can't be changed."
	case errors.Is(err, session.ErrEmptyNickname):
		message = "Your nickname can't be blank."
	case errors.Is(err, session.ErrNicknameTooLong):
		message = fmt.Sprintf("Keep your nickname to %d characters or fewer.", session.MaxNicknameLength)
	case errors.Is(err, session.ErrActionInProgress):
		message = "Hang on, we're still working on your last click."
	case errors.Is(err, session.ErrResultsHidden):
		message = "Results are under wraps until the admin reveals them."
	case errors.Is(err, session.ErrCannotKickSelf):
		message = "You can't kick yourself from your own session."
	case errors.Is(err, session.ErrParticipantNotFound):
		message = "That participant isn't in the session."
	case errors.Is(err, queue.ErrSessionEnded):
		message = "This session has ended."
	case errors.Is(err, access.ErrRoundClosed):
		message = "Voting is paused right now."
	case errors.Is(err, access.ErrNoPresenter):
		message = "Nobody is presenting right now."
	case errors.Is(err, queue.ErrCannotAdvance):
		message = "Add a presenter before advancing."
	case errors.Is(err, queue.ErrQueueExhausted):
		message = "Everyone has presented. Add more presenters or end the session."
	case errors.Is(err, queue.ErrInvalidPosition):
		message = "There's no presenter at that position."
	case errors.Is(err, queue.ErrNotPresenting), errors.Is(err, queue.ErrNotGeneralMode):
		message = "There are no votes to reset right now."
	case errors.Is(err, queue.ErrEmptyName):
		message = "Presenters need a name."
	case errors.Is(err, votes.ErrInvalidKind):
		message = "That's not a valid reaction."
	default:
		message = "Something went wrong. Please try again in a moment."
	}

	return &GetErrorMessageOutput{
		Message: message,
		Quiet:   quiet,
	}, nil
}
