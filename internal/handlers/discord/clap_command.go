package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/services/messaging"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/KirkDiggler/clapometer/internal/votes"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Subcommand names of /clap
const (
	SubcommandCreate      = "create"
	SubcommandJoin        = "join"
	SubcommandAdd         = "add"
	SubcommandNext        = "next"
	SubcommandRemove      = "remove"
	SubcommandClear       = "clear"
	SubcommandReset       = "reset"
	SubcommandPause       = "pause"
	SubcommandResume      = "resume"
	SubcommandEnd         = "end"
	SubcommandKick        = "kick"
	SubcommandSettings    = "settings"
	SubcommandLeaderboard = "leaderboard"
	SubcommandStatus      = "status"
	SubcommandHistory     = "history"
)

// ClapCommand handles the /clap command and the buttons on its status messages
type ClapCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
	board            *statusBoard
}

// NewClapCommand creates a new clap command handler
func NewClapCommand(sessionService session.Service, messagingService messaging.Service) *ClapCommand {
	modeChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "One vote per presenter", Value: string(models.VotingModeSingle)},
		{Name: "Unlimited votes", Value: string(models.VotingModeInfinite)},
	}

	return &ClapCommand{
		BaseCommand: BaseCommand{
			Name:        "clap",
			Description: "Live like/dislike voting for presentations",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandCreate,
					Description: "Start a voting session in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "type",
							Description: "Quick sessions are discarded when they end",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Quick", Value: string(models.SessionTypeQuick)},
								{Name: "Persisted", Value: string(models.SessionTypePersisted)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "How many votes each participant gets",
							Choices:     modeChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandJoin,
					Description: "Join the session with a nickname",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "nickname",
							Description: "Your name for this session (cannot be changed later)",
							MaxLength:   session.MaxNicknameLength,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "Session code, if not the one in this channel",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandAdd,
					Description: "Add a presenter to the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Presenter name",
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Presenter from this server",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandNext,
					Description: "Close the current round and move to the next presenter",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRemove,
					Description: "Remove a presenter from the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "position",
							Description: "Queue position, starting at 1",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandClear,
					Description: "Clear the queue and return to general feedback",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandReset,
					Description: "Reset the votes of the current round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandPause,
					Description: "Pause voting",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandResume,
					Description: "Resume voting",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandEnd,
					Description: "End the session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandKick,
					Description: "Remove a participant and their queue entries",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Participant to remove",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandSettings,
					Description: "Change session settings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "results",
							Description: "Show the leaderboard to participants",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "sounds",
							Description: "Play sounds on connected dashboards",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "permanent",
							Description: "Keep this quick session after it ends",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "How many votes each participant gets",
							Choices:     modeChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandLeaderboard,
					Description: "Show presenter rankings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStatus,
					Description: "Post a fresh status message for the session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandHistory,
					Description: "List the sessions you have run",
				},
			},
		},
		sessionService:   sessionService,
		messagingService: messagingService,
		board:            newStatusBoard(sessionService),
	}
}

// Handle processes a Discord interaction for the clap command
func (c *ClapCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]
	options := subcommandOptions(sub)
	userID, username := interactionUser(i)

	log.Debug().
		Str("channel", i.ChannelID).
		Str("actor", userID).
		Str("action", sub.Name).
		Msg("Handling clap command")

	switch sub.Name {
	case SubcommandCreate:
		return c.handleCreate(ctx, s, i, userID, options)
	case SubcommandJoin:
		return c.handleJoin(ctx, s, i, userID, username, options)
	case SubcommandHistory:
		return c.handleHistory(ctx, s, i, userID)
	}

	code := ""
	if opt, ok := options["code"]; ok {
		code = opt.StringValue()
	}
	current, err := c.resolveSession(ctx, i.ChannelID, code)
	if err != nil {
		return c.respondError(s, i, err)
	}

	switch sub.Name {
	case SubcommandAdd:
		return c.handleAdd(ctx, s, i, current, userID, options)
	case SubcommandNext:
		return c.handleNext(ctx, s, i, current.ID, userID)
	case SubcommandRemove:
		return c.handleRemove(ctx, s, i, current.ID, userID, options)
	case SubcommandClear:
		_, err = c.sessionService.ClearQueue(ctx, &session.ClearQueueInput{SessionID: current.ID, ActorID: userID})
		return c.respondDone(s, i, err, "Queue cleared. Back to general feedback.")
	case SubcommandReset:
		_, err = c.sessionService.ResetVotes(ctx, &session.ResetVotesInput{SessionID: current.ID, ActorID: userID})
		return c.respondDone(s, i, err, "Votes reset.")
	case SubcommandPause, SubcommandResume:
		_, err = c.sessionService.SetRoundActive(ctx, &session.SetRoundActiveInput{
			SessionID: current.ID,
			ActorID:   userID,
			Active:    sub.Name == SubcommandResume,
		})
		if sub.Name == SubcommandResume {
			return c.respondDone(s, i, err, "Voting resumed.")
		}
		return c.respondDone(s, i, err, "Voting paused.")
	case SubcommandEnd:
		return c.handleEnd(ctx, s, i, current.ID, userID)
	case SubcommandKick:
		return c.handleKick(ctx, s, i, current.ID, userID, options)
	case SubcommandSettings:
		return c.handleSettings(ctx, s, i, current.ID, userID, options)
	case SubcommandLeaderboard:
		return c.handleLeaderboard(ctx, s, i, current.ID, userID)
	case SubcommandStatus:
		if err := c.board.Track(s, i.ChannelID, current); err != nil {
			return c.respondError(s, i, err)
		}
		return RespondWithEphemeralMessage(s, i, "Status message posted.")
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

// HandlesComponent reports whether the custom ID belongs to a clap status message
func (c *ClapCommand) HandlesComponent(customID string) bool {
	_, _, ok := parseButtonID(customID)
	return ok
}

// HandleComponent processes a button click on a status message
func (c *ClapCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, sessionID, ok := parseButtonID(i.MessageComponentData().CustomID)
	if !ok {
		return RespondWithError(s, i, "Unknown button")
	}

	ctx := context.Background()
	userID, username := interactionUser(i)

	switch action {
	case ButtonLike, ButtonDislike:
		kind := votes.KindLike
		if action == ButtonDislike {
			kind = votes.KindDislike
		}
		_, err := c.sessionService.CastVote(ctx, &session.CastVoteInput{
			SessionID:     sessionID,
			ParticipantID: userID,
			Kind:          kind,
		})
		if err != nil {
			return c.respondError(s, i, err)
		}
		// the status message picks the new counts up from the subscription
		return AcknowledgeComponent(s, i)
	case ButtonJoin:
		// keep the nickname of an earlier /clap join so the button reports "already joined"
		current, err := c.resolveSession(ctx, i.ChannelID, sessionID)
		if err != nil {
			return c.respondError(s, i, err)
		}
		if p, ok := current.Participant(userID); ok && p.Nickname != "" {
			username = p.Nickname
		}
		return c.join(ctx, s, i, sessionID, userID, username)
	case ButtonNext:
		return c.handleNext(ctx, s, i, sessionID, userID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", action))
	}
}

// Stop ends all live status messages
func (c *ClapCommand) Stop() {
	c.board.Stop()
}

func (c *ClapCommand) resolveSession(ctx context.Context, channelID, code string) (*models.Session, error) {
	if code != "" {
		output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{
			SessionID: strings.ToUpper(strings.TrimSpace(code)),
		})
		if err != nil {
			return nil, err
		}
		return output.Session, nil
	}

	output, err := c.sessionService.GetSessionByChannel(ctx, &session.GetSessionByChannelInput{
		ChannelID: channelID,
	})
	if err != nil {
		return nil, err
	}
	return output.Session, nil
}

func (c *ClapCommand) handleCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	input := &session.CreateSessionInput{
		AdminID:   userID,
		ChannelID: i.ChannelID,
	}
	if opt, ok := options["type"]; ok {
		input.SessionType = models.SessionType(opt.StringValue())
	}
	if opt, ok := options["mode"]; ok {
		input.VotingMode = models.VotingMode(opt.StringValue())
	}

	output, err := c.sessionService.CreateSession(ctx, input)
	if err != nil {
		return c.respondError(s, i, err)
	}

	if err := c.board.Track(s, i.ChannelID, output.Session); err != nil {
		log.Error().Err(err).Str("session", output.Session.ID).Msg("Failed to start status message")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Session `%s` created. Share the code or have people press **Join** on the status message.",
		output.Session.ID))
}

func (c *ClapCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, username string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	code := ""
	if opt, ok := options["code"]; ok {
		code = opt.StringValue()
	}
	current, err := c.resolveSession(ctx, i.ChannelID, code)
	if err != nil {
		return c.respondError(s, i, err)
	}

	if opt, ok := options["nickname"]; ok {
		username = opt.StringValue()
	}
	return c.join(ctx, s, i, current.ID, userID, username)
}

func (c *ClapCommand) join(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID, nickname string) error {
	output, err := c.sessionService.JoinSession(ctx, &session.JoinSessionInput{
		SessionID:     sessionID,
		ParticipantID: userID,
		Nickname:      nickname,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	msg, err := c.messagingService.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{
		Nickname:      output.Participant.Nickname,
		AlreadyJoined: output.AlreadyJoined,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "You're in!")
	}
	return RespondWithEphemeralMessage(s, i, msg.Message)
}

func (c *ClapCommand) handleAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, current *models.Session, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	input := &session.AddPresenterInput{
		SessionID: current.ID,
		ActorID:   userID,
	}
	if opt, ok := options["name"]; ok {
		input.Name = opt.StringValue()
	}
	if opt, ok := options["user"]; ok {
		user := opt.UserValue(s)
		input.AccountID = user.ID
		if _, joined := current.Participant(user.ID); joined {
			input.ParticipantID = user.ID
		} else if input.Name == "" {
			input.Name = user.Username
		}
	}

	output, err := c.sessionService.AddPresenter(ctx, input)
	if err != nil {
		return c.respondError(s, i, err)
	}

	entry := output.Session.PresenterQueue[output.Position]
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Added **%s** at position %d.", entry.Name, output.Position+1))
}

// handleNext advances the queue and announces the result publicly
func (c *ClapCommand) handleNext(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string) error {
	output, err := c.sessionService.AdvancePresenter(ctx, &session.AdvancePresenterInput{
		SessionID: sessionID,
		ActorID:   userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	var embeds []*discordgo.MessageEmbed
	if output.Score != nil {
		result, err := c.messagingService.GetRoundResultMessage(ctx, &messaging.GetRoundResultMessageInput{
			Score: output.Score,
		})
		if err == nil {
			embeds = append(embeds, renderAnnouncementEmbed(result.Title, result.Message))
		}
	}
	if output.Presenter != nil {
		up, err := c.messagingService.GetPresenterUpMessage(ctx, &messaging.GetPresenterUpMessageInput{
			PresenterName: output.Presenter.Name,
			Position:      output.Session.CurrentPresenterIndex,
			QueueLength:   len(output.Session.PresenterQueue),
		})
		if err == nil {
			embeds = append(embeds, renderAnnouncementEmbed(up.Title, up.Message))
		}
	} else {
		embeds = append(embeds, renderAnnouncementEmbed("🎊 That's Everyone", "All presenters are done. End the session to reveal the winner."))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
		},
	})
}

func (c *ClapCommand) handleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	position := 0
	if opt, ok := options["position"]; ok {
		position = int(opt.IntValue())
	}

	output, err := c.sessionService.RemovePresenter(ctx, &session.RemovePresenterInput{
		SessionID: sessionID,
		ActorID:   userID,
		Position:  position - 1,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	name := "presenter"
	if output.Removed != nil {
		name = output.Removed.Name
	}
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Removed **%s** from the queue.", name))
}

func (c *ClapCommand) handleEnd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string) error {
	output, err := c.sessionService.EndSession(ctx, &session.EndSessionInput{
		SessionID: sessionID,
		ActorID:   userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	msg, err := c.messagingService.GetSessionEndedMessage(ctx, &messaging.GetSessionEndedMessageInput{
		Deleted:       output.Deleted,
		Leaderboard:   models.Leaderboard(output.Session.PresenterScores),
		LikeClicks:    output.Session.LikeClicks,
		DislikeClicks: output.Session.DislikeClicks,
	})
	if err != nil {
		return RespondWithMessage(s, i, "Session ended.")
	}
	return RespondWithEmbed(s, i, renderAnnouncementEmbed(msg.Title, msg.Message), false)
}

func (c *ClapCommand) handleKick(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	opt, ok := options["user"]
	if !ok {
		return RespondWithError(s, i, "Pick a user to kick.")
	}
	target := opt.UserValue(s)

	output, err := c.sessionService.KickParticipant(ctx, &session.KickParticipantInput{
		SessionID:     sessionID,
		ActorID:       userID,
		ParticipantID: target.ID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Removed <@%s> and %d queue entr%s.", target.ID, output.RemovedEntries, plural(output.RemovedEntries, "y", "ies")))
}

func (c *ClapCommand) handleSettings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	input := &session.UpdateSettingsInput{
		SessionID: sessionID,
		ActorID:   userID,
	}
	if opt, ok := options["results"]; ok {
		v := opt.BoolValue()
		input.ResultsVisible = &v
	}
	if opt, ok := options["sounds"]; ok {
		v := opt.BoolValue()
		input.SoundsEnabled = &v
	}
	if opt, ok := options["permanent"]; ok {
		v := opt.BoolValue()
		input.IsPermanentlySaved = &v
	}
	if opt, ok := options["mode"]; ok {
		v := models.VotingMode(opt.StringValue())
		input.VotingMode = &v
	}

	output, err := c.sessionService.UpdateSettings(ctx, input)
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Settings saved. Results visible: %t · Sounds: %t · Keep after end: %t · Mode: %s",
		output.Session.ResultsVisible, output.Session.SoundsEnabled, !output.Session.DeleteOnEnd(), output.Session.VotingMode))
}

func (c *ClapCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, userID string) error {
	output, err := c.sessionService.GetLeaderboard(ctx, &session.GetLeaderboardInput{
		SessionID: sessionID,
		ActorID:   userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	// admins preview privately until results are public
	ephemeral := !output.Session.ResultsVisible && !output.Session.SessionEnded
	return RespondWithEmbed(s, i, renderLeaderboardEmbed(output.Session, output.Entries), ephemeral)
}

func (c *ClapCommand) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	output, err := c.sessionService.ListSessions(ctx, &session.ListSessionsInput{
		AdminID: userID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}
	return RespondWithEmbed(s, i, renderHistoryEmbed(output.Sessions), true)
}

func (c *ClapCommand) respondDone(s *discordgo.Session, i *discordgo.InteractionCreate, err error, message string) error {
	if err != nil {
		return c.respondError(s, i, err)
	}
	return RespondWithEphemeralMessage(s, i, message)
}

// respondError turns a service error into an ephemeral reply
func (c *ClapCommand) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	if !isUserError(err) {
		log.Error().Err(err).Str("channel", i.ChannelID).Msg("Clap command failed")
	}

	msg, msgErr := c.messagingService.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		return RespondWithError(s, i, "Something went wrong.")
	}

	if msg.Quiet {
		return RespondWithEphemeralMessage(s, i, msg.Message)
	}
	return RespondWithError(s, i, msg.Message)
}

// isUserError reports whether err is a rule violation rather than a failure
func isUserError(err error) bool {
	var sessionErr session.SessionError
	var queueErr queue.QueueError
	var accessErr access.AccessError
	var voteErr votes.VoteError
	return errors.As(err, &sessionErr) ||
		errors.As(err, &queueErr) ||
		errors.As(err, &accessErr) ||
		errors.As(err, &voteErr)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
