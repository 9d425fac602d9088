package discord

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/clapometer/internal/services/messaging"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// ComponentHandler handles message components a command created
type ComponentHandler interface {
	// HandlesComponent reports whether the custom ID belongs to this handler
	HandlesComponent(customID string) bool

	// HandleComponent processes a component interaction
	HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	components []ComponentHandler
	clap       *ClapCommand
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	SessionService   session.Service
	MessagingService messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    dg,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		clap:       NewClapCommand(cfg.SessionService, cfg.MessagingService),
		config:     cfg,
	}

	dg.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.clap); err != nil {
		return fmt.Errorf("failed to register clap command: %w", err)
	}
	b.components = append(b.components, b.clap)

	log.Info().Msg("Bot is now running")
	return nil
}

// Stop removes registered commands, ends live status messages and closes the connection
func (b *Bot) Stop() error {
	b.clap.Stop()

	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).Str("command", cmdName).Str("id", cmdID).Msg("Failed to delete command")
		} else {
			log.Debug().Str("command", cmdName).Str("id", cmdID).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Guild commands show up immediately, global ones can take an hour
	if b.config.GuildID != "" {
		log.Info().Str("command", cmd.GetName()).Str("guild", b.config.GuildID).Msg("Registering guild command")
	} else {
		log.Info().Str("command", cmd.GetName()).Msg("Registering global command")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().Str("command", cmd.GetName()).Str("id", createdCmd.ID).Msg("Registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// fall back to the bot user once the session is open
	return b.session.State.User.ID
}

// handleInteraction routes Discord interactions to their handlers
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Error().Err(err).Str("command", name).Msg("Error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Error().Err(err).Str("custom_id", i.MessageComponentData().CustomID).Msg("Error handling component interaction")
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	for _, h := range b.components {
		if h.HandlesComponent(customID) {
			return h.HandleComponent(s, i)
		}
	}
	return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
}
