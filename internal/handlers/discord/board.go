package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// statusBoard keeps one live status message per session in sync with the session store
type statusBoard struct {
	sessionService session.Service

	mu       sync.Mutex
	watchers map[string]*statusWatcher
}

type statusWatcher struct {
	sessionID string
	channelID string
	messageID string
	cancel    context.CancelFunc
	done      chan struct{}
}

func newStatusBoard(sessionService session.Service) *statusBoard {
	return &statusBoard{
		sessionService: sessionService,
		watchers:       make(map[string]*statusWatcher),
	}
}

// Track posts a status message for the session and edits it on every change.
// Tracking the same session again moves the live message to the new channel message.
func (b *statusBoard) Track(s *discordgo.Session, channelID string, current *models.Session) error {
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{renderStatusEmbed(current)},
		Components: renderStatusComponents(current),
	})
	if err != nil {
		return fmt.Errorf("failed to post status message: %w", err)
	}

	if current.SessionEnded {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := b.sessionService.Subscribe(ctx, &session.SubscribeInput{
		SessionID: current.ID,
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe to session: %w", err)
	}

	w := &statusWatcher{
		sessionID: current.ID,
		channelID: channelID,
		messageID: msg.ID,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	b.mu.Lock()
	previous := b.watchers[current.ID]
	b.watchers[current.ID] = w
	b.mu.Unlock()

	if previous != nil {
		previous.cancel()
	}

	go b.watch(ctx, s, w, sub)
	return nil
}

func (b *statusBoard) watch(ctx context.Context, s *discordgo.Session, w *statusWatcher, sub *session.SubscribeOutput) {
	defer close(w.done)
	defer w.cancel()
	defer func() {
		if err := sub.Close(); err != nil {
			log.Warn().Err(err).Str("session", w.sessionID).Msg("Failed to close subscription")
		}
	}()
	defer b.forget(w)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			if event.Deleted {
				b.edit(s, w, &discordgo.MessageEmbed{
					Title:       "👏 Clapometer · " + w.sessionID,
					Description: "This quick session has ended and its results were discarded.",
					Color:       colorEnded,
				}, []discordgo.MessageComponent{})
				return
			}
			if event.Session == nil {
				continue
			}

			b.edit(s, w, renderStatusEmbed(event.Session), renderStatusComponents(event.Session))
			if event.Session.SessionEnded {
				return
			}
		}
	}
}

func (b *statusBoard) edit(s *discordgo.Session, w *statusWatcher, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    w.channelID,
		ID:         w.messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Error().Err(err).
			Str("session", w.sessionID).
			Str("channel", w.channelID).
			Msg("Failed to update status message")
	}
}

// forget drops the watcher unless it has already been replaced
func (b *statusBoard) forget(w *statusWatcher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watchers[w.sessionID] == w {
		delete(b.watchers, w.sessionID)
	}
}

// Stop ends every watcher and waits for them to exit
func (b *statusBoard) Stop() {
	b.mu.Lock()
	watchers := make([]*statusWatcher, 0, len(b.watchers))
	for _, w := range b.watchers {
		watchers = append(watchers, w)
	}
	b.mu.Unlock()

	for _, w := range watchers {
		w.cancel()
		<-w.done
	}
}
