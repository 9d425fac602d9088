package discord

import (
	"testing"
	"time"

	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/services/messaging/mocks"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	sessionMocks "github.com/KirkDiggler/clapometer/internal/services/session/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSession() *models.Session {
	return &models.Session{
		ID:                    "ABC123",
		AdminID:               "admin",
		IsRoundActive:         true,
		CreatedAt:             time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Participants:          map[string]*models.Participant{},
		CurrentPresenterIndex: models.NoPresenter,
		VotingMode:            models.VotingModeSingle,
		SessionType:           models.SessionTypeQuick,
	}
}

func withPresenters(s *models.Session, names ...string) *models.Session {
	for _, name := range names {
		s.PresenterQueue = append(s.PresenterQueue, &models.QueueEntry{Name: name})
	}
	return s
}

// statusButtons returns the custom IDs and disabled flags of the status buttons
func statusButtons(t *testing.T, components []discordgo.MessageComponent) map[string]bool {
	t.Helper()
	buttons := make(map[string]bool)
	for _, component := range components {
		row, ok := component.(discordgo.ActionsRow)
		require.True(t, ok)
		for _, c := range row.Components {
			button, ok := c.(discordgo.Button)
			require.True(t, ok)
			action, _, ok := parseButtonID(button.CustomID)
			require.True(t, ok)
			buttons[action] = button.Disabled
		}
	}
	return buttons
}

func TestButtonIDRoundTrip(t *testing.T) {
	action, sessionID, ok := parseButtonID(buttonID(ButtonDislike, "XYZ789"))
	require.True(t, ok)
	assert.Equal(t, ButtonDislike, action)
	assert.Equal(t, "XYZ789", sessionID)
}

func TestParseButtonIDRejectsForeignIDs(t *testing.T) {
	for _, customID := range []string{"", "join_game", "clap:like", "clap::ABC", "other:like:ABC", "clap:like:"} {
		_, _, ok := parseButtonID(customID)
		assert.False(t, ok, customID)
	}
}

func TestRenderStatusEmbedGeneralFeedback(t *testing.T) {
	s := newTestSession()
	s.LikeClicks = 4
	s.DislikeClicks = 1

	embed := renderStatusEmbed(s)

	assert.Contains(t, embed.Title, "ABC123")
	assert.Contains(t, embed.Description, "General feedback")
	assert.Equal(t, colorActive, embed.Color)
	require.NotNil(t, embed.Footer)
	assert.Contains(t, embed.Footer.Text, "ABC123")
	assert.Equal(t, "4", embed.Fields[0].Value)
	assert.Equal(t, "1", embed.Fields[1].Value)
	// no queue field without presenters
	assert.Len(t, embed.Fields, 5)
}

func TestRenderStatusEmbedPresenting(t *testing.T) {
	s := withPresenters(newTestSession(), "Alice", "Bob", "Cara")
	s.CurrentPresenterIndex = 1

	embed := renderStatusEmbed(s)

	assert.Contains(t, embed.Description, "Bob")
	queueField := embed.Fields[len(embed.Fields)-1]
	assert.Equal(t, "Queue", queueField.Name)
	assert.Equal(t, "✅ `1` Alice\n▶️ `2` Bob\n▫️ `3` Cara", queueField.Value)
}

func TestRenderStatusEmbedPausedAndEnded(t *testing.T) {
	s := newTestSession()
	s.IsRoundActive = false
	assert.Equal(t, colorPaused, renderStatusEmbed(s).Color)

	s.SessionEnded = true
	embed := renderStatusEmbed(s)
	assert.Equal(t, colorEnded, embed.Color)
	assert.Nil(t, embed.Footer)
	assert.Contains(t, embed.Description, "ended")
}

func TestRenderQueueTruncates(t *testing.T) {
	s := newTestSession()
	for i := 0; i < maxQueueLines+3; i++ {
		withPresenters(s, "P")
	}

	assert.Contains(t, renderQueue(s), "…and 3 more")
}

func TestRenderStatusComponents(t *testing.T) {
	t.Run("general feedback has no next button", func(t *testing.T) {
		buttons := statusButtons(t, renderStatusComponents(newTestSession()))
		assert.Equal(t, map[string]bool{ButtonLike: false, ButtonDislike: false, ButtonJoin: false}, buttons)
	})

	t.Run("awaiting start disables voting", func(t *testing.T) {
		s := withPresenters(newTestSession(), "Alice")
		buttons := statusButtons(t, renderStatusComponents(s))
		assert.True(t, buttons[ButtonLike])
		assert.True(t, buttons[ButtonDislike])
		assert.Contains(t, buttons, ButtonNext)
	})

	t.Run("paused disables voting", func(t *testing.T) {
		s := withPresenters(newTestSession(), "Alice")
		s.CurrentPresenterIndex = 0
		s.IsRoundActive = false
		buttons := statusButtons(t, renderStatusComponents(s))
		assert.True(t, buttons[ButtonLike])
		assert.Contains(t, buttons, ButtonNext)
	})

	t.Run("exhausted queue drops next", func(t *testing.T) {
		s := withPresenters(newTestSession(), "Alice")
		s.CurrentPresenterIndex = 1
		buttons := statusButtons(t, renderStatusComponents(s))
		assert.NotContains(t, buttons, ButtonNext)
	})

	t.Run("ended session has no buttons", func(t *testing.T) {
		s := newTestSession()
		s.SessionEnded = true
		assert.Empty(t, renderStatusComponents(s))
	})
}

func TestRenderLeaderboardEmbed(t *testing.T) {
	s := newTestSession()
	assert.Contains(t, renderLeaderboardEmbed(s, nil).Description, "No presenter rounds")

	entries := []*models.LeaderboardEntry{
		{Rank: 1, Score: &models.PresenterScore{Name: "Alice", Likes: 5, Dislikes: 1, NetScore: 4}},
		{Rank: 2, Score: &models.PresenterScore{Name: "Bob", Likes: 2, Dislikes: 3, NetScore: -1}},
	}
	embed := renderLeaderboardEmbed(s, entries)
	assert.Equal(t, "🥇 **1.** Alice · 👍 5 👎 1 (net +4)\n🥈 **2.** Bob · 👍 2 👎 3 (net -1)", embed.Description)
}

func TestRenderHistoryEmbed(t *testing.T) {
	assert.Contains(t, renderHistoryEmbed(nil).Description, "/clap create")

	ended := newTestSession()
	ended.SessionEnded = true
	ended.PresenterScores = []*models.PresenterScore{{Name: "Alice"}}
	live := newTestSession()
	live.ID = "LIVE01"

	embed := renderHistoryEmbed([]*models.Session{ended, live})
	assert.Equal(t, "`ABC123` · 2024-03-01 09:00 · ended · 1 presenter(s)\n`LIVE01` · 2024-03-01 09:00 · live · 0 presenter(s)", embed.Description)
}

func TestClapCommandDefinition(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmd := NewClapCommand(sessionMocks.NewMockService(ctrl), mocks.NewMockService(ctrl))

	def := cmd.GetCommand()
	assert.Equal(t, "clap", def.Name)

	names := make([]string, 0, len(def.Options))
	for _, opt := range def.Options {
		assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		names = append(names, opt.Name)
	}
	assert.ElementsMatch(t, []string{
		SubcommandCreate, SubcommandJoin, SubcommandAdd, SubcommandNext, SubcommandRemove,
		SubcommandClear, SubcommandReset, SubcommandPause, SubcommandResume, SubcommandEnd,
		SubcommandKick, SubcommandSettings, SubcommandLeaderboard, SubcommandStatus, SubcommandHistory,
	}, names)

	assert.True(t, cmd.HandlesComponent(buttonID(ButtonLike, "ABC123")))
	assert.False(t, cmd.HandlesComponent("roll_dice"))
}

func TestIsUserError(t *testing.T) {
	assert.True(t, isUserError(session.ErrNotAdmin))
	assert.False(t, isUserError(assert.AnError))
}
