package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/bwmarrin/discordgo"
)

const (
	colorActive = 0x00ff00
	colorPaused = 0xffa500
	colorEnded  = 0x808080
	colorError  = 0xff0000

	// maxQueueLines keeps the queue field under Discord's field length limit
	maxQueueLines = 15
)

// Button actions carried in custom IDs as "clap:<action>:<session>"
const (
	ButtonLike    = "like"
	ButtonDislike = "dislike"
	ButtonNext    = "next"
	ButtonJoin    = "join"

	buttonPrefix = "clap"
)

// buttonID builds the custom ID for a session button
func buttonID(action, sessionID string) string {
	return buttonPrefix + ":" + action + ":" + sessionID
}

// parseButtonID splits a custom ID produced by buttonID
func parseButtonID(customID string) (action, sessionID string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] != buttonPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// renderStatusEmbed renders the live status message for a session
func renderStatusEmbed(session *models.Session) *discordgo.MessageEmbed {
	state := queue.StateOf(session)

	var description string
	switch state {
	case queue.StateEnded:
		description = "This session has ended. Thanks for clapping!"
	case queue.StateEmptyQueue:
		description = "General feedback: react to the session as a whole."
	case queue.StateAwaitingStart:
		description = fmt.Sprintf("Up first: **%s**. Waiting for the admin to start.", session.PresenterQueue[0].Name)
	case queue.StatePresenting:
		description = fmt.Sprintf("Now presenting: **%s**", queue.CurrentPresenter(session).Name)
	case queue.StateQueueExhausted:
		description = "Everyone has presented!"
	}

	color := colorActive
	voting := "🟢 Open"
	switch {
	case session.SessionEnded:
		color = colorEnded
		voting = "⚫ Closed"
	case !session.IsRoundActive:
		color = colorPaused
		voting = "⏸️ Paused"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "👍 Likes", Value: fmt.Sprintf("%d", session.LikeClicks), Inline: true},
		{Name: "👎 Dislikes", Value: fmt.Sprintf("%d", session.DislikeClicks), Inline: true},
		{Name: "Voting", Value: voting, Inline: true},
		{Name: "Mode", Value: renderMode(session), Inline: true},
		{Name: "Participants", Value: fmt.Sprintf("%d", len(session.Participants)), Inline: true},
	}

	if len(session.PresenterQueue) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Queue",
			Value: renderQueue(session),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "👏 Clapometer · " + session.ID,
		Description: description,
		Color:       color,
		Fields:      fields,
		Timestamp:   session.CreatedAt.Format(time.RFC3339),
	}
	if !session.SessionEnded {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Join with /clap join code:%s", session.ID),
		}
	}
	return embed
}

func renderMode(session *models.Session) string {
	mode := "One vote per round"
	if session.VotingMode == models.VotingModeInfinite {
		mode = "Unlimited votes"
	}
	if session.SessionType == models.SessionTypeQuick && !session.IsPermanentlySaved {
		return mode + " · quick"
	}
	return mode
}

// renderQueue lists presenters with markers for finished and current entries
func renderQueue(session *models.Session) string {
	var b strings.Builder
	for i, entry := range session.PresenterQueue {
		if i == maxQueueLines {
			fmt.Fprintf(&b, "…and %d more", len(session.PresenterQueue)-maxQueueLines)
			break
		}

		marker := "▫️"
		switch {
		case i < session.CurrentPresenterIndex:
			marker = "✅"
		case i == session.CurrentPresenterIndex:
			marker = "▶️"
		}
		fmt.Fprintf(&b, "%s `%d` %s\n", marker, i+1, entry.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStatusComponents renders the buttons under the status message
func renderStatusComponents(session *models.Session) []discordgo.MessageComponent {
	if session.SessionEnded {
		return []discordgo.MessageComponent{}
	}

	votingClosed := access.CanVote(session) != nil
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Like",
			Style:    discordgo.SuccessButton,
			CustomID: buttonID(ButtonLike, session.ID),
			Disabled: votingClosed,
			Emoji:    &discordgo.ComponentEmoji{Name: "👍"},
		},
		discordgo.Button{
			Label:    "Dislike",
			Style:    discordgo.DangerButton,
			CustomID: buttonID(ButtonDislike, session.ID),
			Disabled: votingClosed,
			Emoji:    &discordgo.ComponentEmoji{Name: "👎"},
		},
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.PrimaryButton,
			CustomID: buttonID(ButtonJoin, session.ID),
			Emoji:    &discordgo.ComponentEmoji{Name: "🙋"},
		},
	}

	state := queue.StateOf(session)
	if state == queue.StateAwaitingStart || state == queue.StatePresenting {
		buttons = append(buttons, discordgo.Button{
			Label:    "Next",
			Style:    discordgo.SecondaryButton,
			CustomID: buttonID(ButtonNext, session.ID),
			Emoji:    &discordgo.ComponentEmoji{Name: "⏭️"},
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// renderLeaderboardEmbed renders ranked presenter scores
func renderLeaderboardEmbed(session *models.Session, entries []*models.LeaderboardEntry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "🏆 Leaderboard · " + session.ID,
			Description: "No presenter rounds have finished yet.",
			Color:       colorActive,
		}
	}

	var b strings.Builder
	for _, entry := range entries {
		medal := ""
		switch entry.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		fmt.Fprintf(&b, "%s**%d.** %s · 👍 %d 👎 %d (net %+d)\n",
			medal, entry.Rank, entry.Score.Name, entry.Score.Likes, entry.Score.Dislikes, entry.Score.NetScore)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard · " + session.ID,
		Description: strings.TrimRight(b.String(), "\n"),
		Color:       colorActive,
	}
}

// renderHistoryEmbed lists an admin's sessions
func renderHistoryEmbed(sessions []*models.Session) *discordgo.MessageEmbed {
	if len(sessions) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📚 Your Sessions",
			Description: "You haven't run any sessions yet. Start one with `/clap create`.",
			Color:       colorActive,
		}
	}

	var b strings.Builder
	for _, session := range sessions {
		status := "live"
		if session.SessionEnded {
			status = "ended"
		}
		fmt.Fprintf(&b, "`%s` · %s · %s · %d presenter(s)\n",
			session.ID, session.CreatedAt.Format("2006-01-02 15:04"), status, len(session.PresenterScores))
	}

	return &discordgo.MessageEmbed{
		Title:       "📚 Your Sessions",
		Description: strings.TrimRight(b.String(), "\n"),
		Color:       colorActive,
	}
}

// renderAnnouncementEmbed wraps a messaging service title and message
func renderAnnouncementEmbed(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorActive,
	}
}
