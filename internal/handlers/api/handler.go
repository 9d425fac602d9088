package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ActorHeader carries the caller identity for admin-only reads and hidden results
const ActorHeader = "X-Actor-ID"

// Config holds the dependencies of the HTTP handler
type Config struct {
	SessionService session.Service
}

// Handler serves the read-only dashboard API
type Handler struct {
	sessionService session.Service
}

// New creates a new dashboard handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	return &Handler{
		sessionService: cfg.SessionService,
	}, nil
}

// NewRouter builds a gin engine with request logging and the dashboard routes
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	h.Register(r)
	return r
}

// Register mounts the dashboard routes
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/sessions/:id", h.getSession)
	r.GET("/sessions/:id/leaderboard", h.getLeaderboard)
	r.GET("/sessions/:id/events", h.streamSession)
	r.GET("/admins/me/sessions", h.listSessions)
}

// sessionResponse is a session plus the derived queue state
type sessionResponse struct {
	*models.Session
	State    queue.State `json:"state"`
	Archived bool        `json:"archived"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
}

func (h *Handler) getSession(c *gin.Context) {
	output, err := h.sessionService.GetSession(c.Request.Context(), &session.GetSessionInput{
		SessionID: c.Param("id"),
		ActorID:   c.GetHeader(ActorHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Session:  output.Session,
		State:    queue.StateOf(output.Session),
		Archived: output.Archived,
	})
}

func (h *Handler) getLeaderboard(c *gin.Context) {
	output, err := h.sessionService.GetLeaderboard(c.Request.Context(), &session.GetLeaderboardInput{
		SessionID: c.Param("id"),
		ActorID:   c.GetHeader(ActorHeader),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": output.Session.ID,
		"entries":   output.Entries,
	})
}

// streamSession sends the current state, then every change, as server-sent events
func (h *Handler) streamSession(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")
	actorID := c.GetHeader(ActorHeader)

	current, err := h.sessionService.GetSession(ctx, &session.GetSessionInput{
		SessionID: sessionID,
		ActorID:   actorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.sessionService.Subscribe(ctx, &session.SubscribeInput{
		SessionID: sessionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("Failed to close subscription")
		}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("session", sessionResponse{
		Session:  current.Session,
		State:    queue.StateOf(current.Session),
		Archived: current.Archived,
	})
	if current.Session.SessionEnded {
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-sub.Events:
			if !ok {
				return false
			}
			if event.Deleted {
				c.SSEvent("deleted", gin.H{"id": sessionID})
				return false
			}
			if event.Session == nil {
				return true
			}
			// published events carry the full session
			c.SSEvent("session", sessionResponse{
				Session: session.ViewFor(actorID, event.Session),
				State:   queue.StateOf(event.Session),
			})
			return !event.Session.SessionEnded
		}
	})
}

func (h *Handler) listSessions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_limit"})
			return
		}
		limit = parsed
	}

	output, err := h.sessionService.ListSessions(c.Request.Context(), &session.ListSessionsInput{
		AdminID: c.GetHeader(ActorHeader),
		Limit:   limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": output.Sessions})
}
