package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/KirkDiggler/clapometer/internal/votes"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusFor maps a service error to an HTTP status. Errors caused by the session's current
// state are conflicts; other rule violations are bad requests.
func statusFor(err error) int {
	var (
		sessionErr session.SessionError
		queueErr   queue.QueueError
		accessErr  access.AccessError
		voteErr    votes.VoteError
	)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrMissingActor):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNotAdmin), errors.Is(err, session.ErrResultsHidden):
		return http.StatusForbidden
	case isConflict(err):
		return http.StatusConflict
	case errors.As(err, &sessionErr), errors.As(err, &queueErr),
		errors.As(err, &accessErr), errors.As(err, &voteErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var conflicts = []error{
	queue.ErrSessionEnded,
	queue.ErrCannotAdvance,
	queue.ErrQueueExhausted,
	queue.ErrNotPresenting,
	queue.ErrNotGeneralMode,
	access.ErrRoundClosed,
	access.ErrNoPresenter,
	session.ErrAlreadyVoted,
	session.ErrRoundChanged,
	session.ErrActionInProgress,
	session.ErrNicknameTaken,
}

func isConflict(err error) bool {
	for _, target := range conflicts {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requestLogger logs each request with zerolog, skipping the event streams
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// streams stay open for minutes and would only add noise
		if c.Writer.Header().Get("Content-Type") == "text/event-stream" {
			return
		}
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}
