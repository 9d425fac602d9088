package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix       = "session:"
	channelKeyPrefix       = "channel:"
	adminSessionsKeyPrefix = "admin_sessions:"
	updatesChannelPrefix   = "session_updates:"

	// DefaultQuickSessionTTL is how long an unsaved quick session lives
	DefaultQuickSessionTTL = 24 * time.Hour

	defaultListLimit  = 50
	maxUpdateAttempts = 20
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose code is taken
	ErrSessionExists = errors.New("session already exists")

	// ErrUpdateConflict is returned when an update keeps losing the optimistic lock
	ErrUpdateConflict = errors.New("session update conflicted too many times")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// QuickSessionTTL expires quick sessions that are not permanently saved
	QuickSessionTTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client   *redis.Client
	quickTTL time.Duration
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.QuickSessionTTL
	if ttl <= 0 {
		ttl = DefaultQuickSessionTTL
	}

	return &redisRepository{
		client:   cfg.RedisClient,
		quickTTL: ttl,
	}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func updatesChannel(sessionID string) string {
	return updatesChannelPrefix + sessionID
}

func adminSessionsKey(adminID string) string {
	return adminSessionsKeyPrefix + adminID
}

// ttlFor returns the expiration for a session document; zero means keep forever
func (r *redisRepository) ttlFor(session *models.Session) time.Duration {
	if session.DeleteOnEnd() {
		return r.quickTTL
	}
	return 0
}

// CreateSession stores a new session document
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	created, err := r.client.SetNX(ctx, sessionKey(session.ID), sessionJSON, r.ttlFor(session)).Result()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !created {
		return ErrSessionExists
	}

	if session.AdminID != "" {
		err = r.client.ZAdd(ctx, adminSessionsKey(session.AdminID), redis.Z{
			Score:  float64(session.CreatedAt.UnixMilli()),
			Member: session.ID,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to index session: %w", err)
		}
	}

	return nil
}

// GetSession retrieves a session by code
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.SessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// UpdateSession reads, mutates and writes the session inside a WATCH transaction.
// Concurrent writers cause a retry, so independent updates are never lost.
// Errors returned by Mutate abort the update and are passed through unchanged.
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}
	if input.Mutate == nil {
		return nil, errors.New("mutate function cannot be nil")
	}

	key := sessionKey(input.SessionID)
	var updated *models.Session

	txf := func(tx *redis.Tx) error {
		sessionJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var session models.Session
		if err := json.Unmarshal(sessionJSON, &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if err := input.Mutate(&session); err != nil {
			return err
		}

		sessionJSON, err = json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		eventJSON, err := json.Marshal(&Event{Session: &session})
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, r.ttlFor(&session))
			pipe.Publish(ctx, updatesChannel(session.ID), eventJSON)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &session
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &UpdateSessionOutput{Session: updated}, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrUpdateConflict
}

// DeleteSession removes a session and notifies subscribers
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	session, err := r.GetSession(ctx, &GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		return err
	}

	eventJSON, err := json.Marshal(&Event{Deleted: true})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(input.SessionID))
	if session.AdminID != "" {
		pipe.ZRem(ctx, adminSessionsKey(session.AdminID), input.SessionID)
	}
	pipe.Publish(ctx, updatesChannel(input.SessionID), eventJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Subscribe streams change events for a session over Redis Pub/Sub.
// The subscription ends when Close is called or ctx is cancelled.
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, updatesChannel(input.SessionID))

	// Wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to session: %w", err)
	}

	// done is closed by Close or context cancellation and stops both goroutines
	done := make(chan struct{})
	var once sync.Once
	var closeErr error
	closeFn := func() error {
		once.Do(func() {
			close(done)
			closeErr = pubsub.Close()
		})
		return closeErr
	}

	messages := pubsub.Channel()
	events := make(chan *Event, 16)

	go func() {
		select {
		case <-ctx.Done():
			closeFn()
		case <-done:
		}
	}()

	go func() {
		defer close(events)
		for {
			var msg *redis.Message
			var ok bool
			select {
			case <-done:
				return
			case msg, ok = <-messages:
				if !ok {
					return
				}
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("session", input.SessionID).Msg("dropping malformed session event")
				continue
			}
			select {
			case events <- &event:
			case <-done:
				return
			}
		}
	}()

	return &SubscribeOutput{
		Events: events,
		Close:  closeFn,
	}, nil
}

// ListSessionsByAdmin returns the admin's live sessions, newest first.
// Index entries whose session has expired are pruned.
func (r *redisRepository) ListSessionsByAdmin(ctx context.Context, input *ListSessionsByAdminInput) (*ListSessionsByAdminOutput, error) {
	if input == nil || input.AdminID == "" {
		return nil, errors.New("input and admin ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	indexKey := adminSessionsKey(input.AdminID)
	sessionIDs, err := r.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin sessions: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &ListSessionsByAdminOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		commands[i] = pipe.Get(ctx, sessionKey(sessionID))
	}

	// redis.Nil from expired sessions is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get admin sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	var expired []interface{}
	for i, cmd := range commands {
		sessionJSON, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				expired = append(expired, sessionIDs[i])
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var session models.Session
		if err := json.Unmarshal(sessionJSON, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}
		sessions = append(sessions, &session)
	}

	if len(expired) > 0 {
		if err := r.client.ZRem(ctx, indexKey, expired...).Err(); err != nil {
			log.Warn().Err(err).Str("admin", input.AdminID).Msg("failed to prune expired sessions")
		}
	}

	return &ListSessionsByAdminOutput{
		Sessions: sessions,
	}, nil
}

// BindChannel maps a chat channel to a session, replacing any previous binding
func (r *redisRepository) BindChannel(ctx context.Context, input *BindChannelInput) error {
	if input == nil || input.ChannelID == "" || input.SessionID == "" {
		return errors.New("channel ID and session ID cannot be empty")
	}

	if err := r.client.Set(ctx, channelKeyPrefix+input.ChannelID, input.SessionID, 0).Err(); err != nil {
		return fmt.Errorf("failed to bind channel: %w", err)
	}

	return nil
}

// GetSessionByChannel retrieves the session bound to a channel
func (r *redisRepository) GetSessionByChannel(ctx context.Context, input *GetSessionByChannelInput) (*models.Session, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, channelKeyPrefix+input.ChannelID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for channel: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}
