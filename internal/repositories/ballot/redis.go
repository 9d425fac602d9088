package ballot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ballotKeyPrefix = "ballot:"

	// DefaultBallotTTL bounds how long ballots outlive their round
	DefaultBallotTTL = 24 * time.Hour

	scanBatchSize = 100
)

// Config holds configuration for the Redis ballot repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// BallotTTL expires ballot sets
	BallotTTL time.Duration
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed ballot repository
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

	ttl := cfg.BallotTTL
	if ttl <= 0 {
		ttl = DefaultBallotTTL
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

func ballotKey(sessionID, roundID string) string {
	return fmt.Sprintf("%s%s:%s", ballotKeyPrefix, sessionID, roundID)
}

// RecordVote adds the participant to the round's ballot set
func (r *redisRepository) RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error) {
	if input == nil || input.SessionID == "" || input.ParticipantID == "" {
		return nil, errors.New("session ID and participant ID cannot be empty")
	}

	key := ballotKey(input.SessionID, input.RoundID)

	pipe := r.client.TxPipeline()
	added := pipe.SAdd(ctx, key, input.ParticipantID)
	pipe.Expire(ctx, key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	return &RecordVoteOutput{
		Recorded: added.Val() == 1,
	}, nil
}

// ReleaseVote removes the participant from the round's ballot set
func (r *redisRepository) ReleaseVote(ctx context.Context, input *ReleaseVoteInput) error {
	if input == nil || input.SessionID == "" || input.ParticipantID == "" {
		return errors.New("session ID and participant ID cannot be empty")
	}

	if err := r.client.SRem(ctx, ballotKey(input.SessionID, input.RoundID), input.ParticipantID).Err(); err != nil {
		return fmt.Errorf("failed to release vote: %w", err)
	}

	return nil
}

// ClearSession deletes every ballot set of the session
func (r *redisRepository) ClearSession(ctx context.Context, input *ClearSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	pattern := fmt.Sprintf("%s%s:*", ballotKeyPrefix, input.SessionID)
	iter := r.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan ballots: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear ballots: %w", err)
	}

	return nil
}
