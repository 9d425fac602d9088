package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/clapometer/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// CollectionName is the collection archived sessions live in
	CollectionName = "sessions"

	defaultListLimit int64 = 50
)

// ErrSessionNotFound is returned when no archived session matches
var ErrSessionNotFound = errors.New("archived session not found")

// Config holds configuration for the MongoDB archive
type Config struct {
	// Collection holding archived sessions
	Collection *mongo.Collection
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongo creates a new MongoDB-backed session archive
func NewMongo(cfg *Config) (*mongoRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Collection == nil {
		return nil, errors.New("collection cannot be nil")
	}

	return &mongoRepository{
		collection: cfg.Collection,
	}, nil
}

// EnsureIndexes creates the index backing admin listings
func (r *mongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "adminUid", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create archive index: %w", err)
	}
	return nil
}

// SaveSession upserts the session document keyed by its code
func (r *mongoRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": input.Session.ID},
		input.Session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}

	return nil
}

// GetSession finds an archived session by code
func (r *mongoRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	var session models.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": input.SessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get archived session: %w", err)
	}

	return &session, nil
}

// ListSessions returns an admin's archived sessions ordered by creation time, newest first
func (r *mongoRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil || input.AdminID == "" {
		return nil, errors.New("input and admin ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	filter := bson.M{"adminUid": input.AdminID}
	if input.OnlyEnded {
		filter["sessionEnded"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []*models.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode archived sessions: %w", err)
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}
