package models

import (
	"time"
)

// QueueEntry is one scheduled presenter
type QueueEntry struct {
	// Name is the display name shown while presenting
	Name string `json:"name" bson:"name"`

	// AccountID optionally links the presenter to an account identity
	AccountID string `json:"accountId,omitempty" bson:"accountId,omitempty"`

	// ParticipantID references the participant who presents, if any
	ParticipantID string `json:"participantId,omitempty" bson:"participantId,omitempty"`
}

// PresenterScore is the immutable record of a closed presenter round
type PresenterScore struct {
	Name       string    `json:"name" bson:"name"`
	AccountID  string    `json:"accountId,omitempty" bson:"accountId,omitempty"`
	Likes      int       `json:"likes" bson:"likes"`
	Dislikes   int       `json:"dislikes" bson:"dislikes"`
	NetScore   int       `json:"netScore" bson:"netScore"`
	RecordedAt time.Time `json:"recordedAt" bson:"recordedAt"`
}

// NewPresenterScore builds a score record from the counters observed for an entry
func NewPresenterScore(entry *QueueEntry, likes, dislikes int, at time.Time) *PresenterScore {
	return &PresenterScore{
		Name:       entry.Name,
		AccountID:  entry.AccountID,
		Likes:      likes,
		Dislikes:   dislikes,
		NetScore:   likes - dislikes,
		RecordedAt: at,
	}
}
