package models

import (
	"time"
)

// Participant is a member of a session
type Participant struct {
	// ID is the identity issued by the identity provider
	ID string `json:"id" bson:"id"`

	// Nickname is the display name, unique within the session and immutable once set
	Nickname string `json:"nickname" bson:"nickname"`

	// JoinedAt is when the participant set their nickname
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`

	// IsAnonymous indicates the identity is not linked to an account
	IsAnonymous bool `json:"isAnonymous" bson:"isAnonymous"`
}
