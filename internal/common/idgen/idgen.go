package idgen

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_idgen.go github.com/KirkDiggler/clapometer/internal/common/idgen Generator

// Generator issues identities and session codes
type Generator interface {
	// NewUUID returns a random identity, used for anonymous participants
	NewUUID() string

	// NewSessionCode returns a short human-shareable session code
	NewSessionCode() string
}

// SessionCodeLength is the number of characters in a session code
const SessionCodeLength = 6

// codeAlphabet leaves out characters that are easy to misread aloud (0/O, 1/I)
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultGenerator implements Generator using random v4 UUIDs
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewUUID returns a new UUID string
func (g *DefaultGenerator) NewUUID() string {
	return uuid.New().String()
}

// NewSessionCode derives a code from the random bytes of a fresh UUID
func (g *DefaultGenerator) NewSessionCode() string {
	id := uuid.New()
	code := make([]byte, SessionCodeLength)
	for i := range code {
		code[i] = codeAlphabet[int(id[i])%len(codeAlphabet)]
	}
	return string(code)
}
