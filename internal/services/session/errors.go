package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     SessionError = "session not found"
	ErrNotAdmin            SessionError = "only the session admin can do that"
	ErrEmptyNickname       SessionError = "nickname cannot be empty"
	ErrNicknameTooLong     SessionError = "nickname is too long"
	ErrNicknameTaken       SessionError = "nickname is already taken"
	ErrNicknameLocked      SessionError = "nickname cannot be changed once set"
	ErrNotJoined           SessionError = "join the session before voting"
	ErrAlreadyVoted        SessionError = "you already voted this round"
	ErrRoundChanged        SessionError = "the voting round changed, try again"
	ErrActionInProgress    SessionError = "that action is already in progress"
	ErrCannotKickSelf      SessionError = "the admin cannot kick themself"
	ErrParticipantNotFound SessionError = "participant not found"
	ErrResultsHidden       SessionError = "results are not visible yet"
	ErrInvalidVotingMode   SessionError = "invalid voting mode"
	ErrInvalidSessionType  SessionError = "invalid session type"
	ErrMissingActor        SessionError = "actor ID is required"
	ErrMissingSessionID    SessionError = "session ID is required"
	ErrCodeExhausted       SessionError = "could not allocate a free session code"
	ErrNilConfig           SessionError = "config cannot be nil"
	ErrNilSessionRepo      SessionError = "session repository cannot be nil"
	ErrNilBallotRepo       SessionError = "ballot repository cannot be nil"
	ErrNilClock            SessionError = "clock cannot be nil"
	ErrNilIDGenerator      SessionError = "ID generator cannot be nil"
)
