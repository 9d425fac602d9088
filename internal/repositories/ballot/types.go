package ballot

// RecordVoteInput identifies one ballot
type RecordVoteInput struct {
	SessionID     string
	RoundID       string
	ParticipantID string
}

// RecordVoteOutput contains the result of recording a ballot
type RecordVoteOutput struct {
	// Recorded is false when the participant had already voted in the round
	Recorded bool
}

// ReleaseVoteInput identifies the ballot to release
type ReleaseVoteInput struct {
	SessionID     string
	RoundID       string
	ParticipantID string
}

// ClearSessionInput contains parameters for removing all ballots of a session
type ClearSessionInput struct {
	SessionID string
}
