package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/clapometer/internal/access"
	"github.com/KirkDiggler/clapometer/internal/common/clock"
	"github.com/KirkDiggler/clapometer/internal/common/idgen"
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/repositories/archive"
	"github.com/KirkDiggler/clapometer/internal/repositories/ballot"
	sessionRepo "github.com/KirkDiggler/clapometer/internal/repositories/session"
	"github.com/KirkDiggler/clapometer/internal/votes"
	"github.com/rs/zerolog/log"
)

// errNoChange aborts an update that would not modify the session
var errNoChange = errors.New("no change")

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	ballotRepo   ballot.Repository
	archiveRepo  archive.Repository
	clock        clock.Clock
	idGenerator  idgen.Generator
	codeAttempts int
	inFlight     *inFlight
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.BallotRepo == nil {
		return nil, ErrNilBallotRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.IDGenerator == nil {
		return nil, ErrNilIDGenerator
	}

	codeAttempts := cfg.CodeAttempts
	if codeAttempts <= 0 {
		codeAttempts = DefaultCodeAttempts
	}

	return &service{
		sessionRepo:  cfg.SessionRepo,
		ballotRepo:   cfg.BallotRepo,
		archiveRepo:  cfg.ArchiveRepo,
		clock:        cfg.Clock,
		idGenerator:  cfg.IDGenerator,
		codeAttempts: codeAttempts,
		inFlight:     newInFlight(),
	}, nil
}

// CreateSession creates a session with a fresh code
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.AdminID == "" {
		return nil, ErrMissingActor
	}

	sessionType := input.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeQuick
	}
	if !sessionType.IsValid() {
		return nil, ErrInvalidSessionType
	}

	votingMode := input.VotingMode
	if votingMode == "" {
		votingMode = models.VotingModeSingle
	}
	if !votingMode.IsValid() {
		return nil, ErrInvalidVotingMode
	}

	now := s.clock.Now()
	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		session := &models.Session{
			ID:                    s.idGenerator.NewSessionCode(),
			AdminID:               input.AdminID,
			IsRoundActive:         true,
			CreatedAt:             now,
			Participants:          map[string]*models.Participant{},
			PresenterQueue:        []*models.QueueEntry{},
			CurrentPresenterIndex: models.NoPresenter,
			PresenterScores:       []*models.PresenterScore{},
			VotingMode:            votingMode,
			SessionType:           sessionType,
		}

		err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
			Session: session,
		})
		if errors.Is(err, sessionRepo.ErrSessionExists) {
			log.Debug().Str("session", session.ID).Msg("Session code collision, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		if input.ChannelID != "" {
			err = s.sessionRepo.BindChannel(ctx, &sessionRepo.BindChannelInput{
				ChannelID: input.ChannelID,
				SessionID: session.ID,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to bind channel: %w", err)
			}
		}

		log.Info().
			Str("session", session.ID).
			Str("actor", input.AdminID).
			Str("type", string(sessionType)).
			Str("mode", string(votingMode)).
			Msg("Session created")

		return &CreateSessionOutput{
			Session: session,
		}, nil
	}

	return nil, ErrCodeExhausted
}

// GetSession returns a live session, falling back to the archive.
// Presenter scores are withheld from actors who may not see results yet.
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, archived, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session:  ViewFor(input.ActorID, session),
		Archived: archived,
	}, nil
}

// ViewFor returns the session as the actor may see it. When results are hidden from the
// actor the copy carries no presenter scores; the original is never modified.
func ViewFor(actorID string, session *models.Session) *models.Session {
	if session == nil || access.CanSeeResults(actorID, session) {
		return session
	}
	view := *session
	view.PresenterScores = []*models.PresenterScore{}
	return &view
}

// JoinSession adds the participant under a unique nickname
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		return nil, ErrEmptyNickname
	}
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return nil, ErrNicknameTooLong
	}

	participantID := input.ParticipantID
	anonymous := false
	if participantID == "" {
		participantID = s.idGenerator.NewUUID()
		anonymous = true
	}

	release, err := s.inFlight.acquire(input.SessionID, participantID, "join")
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.clock.Now()
	var participant *models.Participant
	_, err = s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: input.SessionID,
		Mutate: func(session *models.Session) error {
			if session.SessionEnded {
				return queue.ErrSessionEnded
			}

			joinedAt := now
			if existing, ok := session.Participant(participantID); ok {
				if existing.Nickname == nickname {
					participant = existing
					return errNoChange
				}
				if existing.Nickname != "" {
					return ErrNicknameLocked
				}
				joinedAt = existing.JoinedAt
			}

			for id, other := range session.Participants {
				if id != participantID && strings.EqualFold(other.Nickname, nickname) {
					return ErrNicknameTaken
				}
			}

			if session.Participants == nil {
				session.Participants = map[string]*models.Participant{}
			}
			participant = &models.Participant{
				ID:          participantID,
				Nickname:    nickname,
				JoinedAt:    joinedAt,
				IsAnonymous: anonymous,
			}
			session.Participants[participantID] = participant
			return nil
		},
	})
	if errors.Is(err, errNoChange) {
		return &JoinSessionOutput{
			Participant:   participant,
			AlreadyJoined: true,
		}, nil
	}
	if err != nil {
		return nil, s.translate(err)
	}

	log.Info().
		Str("session", input.SessionID).
		Str("actor", participantID).
		Str("nickname", nickname).
		Msg("Participant joined")

	return &JoinSessionOutput{
		Participant: participant,
	}, nil
}

// AddPresenter appends a presenter to the end of the queue
func (s *service) AddPresenter(ctx context.Context, input *AddPresenterInput) (*AddPresenterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var position int
	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "add_presenter", func(session *models.Session) error {
		entry := &models.QueueEntry{
			Name:          input.Name,
			AccountID:     input.AccountID,
			ParticipantID: input.ParticipantID,
		}
		if entry.ParticipantID != "" && strings.TrimSpace(entry.Name) == "" {
			participant, ok := session.Participant(entry.ParticipantID)
			if !ok {
				return ErrParticipantNotFound
			}
			entry.Name = participant.Nickname
		}

		if err := queue.AddPresenter(session, entry); err != nil {
			return err
		}
		position = len(session.PresenterQueue) - 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddPresenterOutput{
		Session:  session,
		Position: position,
	}, nil
}

// AdvancePresenter records the current presenter's score and moves the pointer on
func (s *service) AdvancePresenter(ctx context.Context, input *AdvancePresenterInput) (*AdvancePresenterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	now := s.clock.Now()
	var score *models.PresenterScore
	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "advance", func(session *models.Session) error {
		var err error
		score, err = queue.Advance(session, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	presenter := queue.CurrentPresenter(session)
	event := log.Info().
		Str("session", session.ID).
		Int("index", session.CurrentPresenterIndex)
	if score != nil {
		event = event.Str("closed", score.Name).Int("net", score.NetScore)
	}
	event.Msg("Presenter advanced")

	return &AdvancePresenterOutput{
		Session:   session,
		Score:     score,
		Presenter: presenter,
	}, nil
}

// RemovePresenter removes the entry at the given queue position
func (s *service) RemovePresenter(ctx context.Context, input *RemovePresenterInput) (*RemovePresenterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var removed *models.QueueEntry
	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "remove_presenter", func(session *models.Session) error {
		removed = nil
		if input.Position >= 0 && input.Position < len(session.PresenterQueue) {
			entry := *session.PresenterQueue[input.Position]
			removed = &entry
		}
		return queue.RemovePresenter(session, input.Position)
	})
	if err != nil {
		return nil, err
	}

	return &RemovePresenterOutput{
		Session: session,
		Removed: removed,
	}, nil
}

// ClearQueue drops every presenter and returns to general feedback
func (s *service) ClearQueue(ctx context.Context, input *ClearQueueInput) (*ClearQueueOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "clear_queue", queue.ClearQueue)
	if err != nil {
		return nil, err
	}

	return &ClearQueueOutput{
		Session: session,
	}, nil
}

// ResetVotes zeroes the counters for whichever round is open
func (s *service) ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "reset_votes", func(session *models.Session) error {
		switch queue.StateOf(session) {
		case queue.StatePresenting:
			return queue.ResetPresenterVotes(session)
		case queue.StateEmptyQueue:
			return queue.ResetGeneralVotes(session)
		case queue.StateEnded:
			return queue.ErrSessionEnded
		default:
			return queue.ErrNotPresenting
		}
	})
	if err != nil {
		return nil, err
	}

	return &ResetVotesOutput{
		Session: session,
	}, nil
}

// SetRoundActive pauses or resumes voting
func (s *service) SetRoundActive(ctx context.Context, input *SetRoundActiveInput) (*SetRoundActiveOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "set_round_active", func(session *models.Session) error {
		return queue.SetRoundActive(session, input.Active)
	})
	if err != nil {
		return nil, err
	}

	return &SetRoundActiveOutput{
		Session: session,
	}, nil
}

// UpdateSettings applies the provided toggles
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.VotingMode != nil && !input.VotingMode.IsValid() {
		return nil, ErrInvalidVotingMode
	}

	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "update_settings", func(session *models.Session) error {
		if input.SoundsEnabled != nil {
			session.SoundsEnabled = *input.SoundsEnabled
		}
		if input.ResultsVisible != nil {
			session.ResultsVisible = *input.ResultsVisible
		}
		if input.IsPermanentlySaved != nil {
			session.IsPermanentlySaved = *input.IsPermanentlySaved
		}
		if input.VotingMode != nil {
			session.VotingMode = *input.VotingMode
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateSettingsOutput{
		Session: session,
	}, nil
}

// CastVote adds a reaction for a joined participant.
// In single mode the participant's ballot for the round is recorded before the counter moves.
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	if input.ParticipantID == "" {
		return nil, ErrNotJoined
	}
	if !input.Kind.IsValid() {
		return nil, votes.ErrInvalidKind
	}

	release, err := s.inFlight.acquire(input.SessionID, input.ParticipantID, "vote")
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, s.translate(err)
	}
	if !access.HasJoined(input.ParticipantID, current) {
		return nil, ErrNotJoined
	}
	if err := access.CanVote(current); err != nil {
		return nil, err
	}

	limited := votes.LimitsVotes(current)
	round := votes.RoundID(current)
	if limited {
		recorded, err := s.ballotRepo.RecordVote(ctx, &ballot.RecordVoteInput{
			SessionID:     input.SessionID,
			RoundID:       round,
			ParticipantID: input.ParticipantID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record ballot: %w", err)
		}
		if !recorded.Recorded {
			return nil, ErrAlreadyVoted
		}
	}

	output, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: input.SessionID,
		Mutate: func(session *models.Session) error {
			if limited && votes.RoundID(session) != round {
				return ErrRoundChanged
			}
			if !access.HasJoined(input.ParticipantID, session) {
				return ErrNotJoined
			}
			return votes.Apply(session, input.Kind)
		},
	})
	if err != nil {
		if limited {
			releaseErr := s.ballotRepo.ReleaseVote(ctx, &ballot.ReleaseVoteInput{
				SessionID:     input.SessionID,
				RoundID:       round,
				ParticipantID: input.ParticipantID,
			})
			if releaseErr != nil {
				log.Warn().Err(releaseErr).
					Str("session", input.SessionID).
					Str("actor", input.ParticipantID).
					Msg("Failed to release ballot after rejected vote")
			}
		}
		return nil, s.translate(err)
	}

	return &CastVoteOutput{
		Session:       output.Session,
		LikeClicks:    output.Session.LikeClicks,
		DislikeClicks: output.Session.DislikeClicks,
	}, nil
}

// EndSession deletes quick sessions and soft-ends everything else.
// A failed delete falls back to a soft end so the session still stops accepting votes.
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	if input.ActorID == "" {
		return nil, ErrMissingActor
	}

	release, err := s.inFlight.acquire(input.SessionID, input.ActorID, "end")
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, s.translate(err)
	}
	if !access.IsAdmin(input.ActorID, current) {
		return nil, ErrNotAdmin
	}
	if current.SessionEnded {
		return nil, queue.ErrSessionEnded
	}

	now := s.clock.Now()
	if current.DeleteOnEnd() {
		finalScore := queue.FinalizeCurrent(current, now)
		err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
			SessionID: input.SessionID,
		})
		if err == nil {
			endedAt := now
			current.SessionEnded = true
			current.EndedAt = &endedAt
			queue.Normalize(current)

			s.clearBallots(ctx, input.SessionID)
			log.Info().Str("session", input.SessionID).Msg("Quick session deleted")

			return &EndSessionOutput{
				Session:    current,
				Deleted:    true,
				FinalScore: finalScore,
			}, nil
		}
		log.Warn().Err(err).Str("session", input.SessionID).Msg("Failed to delete session, ending it instead")
	}

	var finalScore *models.PresenterScore
	output, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: input.SessionID,
		Mutate: func(session *models.Session) error {
			if !access.IsAdmin(input.ActorID, session) {
				return ErrNotAdmin
			}
			if session.SessionEnded {
				return queue.ErrSessionEnded
			}

			finalScore = queue.FinalizeCurrent(session, now)
			endedAt := now
			session.SessionEnded = true
			session.EndedAt = &endedAt
			queue.Normalize(session)
			return nil
		},
	})
	if err != nil {
		return nil, s.translate(err)
	}

	if s.archiveRepo != nil {
		err := s.archiveRepo.SaveSession(ctx, &archive.SaveSessionInput{
			Session: output.Session,
		})
		if err != nil {
			log.Error().Err(err).Str("session", input.SessionID).Msg("Failed to archive ended session")
		}
	}
	s.clearBallots(ctx, input.SessionID)

	log.Info().
		Str("session", input.SessionID).
		Int("scores", len(output.Session.PresenterScores)).
		Msg("Session ended")

	return &EndSessionOutput{
		Session:    output.Session,
		FinalScore: finalScore,
	}, nil
}

// KickParticipant removes a participant along with any queue entries they own
func (s *service) KickParticipant(ctx context.Context, input *KickParticipantInput) (*KickParticipantOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.ParticipantID == "" {
		return nil, ErrParticipantNotFound
	}

	var removed int
	session, err := s.adminUpdate(ctx, input.SessionID, input.ActorID, "kick", func(session *models.Session) error {
		if session.SessionEnded {
			return queue.ErrSessionEnded
		}
		if input.ParticipantID == session.AdminID {
			return ErrCannotKickSelf
		}
		if _, ok := session.Participant(input.ParticipantID); !ok {
			return ErrParticipantNotFound
		}

		delete(session.Participants, input.ParticipantID)
		removed = queue.RemoveParticipantEntries(session, input.ParticipantID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session", session.ID).
		Str("actor", input.ActorID).
		Str("participant", input.ParticipantID).
		Int("entries", removed).
		Msg("Participant kicked")

	return &KickParticipantOutput{
		Session:        session,
		RemovedEntries: removed,
	}, nil
}

// GetLeaderboard ranks recorded scores. Non-admins only see results once they are
// made visible or the session has ended.
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, _, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !access.CanSeeResults(input.ActorID, session) {
		return nil, ErrResultsHidden
	}

	return &GetLeaderboardOutput{
		Session: session,
		Entries: models.Leaderboard(session.PresenterScores),
	}, nil
}

// ListSessions merges live and archived sessions for an admin, newest first
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil || input.AdminID == "" {
		return nil, ErrMissingActor
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	live, err := s.sessionRepo.ListSessionsByAdmin(ctx, &sessionRepo.ListSessionsByAdminInput{
		AdminID: input.AdminID,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list live sessions: %w", err)
	}

	seen := make(map[string]bool, len(live.Sessions))
	sessions := make([]*models.Session, 0, len(live.Sessions))
	for _, session := range live.Sessions {
		seen[session.ID] = true
		sessions = append(sessions, session)
	}

	if s.archiveRepo != nil {
		archived, err := s.archiveRepo.ListSessions(ctx, &archive.ListSessionsInput{
			AdminID: input.AdminID,
			Limit:   int64(limit),
		})
		if err != nil {
			log.Warn().Err(err).Str("actor", input.AdminID).Msg("Failed to list archived sessions")
		} else {
			for _, session := range archived.Sessions {
				if seen[session.ID] {
					continue
				}
				seen[session.ID] = true
				sessions = append(sessions, session)
			}
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}

// Subscribe streams updates for a session until the subscription is closed
func (s *service) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	output, err := s.sessionRepo.Subscribe(ctx, &sessionRepo.SubscribeInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, s.translate(err)
	}

	return &SubscribeOutput{
		Events: output.Events,
		Close:  output.Close,
	}, nil
}

// BindChannel points a chat channel at a session the actor administers
func (s *service) BindChannel(ctx context.Context, input *BindChannelInput) (*BindChannelOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	if input.ChannelID == "" {
		return nil, errors.New("channel ID is required")
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, s.translate(err)
	}
	if !access.IsAdmin(input.ActorID, session) {
		return nil, ErrNotAdmin
	}

	err = s.sessionRepo.BindChannel(ctx, &sessionRepo.BindChannelInput{
		ChannelID: input.ChannelID,
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind channel: %w", err)
	}

	return &BindChannelOutput{
		Session: session,
	}, nil
}

// GetSessionByChannel returns the live session bound to a channel
func (s *service) GetSessionByChannel(ctx context.Context, input *GetSessionByChannelInput) (*GetSessionOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("channel ID is required")
	}

	session, err := s.sessionRepo.GetSessionByChannel(ctx, &sessionRepo.GetSessionByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, s.translate(err)
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// adminUpdate runs mutate inside an optimistic update once the actor is confirmed as admin.
// Rejections leave the stored session untouched.
func (s *service) adminUpdate(ctx context.Context, sessionID, actorID, action string, mutate sessionRepo.MutateFunc) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}
	if actorID == "" {
		return nil, ErrMissingActor
	}

	release, err := s.inFlight.acquire(sessionID, actorID, action)
	if err != nil {
		return nil, err
	}
	defer release()

	output, err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		SessionID: sessionID,
		Mutate: func(session *models.Session) error {
			if !access.IsAdmin(actorID, session) {
				return ErrNotAdmin
			}
			if err := mutate(session); err != nil {
				return err
			}
			queue.Normalize(session)
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, ErrNotAdmin) {
			log.Warn().
				Str("session", sessionID).
				Str("actor", actorID).
				Str("action", action).
				Msg("Rejected action from non-admin")
		}
		return nil, s.translate(err)
	}

	log.Debug().
		Str("session", sessionID).
		Str("actor", actorID).
		Str("action", action).
		Msg("Session updated")

	return output.Session, nil
}

// loadSession reads the live session, falling back to the archive once it has left the store
func (s *service) loadSession(ctx context.Context, sessionID string) (*models.Session, bool, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, sessionRepo.ErrSessionNotFound) || s.archiveRepo == nil {
		return nil, false, s.translate(err)
	}

	session, err = s.archiveRepo.GetSession(ctx, &archive.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, archive.ErrSessionNotFound) {
			return nil, false, ErrSessionNotFound
		}
		return nil, false, err
	}
	return session, true, nil
}

// clearBallots drops single-mode ballots once the session closes. Ballots of earlier
// rounds are keyed by a VoteRound that never comes back and expire on their own.
func (s *service) clearBallots(ctx context.Context, sessionID string) {
	err := s.ballotRepo.ClearSession(ctx, &ballot.ClearSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Failed to clear ballots")
	}
}

func (s *service) translate(err error) error {
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}
