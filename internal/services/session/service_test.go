package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/clapometer/internal/access"
	clockMocks "github.com/KirkDiggler/clapometer/internal/common/clock/mocks"
	idgenMocks "github.com/KirkDiggler/clapometer/internal/common/idgen/mocks"
	"github.com/KirkDiggler/clapometer/internal/models"
	"github.com/KirkDiggler/clapometer/internal/queue"
	"github.com/KirkDiggler/clapometer/internal/repositories/archive"
	archiveMocks "github.com/KirkDiggler/clapometer/internal/repositories/archive/mocks"
	"github.com/KirkDiggler/clapometer/internal/repositories/ballot"
	ballotMocks "github.com/KirkDiggler/clapometer/internal/repositories/ballot/mocks"
	sessionRepo "github.com/KirkDiggler/clapometer/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/clapometer/internal/repositories/session/mocks"
	"github.com/KirkDiggler/clapometer/internal/votes"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockBallotRepo  *ballotMocks.MockRepository
	mockArchiveRepo *archiveMocks.MockRepository
	mockClock       *clockMocks.MockClock
	mockIDGen       *idgenMocks.MockGenerator
	service         *service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	testAdminID   string
	testAliceID   string
	testBobID     string

	// stored is the session as the store currently holds it
	stored *models.Session
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockBallotRepo = ballotMocks.NewMockRepository(s.mockCtrl)
	s.mockArchiveRepo = archiveMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockIDGen = idgenMocks.NewMockGenerator(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "ABC123"
	s.testAdminID = "admin-id"
	s.testAliceID = "alice-id"
	s.testBobID = "bob-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.stored = &models.Session{
		ID:            s.testSessionID,
		AdminID:       s.testAdminID,
		IsRoundActive: true,
		CreatedAt:     s.testTime,
		Participants: map[string]*models.Participant{
			s.testAliceID: {ID: s.testAliceID, Nickname: "Alice", JoinedAt: s.testTime},
			s.testBobID:   {ID: s.testBobID, Nickname: "Bob", JoinedAt: s.testTime},
		},
		PresenterQueue:        []*models.QueueEntry{},
		CurrentPresenterIndex: models.NoPresenter,
		PresenterScores:       []*models.PresenterScore{},
		VotingMode:            models.VotingModeSingle,
		SessionType:           models.SessionTypePersisted,
	}

	svc, err := New(&Config{
		SessionRepo: s.mockSessionRepo,
		BallotRepo:  s.mockBallotRepo,
		ArchiveRepo: s.mockArchiveRepo,
		Clock:       s.mockClock,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *SessionServiceTestSuite) clone(session *models.Session) *models.Session {
	data, err := json.Marshal(session)
	s.Require().NoError(err)

	var out models.Session
	s.Require().NoError(json.Unmarshal(data, &out))
	return &out
}

// expectUpdate behaves like the store: mutations apply to a copy that is only kept on success
func (s *SessionServiceTestSuite) expectUpdate() *gomock.Call {
	return s.mockSessionRepo.EXPECT().
		UpdateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.UpdateSessionInput) (*sessionRepo.UpdateSessionOutput, error) {
			s.Require().Equal(s.testSessionID, input.SessionID)

			working := s.clone(s.stored)
			if err := input.Mutate(working); err != nil {
				return nil, err
			}
			s.stored = working
			return &sessionRepo.UpdateSessionOutput{Session: s.clone(working)}, nil
		})
}

func (s *SessionServiceTestSuite) expectGet() *gomock.Call {
	return s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		DoAndReturn(func(_ context.Context, _ *sessionRepo.GetSessionInput) (*models.Session, error) {
			return s.clone(s.stored), nil
		})
}

func (s *SessionServiceTestSuite) expectClearBallots() *gomock.Call {
	return s.mockBallotRepo.EXPECT().
		ClearSession(gomock.Any(), &ballot.ClearSessionInput{SessionID: s.testSessionID}).
		Return(nil)
}

func (s *SessionServiceTestSuite) withQueue(names ...string) {
	for _, name := range names {
		s.stored.PresenterQueue = append(s.stored.PresenterQueue, &models.QueueEntry{Name: name})
	}
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := sessionMocks.NewMockRepository(ctrl)
	ballots := ballotMocks.NewMockRepository(ctrl)
	clk := clockMocks.NewMockClock(ctrl)
	ids := idgenMocks.NewMockGenerator(ctrl)

	testCases := []struct {
		name string
		cfg  *Config
		want error
	}{
		{name: "nil config", cfg: nil, want: ErrNilConfig},
		{name: "missing session repo", cfg: &Config{BallotRepo: ballots, Clock: clk, IDGenerator: ids}, want: ErrNilSessionRepo},
		{name: "missing ballot repo", cfg: &Config{SessionRepo: sessions, Clock: clk, IDGenerator: ids}, want: ErrNilBallotRepo},
		{name: "missing clock", cfg: &Config{SessionRepo: sessions, BallotRepo: ballots, IDGenerator: ids}, want: ErrNilClock},
		{name: "missing id generator", cfg: &Config{SessionRepo: sessions, BallotRepo: ballots, Clock: clk}, want: ErrNilIDGenerator},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	svc, err := New(&Config{SessionRepo: sessions, BallotRepo: ballots, Clock: clk, IDGenerator: ids})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.codeAttempts != DefaultCodeAttempts {
		t.Fatalf("expected default code attempts, got %d", svc.codeAttempts)
	}
}

func (s *SessionServiceTestSuite) TestCreateSessionDefaults() {
	s.mockIDGen.EXPECT().NewSessionCode().Return("XYZ789")
	s.mockSessionRepo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.CreateSessionInput) error {
			s.Equal("XYZ789", input.Session.ID)
			return nil
		})

	output, err := s.service.CreateSession(s.ctx, &CreateSessionInput{AdminID: s.testAdminID})
	s.Require().NoError(err)

	session := output.Session
	s.Equal(s.testAdminID, session.AdminID)
	s.Equal(models.VotingModeSingle, session.VotingMode)
	s.Equal(models.SessionTypeQuick, session.SessionType)
	s.True(session.IsRoundActive)
	s.Equal(models.NoPresenter, session.CurrentPresenterIndex)
	s.Equal(s.testTime, session.CreatedAt)
	s.Empty(session.PresenterQueue)
	s.Equal(queue.StateEmptyQueue, queue.StateOf(session))
}

func (s *SessionServiceTestSuite) TestCreateSessionRetriesOnCollision() {
	gomock.InOrder(
		s.mockIDGen.EXPECT().NewSessionCode().Return("TAKEN1"),
		s.mockIDGen.EXPECT().NewSessionCode().Return("FREE22"),
	)
	gomock.InOrder(
		s.mockSessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionRepo.ErrSessionExists),
		s.mockSessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil),
	)
	s.mockSessionRepo.EXPECT().
		BindChannel(gomock.Any(), &sessionRepo.BindChannelInput{ChannelID: "channel-1", SessionID: "FREE22"}).
		Return(nil)

	output, err := s.service.CreateSession(s.ctx, &CreateSessionInput{
		AdminID:     s.testAdminID,
		SessionType: models.SessionTypePersisted,
		VotingMode:  models.VotingModeInfinite,
		ChannelID:   "channel-1",
	})
	s.Require().NoError(err)
	s.Equal("FREE22", output.Session.ID)
	s.Equal(models.VotingModeInfinite, output.Session.VotingMode)
}

func (s *SessionServiceTestSuite) TestCreateSessionCodesExhausted() {
	s.mockIDGen.EXPECT().NewSessionCode().Return("TAKEN1").Times(DefaultCodeAttempts)
	s.mockSessionRepo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(sessionRepo.ErrSessionExists).
		Times(DefaultCodeAttempts)

	_, err := s.service.CreateSession(s.ctx, &CreateSessionInput{AdminID: s.testAdminID})
	s.ErrorIs(err, ErrCodeExhausted)
}

func (s *SessionServiceTestSuite) TestCreateSessionValidation() {
	_, err := s.service.CreateSession(s.ctx, &CreateSessionInput{})
	s.ErrorIs(err, ErrMissingActor)

	_, err = s.service.CreateSession(s.ctx, &CreateSessionInput{AdminID: s.testAdminID, SessionType: "forever"})
	s.ErrorIs(err, ErrInvalidSessionType)

	_, err = s.service.CreateSession(s.ctx, &CreateSessionInput{AdminID: s.testAdminID, VotingMode: "twice"})
	s.ErrorIs(err, ErrInvalidVotingMode)
}

func (s *SessionServiceTestSuite) TestGetSessionFallsBackToArchive() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)
	s.mockArchiveRepo.EXPECT().
		GetSession(gomock.Any(), &archive.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.stored, nil)

	output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.True(output.Archived)
	s.Equal(s.testSessionID, output.Session.ID)
}

func (s *SessionServiceTestSuite) TestGetSessionNotFound() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)
	s.mockArchiveRepo.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(nil, archive.ErrSessionNotFound)

	_, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestGetSessionWithholdsHiddenScores() {
	s.stored.PresenterScores = []*models.PresenterScore{{Name: "A", Likes: 3, NetScore: 3}}

	s.Run("participant", func() {
		s.expectGet()
		output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID, ActorID: s.testAliceID})
		s.Require().NoError(err)
		s.Empty(output.Session.PresenterScores)
	})

	s.Run("anonymous", func() {
		s.expectGet()
		output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID})
		s.Require().NoError(err)
		s.Empty(output.Session.PresenterScores)
	})

	s.Run("admin", func() {
		s.expectGet()
		output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.Require().NoError(err)
		s.Len(output.Session.PresenterScores, 1)
	})

	s.Run("visible", func() {
		s.stored.ResultsVisible = true
		s.expectGet()
		output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID, ActorID: s.testAliceID})
		s.Require().NoError(err)
		s.Len(output.Session.PresenterScores, 1)
	})
}

func TestViewForLeavesOriginalIntact(t *testing.T) {
	original := &models.Session{
		AdminID:         "admin",
		PresenterScores: []*models.PresenterScore{{Name: "A"}},
	}

	view := ViewFor("alice", original)
	if len(view.PresenterScores) != 0 {
		t.Fatalf("expected hidden scores, got %d", len(view.PresenterScores))
	}
	if len(original.PresenterScores) != 1 {
		t.Fatal("original session was modified")
	}
	if ViewFor("admin", original) != original {
		t.Fatal("expected admin to receive the session as stored")
	}
}

func (s *SessionServiceTestSuite) TestJoinSession() {
	s.expectUpdate()

	output, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		SessionID:     s.testSessionID,
		ParticipantID: "carol-id",
		Nickname:      "  Carol  ",
	})
	s.Require().NoError(err)
	s.False(output.AlreadyJoined)
	s.Equal("Carol", output.Participant.Nickname)
	s.Equal(s.testTime, output.Participant.JoinedAt)
	s.Equal("Carol", s.stored.Participants["carol-id"].Nickname)
}

func (s *SessionServiceTestSuite) TestJoinSessionAnonymous() {
	s.mockIDGen.EXPECT().NewUUID().Return("anon-uuid")
	s.expectUpdate()

	output, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		SessionID: s.testSessionID,
		Nickname:  "Ghost",
	})
	s.Require().NoError(err)
	s.Equal("anon-uuid", output.Participant.ID)
	s.True(output.Participant.IsAnonymous)
}

func (s *SessionServiceTestSuite) TestJoinSessionSameNicknameIsIdempotent() {
	s.expectUpdate()
	before := s.clone(s.stored)

	output, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		SessionID:     s.testSessionID,
		ParticipantID: s.testAliceID,
		Nickname:      "Alice",
	})
	s.Require().NoError(err)
	s.True(output.AlreadyJoined)
	s.Equal(before, s.clone(s.stored))
}

func (s *SessionServiceTestSuite) TestJoinSessionRejections() {
	testCases := []struct {
		name          string
		participantID string
		nickname      string
		expectUpdate  bool
		want          error
	}{
		{name: "empty nickname", participantID: "carol-id", nickname: "   ", want: ErrEmptyNickname},
		{name: "too long", participantID: "carol-id", nickname: "abcdefghijklmnopqrstuvwxyz0123456", want: ErrNicknameTooLong},
		{name: "taken ignoring case", participantID: "carol-id", nickname: "ALICE", expectUpdate: true, want: ErrNicknameTaken},
		{name: "locked once set", participantID: s.testAliceID, nickname: "Alicia", expectUpdate: true, want: ErrNicknameLocked},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.expectUpdate {
				s.expectUpdate()
			}
			before := s.clone(s.stored)

			_, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
				SessionID:     s.testSessionID,
				ParticipantID: tc.participantID,
				Nickname:      tc.nickname,
			})
			s.ErrorIs(err, tc.want)
			s.Equal(before, s.clone(s.stored))
		})
	}
}

func (s *SessionServiceTestSuite) TestJoinSessionAcceptsMaxLength() {
	s.expectUpdate()

	// 32 multi-byte characters
	nickname := "éééééééééééééééééééééééééééééééé"
	_, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		SessionID:     s.testSessionID,
		ParticipantID: "carol-id",
		Nickname:      nickname,
	})
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestAddPresenterRequiresAdmin() {
	s.expectUpdate()
	before := s.clone(s.stored)

	_, err := s.service.AddPresenter(s.ctx, &AddPresenterInput{
		SessionID: s.testSessionID,
		ActorID:   s.testAliceID,
		Name:      "Alice",
	})
	s.ErrorIs(err, ErrNotAdmin)
	s.Equal(before, s.clone(s.stored))
}

func (s *SessionServiceTestSuite) TestAddPresenterUsesParticipantNickname() {
	s.expectUpdate()

	output, err := s.service.AddPresenter(s.ctx, &AddPresenterInput{
		SessionID:     s.testSessionID,
		ActorID:       s.testAdminID,
		ParticipantID: s.testBobID,
	})
	s.Require().NoError(err)
	s.Equal(0, output.Position)
	s.Equal("Bob", s.stored.PresenterQueue[0].Name)
	s.Equal(s.testBobID, s.stored.PresenterQueue[0].ParticipantID)
	s.Equal(queue.StateAwaitingStart, queue.StateOf(s.stored))
}

func (s *SessionServiceTestSuite) TestPresenterRoundLifecycle() {
	s.withQueue("A", "B")
	s.expectUpdate().Times(3)

	output, err := s.service.AdvancePresenter(s.ctx, &AdvancePresenterInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.Nil(output.Score)
	s.Equal("A", output.Presenter.Name)
	s.True(s.stored.IsRoundActive)

	s.stored.LikeClicks = 3
	s.stored.DislikeClicks = 1

	output, err = s.service.AdvancePresenter(s.ctx, &AdvancePresenterInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.Require().NotNil(output.Score)
	s.Equal("A", output.Score.Name)
	s.Equal(2, output.Score.NetScore)
	s.Equal("B", output.Presenter.Name)
	s.Zero(s.stored.LikeClicks)

	output, err = s.service.AdvancePresenter(s.ctx, &AdvancePresenterInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.Nil(output.Presenter)
	s.False(s.stored.IsRoundActive)
	s.Equal(queue.StateQueueExhausted, queue.StateOf(s.stored))
	s.Len(s.stored.PresenterScores, 2)
}

func (s *SessionServiceTestSuite) TestAdvanceRejectedWhenQueueEmpty() {
	s.expectUpdate()

	_, err := s.service.AdvancePresenter(s.ctx, &AdvancePresenterInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.ErrorIs(err, queue.ErrCannotAdvance)
}

func (s *SessionServiceTestSuite) TestRemoveCurrentPresenterOpensNewRound() {
	s.withQueue("A", "B", "C")
	s.stored.CurrentPresenterIndex = 1
	s.stored.LikeClicks = 4
	round := votes.RoundID(s.stored)
	s.expectUpdate()

	output, err := s.service.RemovePresenter(s.ctx, &RemovePresenterInput{
		SessionID: s.testSessionID,
		ActorID:   s.testAdminID,
		Position:  1,
	})
	s.Require().NoError(err)
	s.Equal("B", output.Removed.Name)
	s.Equal(1, s.stored.CurrentPresenterIndex)
	s.Equal("C", queue.CurrentPresenter(s.stored).Name)
	s.Zero(s.stored.LikeClicks)
	s.NotEqual(round, votes.RoundID(s.stored))
}

func (s *SessionServiceTestSuite) TestRemoveEarlierPresenterKeepsBallots() {
	s.withQueue("A", "B", "C")
	s.stored.CurrentPresenterIndex = 2
	s.stored.LikeClicks = 4
	round := votes.RoundID(s.stored)
	s.expectUpdate()

	_, err := s.service.RemovePresenter(s.ctx, &RemovePresenterInput{
		SessionID: s.testSessionID,
		ActorID:   s.testAdminID,
		Position:  0,
	})
	s.Require().NoError(err)
	s.Equal(1, s.stored.CurrentPresenterIndex)
	s.Equal("C", queue.CurrentPresenter(s.stored).Name)
	s.Equal(4, s.stored.LikeClicks)
	s.Equal(round, votes.RoundID(s.stored))
}

func (s *SessionServiceTestSuite) TestRemovePresenterInvalidPosition() {
	s.withQueue("A")
	s.expectUpdate()

	_, err := s.service.RemovePresenter(s.ctx, &RemovePresenterInput{
		SessionID: s.testSessionID,
		ActorID:   s.testAdminID,
		Position:  5,
	})
	s.ErrorIs(err, queue.ErrInvalidPosition)
}

func (s *SessionServiceTestSuite) TestClearQueue() {
	s.withQueue("A", "B")
	s.stored.CurrentPresenterIndex = 1
	s.stored.IsRoundActive = false
	s.stored.PresenterScores = []*models.PresenterScore{{Name: "A", Likes: 1}}
	s.expectUpdate()

	_, err := s.service.ClearQueue(s.ctx, &ClearQueueInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.Empty(s.stored.PresenterQueue)
	s.Empty(s.stored.PresenterScores)
	s.True(s.stored.IsRoundActive)
	s.Equal(models.NoPresenter, s.stored.CurrentPresenterIndex)
	s.Equal(1, s.stored.VoteRound)
}

func (s *SessionServiceTestSuite) TestResetVotes() {
	s.Run("general feedback", func() {
		s.stored.LikeClicks = 5
		s.expectUpdate()

		_, err := s.service.ResetVotes(s.ctx, &ResetVotesInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.Require().NoError(err)
		s.Zero(s.stored.LikeClicks)
		s.Equal(1, s.stored.VoteRound)
	})

	s.Run("awaiting start", func() {
		s.withQueue("A")
		s.expectUpdate()

		_, err := s.service.ResetVotes(s.ctx, &ResetVotesInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.ErrorIs(err, queue.ErrNotPresenting)
		s.Equal(1, s.stored.VoteRound)
	})

	s.Run("presenting", func() {
		s.stored.CurrentPresenterIndex = 0
		s.stored.DislikeClicks = 2
		s.expectUpdate()

		_, err := s.service.ResetVotes(s.ctx, &ResetVotesInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.Require().NoError(err)
		s.Zero(s.stored.DislikeClicks)
		s.Equal(0, s.stored.CurrentPresenterIndex)
		s.Equal(2, s.stored.VoteRound)
	})
}

func (s *SessionServiceTestSuite) TestUpdateSettings() {
	s.expectUpdate()
	visible := true
	mode := models.VotingModeInfinite

	output, err := s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{
		SessionID:      s.testSessionID,
		ActorID:        s.testAdminID,
		ResultsVisible: &visible,
		VotingMode:     &mode,
	})
	s.Require().NoError(err)
	s.True(output.Session.ResultsVisible)
	s.Equal(models.VotingModeInfinite, output.Session.VotingMode)
	s.False(output.Session.SoundsEnabled)

	bad := models.VotingMode("twice")
	_, err = s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{
		SessionID:  s.testSessionID,
		ActorID:    s.testAdminID,
		VotingMode: &bad,
	})
	s.ErrorIs(err, ErrInvalidVotingMode)
}

func (s *SessionServiceTestSuite) TestCastVoteSingleMode() {
	s.withQueue("A")
	s.stored.CurrentPresenterIndex = 0
	round := votes.RoundID(s.stored)

	s.expectGet().Times(2)
	s.expectUpdate()
	gomock.InOrder(
		s.mockBallotRepo.EXPECT().
			RecordVote(gomock.Any(), &ballot.RecordVoteInput{SessionID: s.testSessionID, RoundID: round, ParticipantID: s.testAliceID}).
			Return(&ballot.RecordVoteOutput{Recorded: true}, nil),
		s.mockBallotRepo.EXPECT().
			RecordVote(gomock.Any(), &ballot.RecordVoteInput{SessionID: s.testSessionID, RoundID: round, ParticipantID: s.testAliceID}).
			Return(&ballot.RecordVoteOutput{Recorded: false}, nil),
	)

	output, err := s.service.CastVote(s.ctx, &CastVoteInput{
		SessionID:     s.testSessionID,
		ParticipantID: s.testAliceID,
		Kind:          votes.KindLike,
	})
	s.Require().NoError(err)
	s.Equal(1, output.LikeClicks)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{
		SessionID:     s.testSessionID,
		ParticipantID: s.testAliceID,
		Kind:          votes.KindDislike,
	})
	s.ErrorIs(err, ErrAlreadyVoted)
	s.Equal(1, s.stored.LikeClicks)
	s.Zero(s.stored.DislikeClicks)
}

func (s *SessionServiceTestSuite) TestCastVoteInfiniteModeSkipsBallots() {
	s.stored.VotingMode = models.VotingModeInfinite
	s.expectGet().Times(3)
	s.expectUpdate().Times(3)

	for i := 0; i < 3; i++ {
		_, err := s.service.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: s.testBobID,
			Kind:          votes.KindDislike,
		})
		s.Require().NoError(err)
	}
	s.Equal(3, s.stored.DislikeClicks)
}

func (s *SessionServiceTestSuite) TestCastVoteRejections() {
	s.Run("not joined", func() {
		s.expectGet()

		_, err := s.service.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: "stranger",
			Kind:          votes.KindLike,
		})
		s.ErrorIs(err, ErrNotJoined)
	})

	s.Run("round paused", func() {
		s.stored.IsRoundActive = false
		s.expectGet()

		_, err := s.service.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: s.testAliceID,
			Kind:          votes.KindLike,
		})
		s.ErrorIs(err, access.ErrRoundClosed)
		s.stored.IsRoundActive = true
	})

	s.Run("awaiting start", func() {
		s.withQueue("A")
		s.expectGet()

		_, err := s.service.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: s.testAliceID,
			Kind:          votes.KindLike,
		})
		s.ErrorIs(err, access.ErrNoPresenter)
	})

	s.Run("invalid kind", func() {
		_, err := s.service.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: s.testAliceID,
			Kind:          "meh",
		})
		s.ErrorIs(err, votes.ErrInvalidKind)
	})

	s.Zero(s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestCastVoteReleasesBallotWhenRoundChanges() {
	s.withQueue("A", "B")
	s.stored.CurrentPresenterIndex = 0
	snapshot := s.clone(s.stored)
	round := votes.RoundID(snapshot)

	s.mockSessionRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(snapshot, nil)
	s.mockBallotRepo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any()).
		Return(&ballot.RecordVoteOutput{Recorded: true}, nil)
	s.mockBallotRepo.EXPECT().
		ReleaseVote(gomock.Any(), &ballot.ReleaseVoteInput{SessionID: s.testSessionID, RoundID: round, ParticipantID: s.testAliceID}).
		Return(nil)
	s.expectUpdate()

	// the admin advances between the read and the write
	_, err := queue.Advance(s.stored, s.testTime)
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{
		SessionID:     s.testSessionID,
		ParticipantID: s.testAliceID,
		Kind:          votes.KindLike,
	})
	s.ErrorIs(err, ErrRoundChanged)
	s.Zero(s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestCastVoteAcrossResetIsRejected() {
	snapshot := s.clone(s.stored)
	round := votes.RoundID(snapshot)

	s.mockSessionRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(snapshot, nil)
	s.mockBallotRepo.EXPECT().
		RecordVote(gomock.Any(), &ballot.RecordVoteInput{SessionID: s.testSessionID, RoundID: round, ParticipantID: s.testAliceID}).
		Return(&ballot.RecordVoteOutput{Recorded: true}, nil)
	s.mockBallotRepo.EXPECT().
		ReleaseVote(gomock.Any(), &ballot.ReleaseVoteInput{SessionID: s.testSessionID, RoundID: round, ParticipantID: s.testAliceID}).
		Return(nil)
	s.expectUpdate().Times(2)

	// the reset commits between the read and the write
	s.stored.LikeClicks = 6
	_, err := s.service.ResetVotes(s.ctx, &ResetVotesInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{
		SessionID:     s.testSessionID,
		ParticipantID: s.testAliceID,
		Kind:          votes.KindLike,
	})
	s.ErrorIs(err, ErrRoundChanged)
	s.Zero(s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestSingleVotePerRoundAfterReset() {
	mr := miniredis.RunT(s.T())
	ballots, err := ballot.NewRedis(&ballot.Config{
		RedisClient: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	})
	s.Require().NoError(err)

	svc, err := New(&Config{
		SessionRepo: s.mockSessionRepo,
		BallotRepo:  ballots,
		Clock:       s.mockClock,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)

	s.expectGet().Times(3)
	s.expectUpdate().Times(3)
	vote := func() error {
		_, err := svc.CastVote(s.ctx, &CastVoteInput{
			SessionID:     s.testSessionID,
			ParticipantID: s.testAliceID,
			Kind:          votes.KindLike,
		})
		return err
	}

	s.Require().NoError(vote())
	_, err = svc.ResetVotes(s.ctx, &ResetVotesInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.Zero(s.stored.LikeClicks)

	// a fresh ballot after the reset, and only one
	s.Require().NoError(vote())
	s.ErrorIs(vote(), ErrAlreadyVoted)
	s.Equal(1, s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestPausedRoundRejectsVotesUntilResumed() {
	s.stored.VotingMode = models.VotingModeInfinite
	s.expectUpdate().Times(3)
	s.expectGet().Times(2)

	_, err := s.service.SetRoundActive(s.ctx, &SetRoundActiveInput{SessionID: s.testSessionID, ActorID: s.testAdminID, Active: false})
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{SessionID: s.testSessionID, ParticipantID: s.testAliceID, Kind: votes.KindLike})
	s.ErrorIs(err, access.ErrRoundClosed)

	_, err = s.service.SetRoundActive(s.ctx, &SetRoundActiveInput{SessionID: s.testSessionID, ActorID: s.testAdminID, Active: true})
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{SessionID: s.testSessionID, ParticipantID: s.testAliceID, Kind: votes.KindLike})
	s.Require().NoError(err)
	s.Equal(1, s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestEndQuickSessionDeletes() {
	s.stored.SessionType = models.SessionTypeQuick
	s.withQueue("A")
	s.stored.CurrentPresenterIndex = 0
	s.stored.LikeClicks = 2

	s.expectGet()
	s.mockSessionRepo.EXPECT().
		DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{SessionID: s.testSessionID}).
		Return(nil)
	s.expectClearBallots()

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.True(output.Deleted)
	s.Require().NotNil(output.FinalScore)
	s.Equal(2, output.FinalScore.Likes)
	s.True(output.Session.SessionEnded)
	s.False(output.Session.IsRoundActive)
}

func (s *SessionServiceTestSuite) TestEndQuickSessionFallsBackToSoftEnd() {
	s.stored.SessionType = models.SessionTypeQuick

	s.expectGet()
	s.mockSessionRepo.EXPECT().
		DeleteSession(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	s.expectUpdate()
	s.mockArchiveRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	s.expectClearBallots()

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.False(output.Deleted)
	s.True(s.stored.SessionEnded)
	s.False(s.stored.IsRoundActive)
}

func (s *SessionServiceTestSuite) TestEndPersistedSessionArchives() {
	s.withQueue("A", "B")
	s.stored.CurrentPresenterIndex = 1
	s.stored.LikeClicks = 4
	s.stored.DislikeClicks = 1
	s.stored.PresenterScores = []*models.PresenterScore{{Name: "A", Likes: 1, NetScore: 1}}

	s.expectGet()
	s.expectUpdate()
	s.mockArchiveRepo.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *archive.SaveSessionInput) error {
			s.True(input.Session.SessionEnded)
			s.Len(input.Session.PresenterScores, 2)
			return errors.New("mongo unavailable")
		})
	s.expectClearBallots()

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.False(output.Deleted)
	s.Require().NotNil(output.FinalScore)
	s.Equal("B", output.FinalScore.Name)
	s.Equal(3, output.FinalScore.NetScore)
	s.Require().NotNil(s.stored.EndedAt)
	s.Equal(s.testTime, *s.stored.EndedAt)
	s.Equal(queue.StateEnded, queue.StateOf(s.stored))
}

func (s *SessionServiceTestSuite) TestEndPermanentlySavedQuickSessionRetains() {
	s.stored.SessionType = models.SessionTypeQuick
	s.stored.IsPermanentlySaved = true

	s.expectGet()
	s.expectUpdate()
	s.mockArchiveRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	s.expectClearBallots()

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)
	s.False(output.Deleted)
	s.True(s.stored.SessionEnded)
}

func (s *SessionServiceTestSuite) TestEndSessionRejections() {
	s.Run("not admin", func() {
		s.expectGet()

		_, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAliceID})
		s.ErrorIs(err, ErrNotAdmin)
		s.False(s.stored.SessionEnded)
	})

	s.Run("already ended", func() {
		s.stored.SessionEnded = true
		s.expectGet()

		_, err := s.service.EndSession(s.ctx, &EndSessionInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.ErrorIs(err, queue.ErrSessionEnded)
	})
}

func (s *SessionServiceTestSuite) TestEndedSessionRejectsMutations() {
	s.stored.SessionEnded = true
	s.stored.IsRoundActive = false
	s.expectUpdate().Times(2)
	s.expectGet()

	_, err := s.service.AddPresenter(s.ctx, &AddPresenterInput{SessionID: s.testSessionID, ActorID: s.testAdminID, Name: "Late"})
	s.ErrorIs(err, queue.ErrSessionEnded)

	_, err = s.service.SetRoundActive(s.ctx, &SetRoundActiveInput{SessionID: s.testSessionID, ActorID: s.testAdminID, Active: true})
	s.ErrorIs(err, queue.ErrSessionEnded)
	s.False(s.stored.IsRoundActive)

	_, err = s.service.CastVote(s.ctx, &CastVoteInput{SessionID: s.testSessionID, ParticipantID: s.testAliceID, Kind: votes.KindLike})
	s.ErrorIs(err, queue.ErrSessionEnded)
}

func (s *SessionServiceTestSuite) TestKickParticipant() {
	s.stored.PresenterQueue = []*models.QueueEntry{
		{Name: "Alice", ParticipantID: s.testAliceID},
		{Name: "Bob", ParticipantID: s.testBobID},
		{Name: "Alice again", ParticipantID: s.testAliceID},
		{Name: "Dana"},
	}
	s.stored.CurrentPresenterIndex = 1
	s.stored.LikeClicks = 2
	s.expectUpdate()

	output, err := s.service.KickParticipant(s.ctx, &KickParticipantInput{
		SessionID:     s.testSessionID,
		ActorID:       s.testAdminID,
		ParticipantID: s.testAliceID,
	})
	s.Require().NoError(err)
	s.Equal(2, output.RemovedEntries)
	s.NotContains(s.stored.Participants, s.testAliceID)
	s.Len(s.stored.PresenterQueue, 2)
	s.Equal(0, s.stored.CurrentPresenterIndex)
	s.Equal("Bob", queue.CurrentPresenter(s.stored).Name)
	s.Equal(2, s.stored.LikeClicks)
}

func (s *SessionServiceTestSuite) TestKickActivePresenterOpensNewRound() {
	s.stored.PresenterQueue = []*models.QueueEntry{
		{Name: "Bob", ParticipantID: s.testBobID},
		{Name: "Dana"},
	}
	s.stored.CurrentPresenterIndex = 0
	s.stored.LikeClicks = 3
	s.expectUpdate()

	_, err := s.service.KickParticipant(s.ctx, &KickParticipantInput{
		SessionID:     s.testSessionID,
		ActorID:       s.testAdminID,
		ParticipantID: s.testBobID,
	})
	s.Require().NoError(err)
	s.Equal("Dana", queue.CurrentPresenter(s.stored).Name)
	s.Zero(s.stored.LikeClicks)
	s.Equal(1, s.stored.VoteRound)
}

func (s *SessionServiceTestSuite) TestKickParticipantRejections() {
	s.stored.Participants[s.testAdminID] = &models.Participant{ID: s.testAdminID, Nickname: "Teacher"}
	s.expectUpdate().Times(3)
	before := s.clone(s.stored)

	_, err := s.service.KickParticipant(s.ctx, &KickParticipantInput{SessionID: s.testSessionID, ActorID: s.testAdminID, ParticipantID: s.testAdminID})
	s.ErrorIs(err, ErrCannotKickSelf)

	_, err = s.service.KickParticipant(s.ctx, &KickParticipantInput{SessionID: s.testSessionID, ActorID: s.testAdminID, ParticipantID: "nobody"})
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.service.KickParticipant(s.ctx, &KickParticipantInput{SessionID: s.testSessionID, ActorID: s.testAliceID, ParticipantID: s.testBobID})
	s.ErrorIs(err, ErrNotAdmin)

	s.Equal(before, s.clone(s.stored))
}

func (s *SessionServiceTestSuite) TestGetLeaderboardVisibility() {
	s.stored.PresenterScores = []*models.PresenterScore{
		{Name: "A", Likes: 3, Dislikes: 0, NetScore: 3},
		{Name: "B", Likes: 5, Dislikes: 4, NetScore: 1},
	}

	s.Run("hidden from participants", func() {
		s.expectGet()
		_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{SessionID: s.testSessionID, ActorID: s.testAliceID})
		s.ErrorIs(err, ErrResultsHidden)
	})

	s.Run("admin always sees", func() {
		s.expectGet()
		output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{SessionID: s.testSessionID, ActorID: s.testAdminID})
		s.Require().NoError(err)
		s.Require().Len(output.Entries, 2)
		s.Equal("B", output.Entries[0].Score.Name)
		s.Equal(1, output.Entries[0].Rank)
	})

	s.Run("visible after toggle", func() {
		s.stored.ResultsVisible = true
		s.expectGet()
		output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{SessionID: s.testSessionID, ActorID: s.testAliceID})
		s.Require().NoError(err)
		s.Len(output.Entries, 2)
	})
}

func (s *SessionServiceTestSuite) TestListSessionsMergesLiveAndArchived() {
	live := s.clone(s.stored)
	older := s.clone(s.stored)
	older.ID = "OLD001"
	older.CreatedAt = s.testTime.Add(-48 * time.Hour)
	newest := s.clone(s.stored)
	newest.ID = "NEW001"
	newest.CreatedAt = s.testTime.Add(time.Hour)

	s.mockSessionRepo.EXPECT().
		ListSessionsByAdmin(gomock.Any(), &sessionRepo.ListSessionsByAdminInput{AdminID: s.testAdminID, Limit: DefaultListLimit}).
		Return(&sessionRepo.ListSessionsByAdminOutput{Sessions: []*models.Session{newest, live}}, nil)
	s.mockArchiveRepo.EXPECT().
		ListSessions(gomock.Any(), &archive.ListSessionsInput{AdminID: s.testAdminID, Limit: DefaultListLimit}).
		Return(&archive.ListSessionsOutput{Sessions: []*models.Session{s.clone(live), older}}, nil)

	output, err := s.service.ListSessions(s.ctx, &ListSessionsInput{AdminID: s.testAdminID})
	s.Require().NoError(err)
	s.Require().Len(output.Sessions, 3)
	s.Equal("NEW001", output.Sessions[0].ID)
	s.Equal(s.testSessionID, output.Sessions[1].ID)
	s.Equal("OLD001", output.Sessions[2].ID)
}

func (s *SessionServiceTestSuite) TestListSessionsToleratesArchiveFailure() {
	s.mockSessionRepo.EXPECT().
		ListSessionsByAdmin(gomock.Any(), gomock.Any()).
		Return(&sessionRepo.ListSessionsByAdminOutput{Sessions: []*models.Session{s.stored}}, nil)
	s.mockArchiveRepo.EXPECT().
		ListSessions(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mongo unavailable"))

	output, err := s.service.ListSessions(s.ctx, &ListSessionsInput{AdminID: s.testAdminID, Limit: 1})
	s.Require().NoError(err)
	s.Len(output.Sessions, 1)
}

func (s *SessionServiceTestSuite) TestBindChannel() {
	s.expectGet().Times(2)
	s.mockSessionRepo.EXPECT().
		BindChannel(gomock.Any(), &sessionRepo.BindChannelInput{ChannelID: "channel-1", SessionID: s.testSessionID}).
		Return(nil)

	_, err := s.service.BindChannel(s.ctx, &BindChannelInput{ChannelID: "channel-1", SessionID: s.testSessionID, ActorID: s.testAdminID})
	s.Require().NoError(err)

	_, err = s.service.BindChannel(s.ctx, &BindChannelInput{ChannelID: "channel-1", SessionID: s.testSessionID, ActorID: s.testAliceID})
	s.ErrorIs(err, ErrNotAdmin)
}

func (s *SessionServiceTestSuite) TestGetSessionByChannelNotFound() {
	s.mockSessionRepo.EXPECT().
		GetSessionByChannel(gomock.Any(), &sessionRepo.GetSessionByChannelInput{ChannelID: "channel-1"}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.GetSessionByChannel(s.ctx, &GetSessionByChannelInput{ChannelID: "channel-1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestSubscribe() {
	events := make(chan *sessionRepo.Event, 1)
	events <- &sessionRepo.Event{Deleted: true}
	close(events)

	s.mockSessionRepo.EXPECT().
		Subscribe(gomock.Any(), &sessionRepo.SubscribeInput{SessionID: s.testSessionID}).
		Return(&sessionRepo.SubscribeOutput{Events: events, Close: func() error { return nil }}, nil)

	output, err := s.service.Subscribe(s.ctx, &SubscribeInput{SessionID: s.testSessionID})
	s.Require().NoError(err)

	event := <-output.Events
	s.True(event.Deleted)
	s.NoError(output.Close())
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
