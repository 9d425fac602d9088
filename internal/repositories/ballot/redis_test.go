package ballot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestRecordVoteOncePerRound() {
	input := &RecordVoteInput{SessionID: "ABC123", RoundID: "0", ParticipantID: "alice"}

	output, err := s.repo.RecordVote(s.ctx, input)
	s.Require().NoError(err)
	s.True(output.Recorded)
	s.Equal(DefaultBallotTTL, s.mr.TTL("ballot:ABC123:0"))

	output, err = s.repo.RecordVote(s.ctx, input)
	s.Require().NoError(err)
	s.False(output.Recorded)

	// a new round starts fresh
	output, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{SessionID: "ABC123", RoundID: "1", ParticipantID: "alice"})
	s.Require().NoError(err)
	s.True(output.Recorded)
}

func (s *RedisRepositoryTestSuite) TestReleaseVote() {
	input := &RecordVoteInput{SessionID: "ABC123", RoundID: "0", ParticipantID: "alice"}
	_, err := s.repo.RecordVote(s.ctx, input)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ReleaseVote(s.ctx, &ReleaseVoteInput{SessionID: "ABC123", RoundID: "0", ParticipantID: "alice"}))

	output, err := s.repo.RecordVote(s.ctx, input)
	s.Require().NoError(err)
	s.True(output.Recorded)
}

func (s *RedisRepositoryTestSuite) TestClearSession() {
	for _, round := range []string{"-1", "0", "1"} {
		_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{SessionID: "ABC123", RoundID: round, ParticipantID: "alice"})
		s.Require().NoError(err)
	}
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{SessionID: "OTHER1", RoundID: "0", ParticipantID: "alice"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ClearSession(s.ctx, &ClearSessionInput{SessionID: "ABC123"}))

	s.False(s.mr.Exists("ballot:ABC123:0"))
	s.False(s.mr.Exists("ballot:ABC123:-1"))
	s.True(s.mr.Exists("ballot:OTHER1:0"))

	// nothing left to clear is fine
	s.NoError(s.repo.ClearSession(s.ctx, &ClearSessionInput{SessionID: "ABC123"}))
}

func (s *RedisRepositoryTestSuite) TestBallotsExpire() {
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{SessionID: "ABC123", RoundID: "0", ParticipantID: "alice"})
	s.Require().NoError(err)

	s.mr.FastForward(DefaultBallotTTL + time.Minute)
	s.False(s.mr.Exists("ballot:ABC123:0"))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{SessionID: "ABC123"})
	s.Error(err)
	s.Error(s.repo.ReleaseVote(s.ctx, nil))
	s.Error(s.repo.ClearSession(s.ctx, &ClearSessionInput{}))
}
