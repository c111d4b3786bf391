package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	"github.com/wrenfall/rpg-core/internal/testutils"
)

type RedisRepositorySuite struct {
	suite.Suite

	ctx     context.Context
	clock   *clock.Fake
	repo    Repository
	cleanup func()
}

func (s *RedisRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFake(time.Date(2026, 7, 4, 16, 30, 0, 0, time.UTC))

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := NewRedisRepository(&Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositorySuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func snapshotFixture(sessionID string) *SessionSnapshot {
	return &SessionSnapshot{
		SessionID: sessionID,
		Character: &entities.Character{
			ID:      "char_1",
			Name:    "Brakka",
			ClassID: "warrior",
			Level:   1,
			Scores: entities.AbilityScores{
				Strength: 15, Dexterity: 10, Intelligence: 8,
				Wisdom: 10, Charisma: 8, Constitution: 14,
			},
			MaxHP:     60,
			CurrentHP: 48,
			Gold:      117,
			Abilities: []string{"attack", "defend", "power_strike"},
		},
		Difficulty: &entities.DifficultyState{
			BaseDifficulty:      100,
			Difficulty:          103,
			PerformanceScore:    0.9,
			SkillEstimate:       0.95,
			Flow:                entities.FlowOptimal,
			EncountersSeen:      4,
			EncountersSinceRare: 2,
			LastAdjustedAt:      time.Date(2026, 7, 4, 16, 0, 0, 0, time.UTC),
			RecentScores:        []float64{1.0, 0.8, 0.9, 0.9},
			RecentWins:          []bool{true, false, true, true},
			LastRewardClass:     entities.RewardCommon,
			RewardStreak:        2,
		},
	}
}

func (s *RedisRepositorySuite) TestSaveAndGetRoundTrip() {
	fixture := snapshotFixture("session_1")

	saveOut, err := s.repo.Save(s.ctx, &SaveInput{Snapshot: fixture})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), saveOut.Snapshot.SavedAt)

	getOut, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session_1"})
	s.Require().NoError(err)

	// Every field survives the round trip exactly.
	s.Equal(saveOut.Snapshot, getOut.Snapshot)
	s.Equal(fixture.Character, getOut.Snapshot.Character)
	s.Equal(fixture.Difficulty, getOut.Snapshot.Difficulty)
}

func (s *RedisRepositorySuite) TestSaveReplacesPrevious() {
	fixture := snapshotFixture("session_1")
	_, err := s.repo.Save(s.ctx, &SaveInput{Snapshot: fixture})
	s.Require().NoError(err)

	fixture.Character.Gold = 250
	_, err = s.repo.Save(s.ctx, &SaveInput{Snapshot: fixture})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Equal(250, getOut.Snapshot.Character.Gold)

	listOut, err := s.repo.ListIDs(s.ctx, &ListIDsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"session_1"}, listOut.SessionIDs)
}

func (s *RedisRepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session_404"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositorySuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &SaveInput{Snapshot: snapshotFixture("session_1")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &DeleteInput{SessionID: "session_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &GetInput{SessionID: "session_1"})
	s.True(errors.IsNotFound(err))

	listOut, err := s.repo.ListIDs(s.ctx, &ListIDsInput{})
	s.Require().NoError(err)
	s.Empty(listOut.SessionIDs)
}

func (s *RedisRepositorySuite) TestListIDs() {
	for _, id := range []string{"session_1", "session_2", "session_3"} {
		_, err := s.repo.Save(s.ctx, &SaveInput{Snapshot: snapshotFixture(id)})
		s.Require().NoError(err)
	}

	listOut, err := s.repo.ListIDs(s.ctx, &ListIDsInput{})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"session_1", "session_2", "session_3"}, listOut.SessionIDs)
}

func (s *RedisRepositorySuite) TestValidation() {
	_, err := s.repo.Save(s.ctx, &SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &SaveInput{Snapshot: &SessionSnapshot{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, &DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositorySuite))
}

func TestGetCorruptedPayload(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithSetup(t, func(mr *miniredis.Miniredis) {
		mr.Set("session:session_1", "{not json")
	})
	defer cleanup()

	repo, err := NewRedisRepository(&Config{
		Client: client,
		Clock:  clock.New(),
	})
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), &GetInput{SessionID: "session_1"})
	require.Error(t, err)
	require.False(t, errors.IsNotFound(err))
}
