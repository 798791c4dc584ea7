package selections_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	mockclock "github.com/cabeard21/ao-bin-dumps/internal/pkg/clock/mock"
	"github.com/cabeard21/ao-bin-dumps/internal/redis"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/selections"
	"github.com/cabeard21/ao-bin-dumps/internal/testutils"
)

const testSelectionID = "sel_123"

type RedisSelectionsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockClock *mockclock.MockClock
	client    redis.Client
	mr        *miniredis.Miniredis
	repo      selections.Repository
	ctx       context.Context
	now       time.Time
}

func TestRedisSelectionsSuite(t *testing.T) {
	suite.Run(t, new(RedisSelectionsTestSuite))
}

func (s *RedisSelectionsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.client, s.mr = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	repo, err := selections.NewRedisRepository(&selections.Config{
		Client: s.client,
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisSelectionsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RedisSelectionsTestSuite) testSelection() *albion.Selection {
	return &albion.Selection{
		ID:       testSelectionID,
		Location: "Martlock",
		Slots: []*albion.SlotSelection{
			{
				Slot:            0,
				RequestedItemID: "T4_OFF_SHIELD@1",
				ItemID:          "T7_OFF_SHIELD@3",
				Quality:         5,
				ItemPower:       1400,
				Price:           250000,
				City:            "Martlock",
				Strategy:        albion.StrategyCheapest,
				Candidates:      7,
			},
			{
				Slot:             1,
				RequestedItemID:  "T4_SHOES_PLATE_HELL",
				ItemID:           "T8_SHOES_PLATE_HELL@3",
				Strategy:         albion.StrategyEfficiency,
				PriceUnavailable: true,
			},
		},
	}
}

func (s *RedisSelectionsTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name   string
		config *selections.Config
		errMsg string
	}{
		{name: "nil config", config: nil, errMsg: "config cannot be nil"},
		{name: "nil client", config: &selections.Config{Clock: s.mockClock}, errMsg: "redis client is required"},
		{name: "nil clock", config: &selections.Config{Client: s.client}, errMsg: "clock is required"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := selections.NewRedisRepository(tc.config)
			s.Require().Error(err)
			s.Nil(repo)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *RedisSelectionsTestSuite) TestCreateAndGet() {
	s.mockClock.EXPECT().Now().Return(s.now).Times(2)

	created, err := s.repo.Create(s.ctx, selections.CreateInput{
		Selection: s.testSelection(),
		TTL:       time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(s.now, created.Selection.CreatedAt)
	s.Equal(s.now.Add(time.Hour), created.Selection.ExpiresAt)

	s.True(s.mr.Exists(selections.GetKey(testSelectionID)))
	s.Equal(time.Hour, s.mr.TTL(selections.GetKey(testSelectionID)))

	got, err := s.repo.Get(s.ctx, selections.GetInput{ID: testSelectionID})
	s.Require().NoError(err)
	s.Equal(created.Selection.ID, got.Selection.ID)
	s.Equal("Martlock", got.Selection.Location)
	s.Require().Len(got.Selection.Slots, 2)
	s.Equal(*created.Selection.Slots[0], *got.Selection.Slots[0])
	s.True(got.Selection.Slots[1].PriceUnavailable)
	s.Equal(250000.0, got.Selection.TotalPrice())
}

func (s *RedisSelectionsTestSuite) TestCreateDefaultTTL() {
	s.mockClock.EXPECT().Now().Return(s.now)

	_, err := s.repo.Create(s.ctx, selections.CreateInput{Selection: s.testSelection()})
	s.Require().NoError(err)
	s.Equal(selections.DefaultTTL, s.mr.TTL(selections.GetKey(testSelectionID)))
}

func (s *RedisSelectionsTestSuite) TestCreateInvalidInput() {
	_, err := s.repo.Create(s.ctx, selections.CreateInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, selections.CreateInput{Selection: &albion.Selection{}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisSelectionsTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, selections.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, selections.GetInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisSelectionsTestSuite) TestGetAfterTTL() {
	s.mockClock.EXPECT().Now().Return(s.now)

	_, err := s.repo.Create(s.ctx, selections.CreateInput{Selection: s.testSelection(), TTL: time.Minute})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, selections.GetInput{ID: testSelectionID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisSelectionsTestSuite) TestGetExpiredByClock() {
	gomock.InOrder(
		s.mockClock.EXPECT().Now().Return(s.now),
		s.mockClock.EXPECT().Now().Return(s.now.Add(2*time.Hour)),
	)

	_, err := s.repo.Create(s.ctx, selections.CreateInput{Selection: s.testSelection(), TTL: time.Hour})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, selections.GetInput{ID: testSelectionID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists(selections.GetKey(testSelectionID)))
}

func (s *RedisSelectionsTestSuite) TestDelete() {
	s.mockClock.EXPECT().Now().Return(s.now)

	_, err := s.repo.Create(s.ctx, selections.CreateInput{Selection: s.testSelection()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, selections.DeleteInput{ID: testSelectionID})
	s.Require().NoError(err)
	s.False(s.mr.Exists(selections.GetKey(testSelectionID)))

	_, err = s.repo.Delete(s.ctx, selections.DeleteInput{ID: testSelectionID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
