package selection_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	"github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection"
	"github.com/cabeard21/ao-bin-dumps/internal/pkg/idgen"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/selections"
	selectionsmock "github.com/cabeard21/ao-bin-dumps/internal/repositories/selections/mock"
	"github.com/cabeard21/ao-bin-dumps/internal/services/pricing"
	pricingmock "github.com/cabeard21/ao-bin-dumps/internal/services/pricing/mock"
	"github.com/cabeard21/ao-bin-dumps/internal/testutils"
)

const testLocation = "Martlock"

// Variants of OFF_SHIELD at or above 1400 item power from tier 4
var (
	shieldIDs = []string{
		"T7_OFF_SHIELD@3",
		"T8_OFF_SHIELD@2",
		"T8_OFF_SHIELD@3",
		"T8_OFF_SHIELD@3",
		"T8_OFF_SHIELD@3",
		"T8_OFF_SHIELD@3",
		"T8_OFF_SHIELD@3",
	}
	shieldQualities = []int{5, 5, 1, 2, 3, 4, 5}
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockFetcher  *pricingmock.MockFetcher
	mockRepo     *selectionsmock.MockRepository
	engine       engine.Engine
	orchestrator selection.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockFetcher = pricingmock.NewMockFetcher(s.ctrl)
	s.mockRepo = selectionsmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{Catalog: testutils.CreateTestCatalog(s.T())})
	s.Require().NoError(err)
	s.engine = eng

	s.orchestrator = s.newOrchestrator(4)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(maxConcurrent int) selection.Service {
	orch, err := selection.NewOrchestrator(&selection.Config{
		Engine:             s.engine,
		Fetcher:            s.mockFetcher,
		SelectionRepo:      s.mockRepo,
		IDGenerator:        idgen.NewSequential("sel"),
		DefaultLocation:    testLocation,
		MaxConcurrentSlots: maxConcurrent,
		SelectionTTL:       time.Hour,
	})
	s.Require().NoError(err)
	return orch
}

func quote(itemID string, quality int, price float64, city string) *albion.PriceQuote {
	return &albion.PriceQuote{ItemID: itemID, Quality: quality, Price: price, City: city, Age: time.Hour}
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := selection.NewOrchestrator(&selection.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Engine: is required")
	s.Contains(err.Error(), "Fetcher: is required")

	_, err = selection.NewOrchestrator(&selection.Config{
		Engine:             s.engine,
		Fetcher:            s.mockFetcher,
		MaxConcurrentSlots: -1,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "MaxConcurrentSlots")
}

func (s *OrchestratorTestSuite) TestSelectBuildCheapest() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), &pricing.FetchPricesInput{
			ItemIDs:   shieldIDs,
			Qualities: shieldQualities,
			Location:  testLocation,
		}).
		Return(&pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
			quote("T8_OFF_SHIELD@3", 1, 300000, "Lymhurst"),
			quote("T7_OFF_SHIELD@3", 5, 280000, "Martlock"),
			quote("T8_OFF_SHIELD@2", 5, 280000, "Caerleon"),
		}}, nil)

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"T7_OFF_SHIELD@3"}, out.ItemNames)
	s.Equal([]int{5}, out.Qualities)
	s.Equal([]float64{1400}, out.ItemPowers)
	s.Equal([]float64{280000}, out.Prices)
	s.Empty(out.ID)

	s.Require().Len(out.Selections, 1)
	slot := out.Selections[0]
	s.Equal("T4_OFF_SHIELD@1", slot.RequestedItemID)
	s.Equal("Martlock", slot.City)
	s.Equal(albion.StrategyCheapest, slot.Strategy)
	s.Equal(7, slot.Candidates)
	s.False(slot.PriceUnavailable)
}

func (s *OrchestratorTestSuite) TestSelectBuildEfficiency() {
	testCases := []struct {
		name      string
		slot      *selection.BuildSlot
		wantItem  string
		wantPower float64
		wantPrice float64
	}{
		{
			name:      "negative target adopts better ratio within premium",
			slot:      &selection.BuildSlot{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: -1400},
			wantItem:  "T8_OFF_SHIELD@3",
			wantPower: 1500,
			wantPrice: 105000,
		},
		{
			name:      "explicit mode with positive target",
			slot:      &selection.BuildSlot{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400, Mode: selection.ModeEfficiency},
			wantItem:  "T8_OFF_SHIELD@3",
			wantPower: 1500,
			wantPrice: 105000,
		},
		{
			name:      "explicit cheapest ignores negative target",
			slot:      &selection.BuildSlot{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: -1400, Mode: selection.ModeCheapest},
			wantItem:  "T7_OFF_SHIELD@3",
			wantPower: 1400,
			wantPrice: 100000,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockFetcher.EXPECT().
				FetchPrices(gomock.Any(), gomock.Any()).
				Return(&pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
					quote("T7_OFF_SHIELD@3", 5, 100000, testLocation),
					quote("T8_OFF_SHIELD@3", 5, 105000, testLocation),
				}}, nil)

			out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
				Slots: []*selection.BuildSlot{tc.slot},
			})
			s.Require().NoError(err)

			s.Equal([]string{tc.wantItem}, out.ItemNames)
			s.Equal([]int{5}, out.Qualities)
			s.Equal([]float64{tc.wantPower}, out.ItemPowers)
			s.Equal([]float64{tc.wantPrice}, out.Prices)
		})
	}
}

func (s *OrchestratorTestSuite) TestSelectBuildRecomputesPowerWithBonus() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(&pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
			quote("T5_OFF_SHIELD@1", 5, 42000, testLocation),
		}}, nil)

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T5_OFF_SHIELD", MinTier: 5, BonusPoints: 100, TargetPower: 1100},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"T5_OFF_SHIELD@1"}, out.ItemNames)
	s.InDelta(1105, out.ItemPowers[0], 1e-9)
}

func (s *OrchestratorTestSuite) TestSelectBuildDegradesWithoutPrices() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(&pricing.FetchPricesOutput{Aborted: true}, nil)

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
		},
		Location: "Caerleon",
	})
	s.Require().NoError(err)

	s.Equal([]string{"T8_OFF_SHIELD@3"}, out.ItemNames)
	s.Equal([]int{0}, out.Qualities)
	s.Equal([]float64{0}, out.ItemPowers)
	s.Equal([]float64{0}, out.Prices)
	s.True(out.Selections[0].PriceUnavailable)
}

func (s *OrchestratorTestSuite) TestSelectBuildNothingQualifies() {
	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD", MinTier: 4, TargetPower: 5000},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{""}, out.ItemNames)
	s.Equal([]int{0}, out.Qualities)
	s.Equal([]float64{0}, out.ItemPowers)
	s.Equal([]float64{0}, out.Prices)
	s.True(out.Selections[0].PriceUnavailable)
	s.Equal(0, out.Selections[0].Candidates)
}

func (s *OrchestratorTestSuite) TestSelectBuildUnknownItemType() {
	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD", MinTier: 4, TargetPower: 5000},
			{ItemID: "T4_OFF_SHEILD", MinTier: 4, TargetPower: 800},
		},
	})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsNotFound(err))
	s.True(errors.IsCatalogDefect(err))
	s.Contains(err.Error(), "slot 1 (T4_OFF_SHEILD)")
}

func (s *OrchestratorTestSuite) TestSelectBuildMissingEnchantmentsStillDegrade() {
	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, TargetPower: 5000},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{""}, out.ItemNames)
	s.True(out.Selections[0].PriceUnavailable)
}

func (s *OrchestratorTestSuite) TestSelectBuildLocalizedName() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *pricing.FetchPricesInput) (*pricing.FetchPricesOutput, error) {
			s.Equal("T5_OFF_SHIELD@1", input.ItemIDs[0])
			s.Equal(5, input.Qualities[0])
			return &pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
				quote("T5_OFF_SHIELD@1", 5, 42000, testLocation),
			}}, nil
		})

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "Expert's Shield", MinTier: 5, BonusPoints: 100, TargetPower: 1100},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"T5_OFF_SHIELD@1"}, out.ItemNames)
	s.InDelta(1105, out.ItemPowers[0], 1e-9)
	s.Equal("Expert's Shield", out.Selections[0].RequestedItemID)
}

func (s *OrchestratorTestSuite) TestSelectBuildDropsUnrequestedQuotes() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(&pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
			quote("T4_OFF_SHIELD", 1, 10, testLocation),
			quote("T8_OFF_SHIELD@3", 1, 300000, testLocation),
		}}, nil)

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"T8_OFF_SHIELD@3"}, out.ItemNames)
	s.Equal([]int{1}, out.Qualities)
	s.Equal([]float64{1400}, out.ItemPowers)
	s.Equal([]float64{300000}, out.Prices)
}

func (s *OrchestratorTestSuite) TestSelectBuildKeepsSlotOrder() {
	orch := s.newOrchestrator(1)

	var mu sync.Mutex
	var order []string
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *pricing.FetchPricesInput) (*pricing.FetchPricesOutput, error) {
			mu.Lock()
			order = append(order, input.ItemIDs[0])
			mu.Unlock()

			s.Equal(testLocation, input.Location)
			return &pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
				quote(input.ItemIDs[0], input.Qualities[0], 1000, testLocation),
			}}, nil
		}).
		Times(3)

	out, err := orch.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
			{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, TargetPower: 0},
			{ItemID: "T8_OFF_SHIELD", MinTier: 6, TargetPower: -900},
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"T7_OFF_SHIELD@3", "T4_SHOES_PLATE_HELL", "T6_OFF_SHIELD"}, order)
	s.Equal([]string{"T7_OFF_SHIELD@3", "T4_SHOES_PLATE_HELL", "T6_OFF_SHIELD"}, out.ItemNames)
	s.Equal([]int{5, 1, 1}, out.Qualities)
	s.Equal([]float64{1400, 750, 900}, out.ItemPowers)
	for i, sel := range out.Selections {
		s.Equal(i, sel.Slot)
	}
	s.Equal(albion.StrategyEfficiency, out.Selections[2].Strategy)
}

func (s *OrchestratorTestSuite) TestSelectBuildPersists() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(&pricing.FetchPricesOutput{Quotes: []*albion.PriceQuote{
			quote("T4_SHOES_PLATE_HELL", 2, 9000, testLocation),
		}}, nil)

	s.mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input selections.CreateInput) (*selections.CreateOutput, error) {
			s.Equal("sel_1", input.Selection.ID)
			s.Equal(testLocation, input.Selection.Location)
			s.Equal(time.Hour, input.TTL)
			s.Require().Len(input.Selection.Slots, 1)
			s.Equal("T4_SHOES_PLATE_HELL", input.Selection.Slots[0].ItemID)
			return &selections.CreateOutput{Selection: input.Selection}, nil
		})

	out, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{
			{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, TargetPower: 760},
		},
		Persist: true,
	})
	s.Require().NoError(err)
	s.Equal("sel_1", out.ID)
	s.Equal([]float64{760}, out.ItemPowers)
}

func (s *OrchestratorTestSuite) TestSelectBuildPersistWithoutStorage() {
	orch, err := selection.NewOrchestrator(&selection.Config{
		Engine:  s.engine,
		Fetcher: s.mockFetcher,
	})
	s.Require().NoError(err)

	_, err = orch.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots:   []*selection.BuildSlot{{ItemID: "T4_OFF_SHIELD", MinTier: 4}},
		Persist: true,
	})
	s.Require().Error(err)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestSelectBuildValidation() {
	testCases := []struct {
		name    string
		input   *selection.SelectBuildInput
		wantMsg string
	}{
		{name: "nil input", input: nil, wantMsg: "input is required"},
		{name: "no slots", input: &selection.SelectBuildInput{}, wantMsg: "Slots"},
		{
			name:    "bad item id",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{{ItemID: "SHIELD", MinTier: 4}}},
			wantMsg: "is not an item id or item name",
		},
		{
			name:    "unknown localized name",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{{ItemID: "Expert's Sword", MinTier: 4}}},
			wantMsg: "is not an item id or item name",
		},
		{
			name:    "min tier out of range",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{{ItemID: "T4_OFF_SHIELD", MinTier: 0}}},
			wantMsg: "MinTier: must be at least 1",
		},
		{
			name:    "negative bonus",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{{ItemID: "T4_OFF_SHIELD", MinTier: 4, BonusPoints: -1}}},
			wantMsg: "BonusPoints: must be at least 0",
		},
		{
			name:    "unknown mode",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{{ItemID: "T4_OFF_SHIELD", MinTier: 4, Mode: "greedy"}}},
			wantMsg: "must be one of",
		},
		{
			name:    "nil slot",
			input:   &selection.SelectBuildInput{Slots: []*selection.BuildSlot{nil}},
			wantMsg: "is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.SelectBuild(s.ctx, tc.input)
			s.Require().Error(err)
			s.Nil(out)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantMsg)
		})
	}
}

func (s *OrchestratorTestSuite) TestSelectBuildFetchError() {
	s.mockFetcher.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any()).
		Return(&pricing.FetchPricesOutput{}, errors.WrapWithCode(context.Canceled, errors.CodeCanceled, "price fetch canceled"))

	_, err := s.orchestrator.SelectBuild(s.ctx, &selection.SelectBuildInput{
		Slots: []*selection.BuildSlot{{ItemID: "T4_OFF_SHIELD", MinTier: 4, TargetPower: 700}},
	})
	s.Require().Error(err)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
	s.ErrorIs(err, context.Canceled)
}

func (s *OrchestratorTestSuite) TestGetSelection() {
	stored := &albion.Selection{ID: "sel_9", Location: testLocation}
	s.mockRepo.EXPECT().
		Get(gomock.Any(), selections.GetInput{ID: "sel_9"}).
		Return(&selections.GetOutput{Selection: stored}, nil)

	out, err := s.orchestrator.GetSelection(s.ctx, &selection.GetSelectionInput{ID: "sel_9"})
	s.Require().NoError(err)
	s.Same(stored, out.Selection)
}

func (s *OrchestratorTestSuite) TestGetSelectionErrors() {
	s.mockRepo.EXPECT().
		Get(gomock.Any(), selections.GetInput{ID: "missing"}).
		Return(nil, errors.NotFoundf("selection missing not found"))

	_, err := s.orchestrator.GetSelection(s.ctx, &selection.GetSelectionInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetSelection(s.ctx, &selection.GetSelectionInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteSelection() {
	s.mockRepo.EXPECT().
		Delete(gomock.Any(), selections.DeleteInput{ID: "sel_9"}).
		Return(&selections.DeleteOutput{}, nil)

	out, err := s.orchestrator.DeleteSelection(s.ctx, &selection.DeleteSelectionInput{ID: "sel_9"})
	s.Require().NoError(err)
	s.NotNil(out)
}

func (s *OrchestratorTestSuite) TestDeleteSelectionErrors() {
	s.mockRepo.EXPECT().
		Delete(gomock.Any(), selections.DeleteInput{ID: "missing"}).
		Return(nil, errors.NotFoundf("selection missing not found"))

	_, err := s.orchestrator.DeleteSelection(s.ctx, &selection.DeleteSelectionInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.DeleteSelection(s.ctx, &selection.DeleteSelectionInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	orch, err := selection.NewOrchestrator(&selection.Config{Engine: s.engine, Fetcher: s.mockFetcher})
	s.Require().NoError(err)
	_, err = orch.DeleteSelection(s.ctx, &selection.DeleteSelectionInput{ID: "sel_9"})
	s.Require().Error(err)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}
