package v1_test

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	v1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
	"github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection"
	selectionmock "github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection/mock"
	"github.com/cabeard21/ao-bin-dumps/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockSelection *selectionmock.MockService
	handler       *v1.Handler
	ctx           context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSelection = selectionmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{Catalog: testutils.CreateTestCatalog(s.T())})
	s.Require().NoError(err)

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		SelectionService: s.mockSelection,
		Engine:           eng,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandler() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "SelectionService: is required")
	s.Contains(err.Error(), "Engine: is required")

	_, err = v1.NewHandler(nil)
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestSelectBuild() {
	s.mockSelection.EXPECT().
		SelectBuild(s.ctx, &selection.SelectBuildInput{
			Slots: []*selection.BuildSlot{
				{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
				{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, BonusPoints: 20, TargetPower: 800, Mode: selection.ModeEfficiency},
			},
			Location: "Lymhurst",
			Persist:  true,
		}).
		Return(&selection.SelectBuildOutput{
			ID:         "sel_1",
			ItemNames:  []string{"T7_OFF_SHIELD@3", ""},
			Qualities:  []int{5, 0},
			ItemPowers: []float64{1400, 0},
			Prices:     []float64{280000, 0},
			Selections: []*albion.SlotSelection{
				{Slot: 0, RequestedItemID: "T4_OFF_SHIELD@1", ItemID: "T7_OFF_SHIELD@3", Quality: 5, ItemPower: 1400, Price: 280000, City: "Lymhurst", Strategy: albion.StrategyCheapest, Candidates: 7},
				{Slot: 1, RequestedItemID: "T4_SHOES_PLATE_HELL", Strategy: albion.StrategyEfficiency, PriceUnavailable: true},
			},
		}, nil)

	resp, err := s.handler.SelectBuild(s.ctx, &v1.SelectBuildRequest{
		Slots: []*v1.Slot{
			{ItemID: "T4_OFF_SHIELD@1", MinTier: 4, TargetPower: 1400},
			{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, BonusPoints: 20, TargetPower: 800, Mode: "efficiency"},
		},
		Location: "Lymhurst",
		Persist:  true,
	})
	s.Require().NoError(err)

	s.Equal("sel_1", resp.ID)
	s.Equal([]string{"T7_OFF_SHIELD@3", ""}, resp.ItemNames)
	s.Equal(280000.0, resp.TotalPrice)
	s.Require().Len(resp.Selections, 2)
	s.Equal("Lymhurst", resp.Selections[0].City)
	s.Equal(7, resp.Selections[0].Candidates)
	s.True(resp.Selections[1].PriceUnavailable)
	s.Equal(albion.StrategyEfficiency, resp.Selections[1].Strategy)
}

func (s *HandlerTestSuite) TestSelectBuildColumns() {
	s.mockSelection.EXPECT().
		SelectBuild(s.ctx, &selection.SelectBuildInput{
			Slots: []*selection.BuildSlot{
				{ItemID: "T4_OFF_SHIELD", MinTier: 4, BonusPoints: 10, TargetPower: -900},
				{ItemID: "T4_SHOES_PLATE_HELL", MinTier: 4, TargetPower: 750},
			},
		}).
		Return(&selection.SelectBuildOutput{
			ItemNames:  []string{"T6_OFF_SHIELD", "T4_SHOES_PLATE_HELL"},
			Qualities:  []int{1, 1},
			ItemPowers: []float64{910.5, 750},
			Prices:     []float64{1000, 2500},
		}, nil)

	resp, err := s.handler.SelectBuild(s.ctx, &v1.SelectBuildRequest{
		Items:        []string{"T4_OFF_SHIELD", "T4_SHOES_PLATE_HELL"},
		BonusPoints:  []float64{10, 0},
		MinTiers:     []int{4, 4},
		TargetPowers: []float64{-900, 750},
	})
	s.Require().NoError(err)
	s.Equal(3500.0, resp.TotalPrice)
	s.Empty(resp.Selections)
}

func (s *HandlerTestSuite) TestSelectBuildErrors() {
	testCases := []struct {
		name     string
		req      *v1.SelectBuildRequest
		setup    func()
		wantCode codes.Code
	}{
		{
			name:     "nil request",
			req:      nil,
			wantCode: codes.InvalidArgument,
		},
		{
			name: "column lengths differ",
			req: &v1.SelectBuildRequest{
				Items:        []string{"T4_OFF_SHIELD"},
				BonusPoints:  []float64{0, 0},
				MinTiers:     []int{4},
				TargetPowers: []float64{700},
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "storage missing",
			req:  &v1.SelectBuildRequest{Slots: []*v1.Slot{{ItemID: "T4_OFF_SHIELD", MinTier: 4}}, Persist: true},
			setup: func() {
				s.mockSelection.EXPECT().
					SelectBuild(gomock.Any(), gomock.Any()).
					Return(nil, errors.New(errors.CodeFailedPrecondition, "selection storage is not configured"))
			},
			wantCode: codes.FailedPrecondition,
		},
		{
			name: "market unavailable",
			req:  &v1.SelectBuildRequest{Slots: []*v1.Slot{{ItemID: "T4_OFF_SHIELD", MinTier: 4}}},
			setup: func() {
				s.mockSelection.EXPECT().
					SelectBuild(gomock.Any(), gomock.Any()).
					Return(nil, errors.WrapWithCode(context.DeadlineExceeded, errors.CodeDeadlineExceeded, "price fetch timed out"))
			},
			wantCode: codes.DeadlineExceeded,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.setup != nil {
				tc.setup()
			}

			resp, err := s.handler.SelectBuild(s.ctx, tc.req)
			s.Require().Error(err)
			s.Nil(resp)
			s.Equal(tc.wantCode, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestGetSelection() {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.mockSelection.EXPECT().
		GetSelection(s.ctx, &selection.GetSelectionInput{ID: "sel_4"}).
		Return(&selection.GetSelectionOutput{Selection: &albion.Selection{
			ID:       "sel_4",
			Location: "Martlock",
			Slots: []*albion.SlotSelection{
				{ItemID: "T5_OFF_SHIELD", Quality: 2, Price: 1500},
				{ItemID: "T4_SHOES_PLATE_HELL", Quality: 1, Price: 500},
			},
			CreatedAt: created,
			ExpiresAt: created.Add(time.Hour),
		}}, nil)

	resp, err := s.handler.GetSelection(s.ctx, &v1.GetSelectionRequest{ID: "sel_4"})
	s.Require().NoError(err)

	s.Equal("sel_4", resp.Selection.ID)
	s.Equal(2000.0, resp.Selection.TotalPrice)
	s.Equal(created.Unix(), resp.Selection.CreatedAt)
	s.Equal(created.Add(time.Hour).Unix(), resp.Selection.ExpiresAt)
	s.Len(resp.Selection.Slots, 2)
}

func (s *HandlerTestSuite) TestGetSelectionErrors() {
	_, err := s.handler.GetSelection(s.ctx, &v1.GetSelectionRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))

	s.mockSelection.EXPECT().
		GetSelection(s.ctx, &selection.GetSelectionInput{ID: "gone"}).
		Return(nil, errors.NotFound("selection gone not found"))

	_, err = s.handler.GetSelection(s.ctx, &v1.GetSelectionRequest{ID: "gone"})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestCalculateItemPower() {
	testCases := []struct {
		name      string
		req       *v1.CalculateItemPowerRequest
		wantPower float64
		wantCode  codes.Code
	}{
		{name: "base item", req: &v1.CalculateItemPowerRequest{ItemID: "T4_OFF_SHIELD", Quality: 1}, wantPower: 700},
		{name: "enchanted good quality", req: &v1.CalculateItemPowerRequest{ItemID: "T5_OFF_SHIELD@1", Quality: 2}, wantPower: 910},
		{name: "missing item id", req: &v1.CalculateItemPowerRequest{Quality: 1}, wantCode: codes.InvalidArgument},
		{name: "unknown item", req: &v1.CalculateItemPowerRequest{ItemID: "T4_MAIN_SWORD", Quality: 1}, wantCode: codes.NotFound},
		{name: "missing enchantment", req: &v1.CalculateItemPowerRequest{ItemID: "T4_SHOES_PLATE_HELL@2", Quality: 1}, wantCode: codes.DataLoss},
		{name: "unknown localized name", req: &v1.CalculateItemPowerRequest{ItemID: "Expert's Sword", Quality: 1}, wantCode: codes.NotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.handler.CalculateItemPower(s.ctx, tc.req)
			if tc.wantCode != codes.OK {
				s.Require().Error(err)
				s.Equal(tc.wantCode, status.Code(err))
				return
			}
			s.Require().NoError(err)
			s.InDelta(tc.wantPower, resp.ItemPower, 1e-9)
			s.Equal(tc.req.ItemID, resp.ItemID)
		})
	}
}

func (s *HandlerTestSuite) TestCalculateItemPowerByLocalizedName() {
	resp, err := s.handler.CalculateItemPower(s.ctx, &v1.CalculateItemPowerRequest{
		ItemID:  "Expert's Shield",
		Quality: 1,
	})
	s.Require().NoError(err)

	s.Equal("T5_OFF_SHIELD", resp.ItemID)
	s.Equal("Expert's Shield", resp.LocalizedName)
	s.InDelta(800, resp.ItemPower, 1e-9)
}

func (s *HandlerTestSuite) TestEnumerateVariantsResolvesNames() {
	resp, err := s.handler.EnumerateVariants(s.ctx, &v1.EnumerateVariantsRequest{
		ItemID:   "Adept's Shield",
		MinPower: 1400,
		MinTier:  4,
	})
	s.Require().NoError(err)
	s.Len(resp.Variants, 7)

	_, err = s.handler.EnumerateVariants(s.ctx, &v1.EnumerateVariantsRequest{
		ItemID:   "T4_OFF_SHEILD",
		MinPower: 800,
		MinTier:  4,
	})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestDeleteSelection() {
	s.mockSelection.EXPECT().
		DeleteSelection(s.ctx, &selection.DeleteSelectionInput{ID: "sel_4"}).
		Return(&selection.DeleteSelectionOutput{}, nil)

	resp, err := s.handler.DeleteSelection(s.ctx, &v1.DeleteSelectionRequest{ID: "sel_4"})
	s.Require().NoError(err)
	s.Equal("sel_4", resp.ID)
}

func (s *HandlerTestSuite) TestDeleteSelectionErrors() {
	_, err := s.handler.DeleteSelection(s.ctx, &v1.DeleteSelectionRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.handler.DeleteSelection(s.ctx, nil)
	s.Equal(codes.InvalidArgument, status.Code(err))

	s.mockSelection.EXPECT().
		DeleteSelection(s.ctx, &selection.DeleteSelectionInput{ID: "gone"}).
		Return(nil, errors.NotFound("selection gone not found"))

	_, err = s.handler.DeleteSelection(s.ctx, &v1.DeleteSelectionRequest{ID: "gone"})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestInternalErrorsAreLogged() {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(previous)

	s.mockSelection.EXPECT().
		GetSelection(s.ctx, &selection.GetSelectionInput{ID: "sel_corrupt"}).
		Return(nil, errors.Internal("failed to decode selection"))
	s.mockSelection.EXPECT().
		GetSelection(s.ctx, &selection.GetSelectionInput{ID: "gone"}).
		Return(nil, errors.NotFound("selection gone not found"))

	_, err := s.handler.GetSelection(s.ctx, &v1.GetSelectionRequest{ID: "sel_corrupt"})
	s.Equal(codes.Internal, status.Code(err))
	s.Contains(buf.String(), "failed to decode selection")

	buf.Reset()
	_, err = s.handler.GetSelection(s.ctx, &v1.GetSelectionRequest{ID: "gone"})
	s.Equal(codes.NotFound, status.Code(err))
	s.Empty(buf.String())
}

func (s *HandlerTestSuite) TestEnumerateVariants() {
	resp, err := s.handler.EnumerateVariants(s.ctx, &v1.EnumerateVariantsRequest{
		ItemID:   "T4_OFF_SHIELD@1",
		MinPower: 1400,
		MinTier:  4,
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Variants, 7)
	s.Equal(&v1.Variant{ItemID: "T7_OFF_SHIELD@3", Quality: 5}, resp.Variants[0])
	s.Equal(&v1.Variant{ItemID: "T8_OFF_SHIELD@3", Quality: 5}, resp.Variants[6])
	s.Equal(0, resp.Skipped)

	// Tiers 1-3 are absent from the catalog
	resp, err = s.handler.EnumerateVariants(s.ctx, &v1.EnumerateVariantsRequest{
		ItemID:   "T4_OFF_SHIELD",
		MinPower: -1400,
	})
	s.Require().NoError(err)
	s.Len(resp.Variants, 7)
	s.Equal(60, resp.Skipped)

	_, err = s.handler.EnumerateVariants(s.ctx, &v1.EnumerateVariantsRequest{ItemID: "T4_OFF_SHIELD", MinTier: 9})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestJSONCodecRoundTrip() {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	v1.RegisterSelectionServiceServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	client := v1.NewSelectionServiceClient(conn)

	resp, err := client.CalculateItemPower(s.ctx, &v1.CalculateItemPowerRequest{
		ItemID:      "T5_OFF_SHIELD@1",
		Quality:     1,
		BonusPoints: 100,
	})
	s.Require().NoError(err)
	s.InDelta(1005, resp.ItemPower, 1e-9)

	_, err = client.CalculateItemPower(s.ctx, &v1.CalculateItemPowerRequest{ItemID: "T4_MAIN_SWORD", Quality: 1})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
	s.True(errors.IsNotFound(errors.FromGRPCError(err)))

	s.mockSelection.EXPECT().
		GetSelection(gomock.Any(), &selection.GetSelectionInput{ID: "sel_2"}).
		Return(&selection.GetSelectionOutput{Selection: &albion.Selection{ID: "sel_2", Location: "Thetford"}}, nil)

	got, err := client.GetSelection(s.ctx, &v1.GetSelectionRequest{ID: "sel_2"})
	s.Require().NoError(err)
	s.Equal("Thetford", got.Selection.Location)

	s.mockSelection.EXPECT().
		DeleteSelection(gomock.Any(), &selection.DeleteSelectionInput{ID: "sel_2"}).
		Return(&selection.DeleteSelectionOutput{}, nil)

	deleted, err := client.DeleteSelection(s.ctx, &v1.DeleteSelectionRequest{ID: "sel_2"})
	s.Require().NoError(err)
	s.Equal("sel_2", deleted.ID)
}
