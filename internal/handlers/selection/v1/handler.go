// Package v1 serves the selection gRPC service
package v1

import (
	"context"
	"log/slog"

	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	"github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection"
)

// HandlerConfig holds dependencies for the selection handler
type HandlerConfig struct {
	SelectionService selection.Service
	Engine           engine.Engine
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.SelectionService == nil {
		vb.RequiredField("SelectionService")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	return vb.Build()
}

// Handler implements SelectionServiceServer
type Handler struct {
	selectionService selection.Service
	engine           engine.Engine
}

var _ SelectionServiceServer = (*Handler)(nil)

// NewHandler creates a new selection handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		selectionService: cfg.SelectionService,
		engine:           cfg.Engine,
	}, nil
}

// SelectBuild picks one market variant per slot
func (h *Handler) SelectBuild(
	ctx context.Context,
	req *SelectBuildRequest,
) (*SelectBuildResponse, error) {
	if req == nil {
		return nil, grpcError(errors.InvalidArgument("request is required"))
	}

	slots, err := buildSlots(req)
	if err != nil {
		return nil, grpcError(err)
	}

	out, err := h.selectionService.SelectBuild(ctx, &selection.SelectBuildInput{
		Slots:    slots,
		Location: req.Location,
		Persist:  req.Persist,
	})
	if err != nil {
		return nil, grpcError(err)
	}

	resp := &SelectBuildResponse{
		ID:         out.ID,
		ItemNames:  out.ItemNames,
		Qualities:  out.Qualities,
		ItemPowers: out.ItemPowers,
		Prices:     out.Prices,
		Selections: convertSlotSelections(out.Selections),
	}
	for _, p := range out.Prices {
		resp.TotalPrice += p
	}

	return resp, nil
}

// GetSelection returns a persisted selection by id
func (h *Handler) GetSelection(
	ctx context.Context,
	req *GetSelectionRequest,
) (*GetSelectionResponse, error) {
	if req == nil || req.ID == "" {
		return nil, grpcError(errors.InvalidArgument("id is required"))
	}

	out, err := h.selectionService.GetSelection(ctx, &selection.GetSelectionInput{ID: req.ID})
	if err != nil {
		return nil, grpcError(err)
	}

	return &GetSelectionResponse{Selection: convertSelection(out.Selection)}, nil
}

// DeleteSelection removes a persisted selection
func (h *Handler) DeleteSelection(
	ctx context.Context,
	req *DeleteSelectionRequest,
) (*DeleteSelectionResponse, error) {
	if req == nil || req.ID == "" {
		return nil, grpcError(errors.InvalidArgument("id is required"))
	}

	if _, err := h.selectionService.DeleteSelection(ctx, &selection.DeleteSelectionInput{ID: req.ID}); err != nil {
		return nil, grpcError(err)
	}

	return &DeleteSelectionResponse{ID: req.ID}, nil
}

// CalculateItemPower computes the item power of one item at one quality
func (h *Handler) CalculateItemPower(
	_ context.Context,
	req *CalculateItemPowerRequest,
) (*CalculateItemPowerResponse, error) {
	if req == nil || req.ItemID == "" {
		return nil, grpcError(errors.InvalidArgument("item_id is required"))
	}

	item, err := h.engine.ResolveItem(&engine.ResolveItemInput{Name: req.ItemID})
	if err != nil {
		return nil, grpcError(err)
	}

	out, err := h.engine.CalculateItemPower(&engine.CalculateItemPowerInput{
		ItemID:      item.ItemID,
		Quality:     req.Quality,
		BonusPoints: req.BonusPoints,
	})
	if err != nil {
		return nil, grpcError(err)
	}

	return &CalculateItemPowerResponse{
		ItemID:        item.ItemID,
		LocalizedName: item.LocalizedName,
		Quality:       req.Quality,
		ItemPower:     out.ItemPower,
	}, nil
}

// EnumerateVariants lists every variant of an item type at or above a power floor
func (h *Handler) EnumerateVariants(
	_ context.Context,
	req *EnumerateVariantsRequest,
) (*EnumerateVariantsResponse, error) {
	if req == nil || req.ItemID == "" {
		return nil, grpcError(errors.InvalidArgument("item_id is required"))
	}

	minTier := req.MinTier
	if minTier == 0 {
		minTier = albion.MinTier
	}

	item, err := h.engine.ResolveItem(&engine.ResolveItemInput{Name: req.ItemID})
	if err != nil {
		return nil, grpcError(err)
	}

	out, err := h.engine.EnumerateAbovePower(&engine.EnumerateAbovePowerInput{
		BaseItemID:  item.ItemID,
		MinPower:    req.MinPower,
		BonusPoints: req.BonusPoints,
		MinTier:     minTier,
	})
	if err != nil {
		return nil, grpcError(err)
	}
	if out.UnknownItem() {
		return nil, grpcError(errors.ItemNotFound(item.ItemID))
	}

	variants := make([]*Variant, out.Len())
	for i := range out.ItemIDs {
		variants[i] = &Variant{ItemID: out.ItemIDs[i], Quality: out.Qualities[i]}
	}

	return &EnumerateVariantsResponse{
		Variants: variants,
		Skipped:  len(out.Skipped),
	}, nil
}

// grpcError converts err to a gRPC status. Internal errors are logged here
// since the caller only sees the status message.
func grpcError(err error) error {
	if errors.IsInternal(err) {
		slog.Error("Internal error serving request", "error", err)
	}
	return errors.ToGRPCError(err)
}

func buildSlots(req *SelectBuildRequest) ([]*selection.BuildSlot, error) {
	if len(req.Slots) == 0 {
		return selection.SlotsFromColumns(req.Items, req.BonusPoints, req.MinTiers, req.TargetPowers)
	}

	slots := make([]*selection.BuildSlot, len(req.Slots))
	for i, s := range req.Slots {
		if s == nil {
			continue
		}
		slots[i] = &selection.BuildSlot{
			ItemID:      s.ItemID,
			BonusPoints: s.BonusPoints,
			MinTier:     s.MinTier,
			TargetPower: s.TargetPower,
			Mode:        selection.Mode(s.Mode),
		}
	}
	return slots, nil
}

func convertSlotSelections(in []*albion.SlotSelection) []*SlotSelection {
	out := make([]*SlotSelection, 0, len(in))
	for _, s := range in {
		if s == nil {
			continue
		}
		out = append(out, &SlotSelection{
			Slot:             s.Slot,
			RequestedItemID:  s.RequestedItemID,
			ItemID:           s.ItemID,
			Quality:          s.Quality,
			ItemPower:        s.ItemPower,
			Price:            s.Price,
			City:             s.City,
			Strategy:         s.Strategy,
			PriceUnavailable: s.PriceUnavailable,
			Candidates:       s.Candidates,
		})
	}
	return out
}

func convertSelection(s *albion.Selection) *Selection {
	if s == nil {
		return nil
	}

	out := &Selection{
		ID:         s.ID,
		Location:   s.Location,
		Slots:      convertSlotSelections(s.Slots),
		TotalPrice: s.TotalPrice(),
		CreatedAt:  s.CreatedAt.Unix(),
	}
	if !s.ExpiresAt.IsZero() {
		out.ExpiresAt = s.ExpiresAt.Unix()
	}
	return out
}
