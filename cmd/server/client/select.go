package client

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var (
	selectItems    []string
	selectMinTiers []int
	selectTargets  []float64
	selectBonus    []float64
	selectLocation string
	selectPersist  bool
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick a market variant for every slot of a build",
	Long: `Pick the cheapest variant at or above a target item power for every slot.
A negative target picks the best item power per silver instead. Examples:

  select --item T4_OFF_SHIELD@1 --target 1400 --min-tier 4
  select --item T4_OFF_SHIELD,T4_SHOES_PLATE_HELL --target -1200,800 --bonus 120,0
  select --item "Expert's Shield" --target 1100 --min-tier 5`,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringSliceVar(&selectItems, "item", nil, "Item id or localized item name per slot")
	selectCmd.Flags().IntSliceVar(&selectMinTiers, "min-tier", nil, "Lowest tier per slot (one value applies to all, default 4)")
	selectCmd.Flags().Float64SliceVar(&selectTargets, "target", nil, "Item power floor per slot (one value applies to all)")
	selectCmd.Flags().Float64SliceVar(&selectBonus, "bonus", nil, "Mastery bonus points per slot (one value applies to all, default 0)")
	selectCmd.Flags().StringVar(&selectLocation, "location", "", "Preferred market city")
	selectCmd.Flags().BoolVar(&selectPersist, "persist", false, "Store the selection on the server")
	_ = selectCmd.MarkFlagRequired("item")
}

func runSelect(_ *cobra.Command, _ []string) error {
	req, err := buildSelectRequest(selectItems, selectMinTiers, selectTargets, selectBonus)
	if err != nil {
		return err
	}
	req.Location = selectLocation
	req.Persist = selectPersist

	client, cleanup, err := createSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.SelectBuild(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to select build: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	printSlots(resp.Selections)
	fmt.Printf("\nTotal: %.0f silver\n", resp.TotalPrice)
	if resp.ID != "" {
		fmt.Printf("Selection ID: %s\n", resp.ID)
	}
	return nil
}

// buildSelectRequest expands single-value columns to one value per item
func buildSelectRequest(items []string, minTiers []int, targets, bonus []float64) (*selectionv1.SelectBuildRequest, error) {
	n := len(items)
	if n == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}

	tiers, err := expand("min-tier", minTiers, n, 4)
	if err != nil {
		return nil, err
	}
	floors, err := expand("target", targets, n, 0)
	if err != nil {
		return nil, err
	}
	points, err := expand("bonus", bonus, n, 0)
	if err != nil {
		return nil, err
	}

	return &selectionv1.SelectBuildRequest{
		Items:        items,
		MinTiers:     tiers,
		TargetPowers: floors,
		BonusPoints:  points,
	}, nil
}

func expand[T any](flag string, values []T, n int, fallback T) ([]T, error) {
	switch len(values) {
	case n:
		return values, nil
	case 0, 1:
		fill := fallback
		if len(values) == 1 {
			fill = values[0]
		}
		out := make([]T, n)
		for i := range out {
			out[i] = fill
		}
		return out, nil
	default:
		return nil, fmt.Errorf("--%s has %d values for %d items", flag, len(values), n)
	}
}

func printSlots(slots []*selectionv1.SlotSelection) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tREQUESTED\tITEM\tQUALITY\tPOWER\tPRICE\tCITY\tSTRATEGY")
	for _, s := range slots {
		item := s.ItemID
		if s.PriceUnavailable {
			item += " (no price)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.1f\t%.0f\t%s\t%s\n",
			s.Slot, s.RequestedItemID, item, s.Quality, s.ItemPower, s.Price, s.City, s.Strategy)
	}
	_ = w.Flush()
}
