package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var (
	variantsBonus   float64
	variantsMinTier int
)

var variantsCmd = &cobra.Command{
	Use:   "variants [item-id] [min-power]",
	Short: "List the variants of an item at or above an item power",
	Args:  cobra.ExactArgs(2),
	RunE:  runVariants,
}

func init() {
	variantsCmd.Flags().Float64Var(&variantsBonus, "bonus", 0, "Mastery bonus points")
	variantsCmd.Flags().IntVar(&variantsMinTier, "min-tier", 4, "Lowest tier to scan")
}

func runVariants(_ *cobra.Command, args []string) error {
	minPower, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid min power %q: %w", args[1], err)
	}

	client, cleanup, err := createSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.EnumerateVariants(ctx, &selectionv1.EnumerateVariantsRequest{
		ItemID:      args[0],
		MinPower:    minPower,
		BonusPoints: variantsBonus,
		MinTier:     variantsMinTier,
	})
	if err != nil {
		return fmt.Errorf("failed to enumerate variants: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	for _, v := range resp.Variants {
		fmt.Printf("%s q%d\n", v.ItemID, v.Quality)
	}
	fmt.Printf("\n%d variants, %d skipped\n", len(resp.Variants), resp.Skipped)
	return nil
}
