package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var powerBonus float64

var powerCmd = &cobra.Command{
	Use:   "power [item-id|item-name] [quality]",
	Short: "Compute the item power of an item",
	Long: `Compute the item power of one item at a quality (1-5). The item is a unique
name or its localized name. Examples:

  power T5_OFF_SHIELD@1 3
  power "Expert's Shield" 1
  power T8_OFF_SHIELD 5 --bonus 120`,
	Args: cobra.ExactArgs(2),
	RunE: runPower,
}

func init() {
	powerCmd.Flags().Float64Var(&powerBonus, "bonus", 0, "Mastery bonus points")
}

func runPower(_ *cobra.Command, args []string) error {
	quality, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quality %q: %w", args[1], err)
	}

	client, cleanup, err := createSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CalculateItemPower(ctx, &selectionv1.CalculateItemPowerRequest{
		ItemID:      args[0],
		Quality:     quality,
		BonusPoints: powerBonus,
	})
	if err != nil {
		return fmt.Errorf("failed to calculate item power: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	if resp.LocalizedName != "" {
		fmt.Printf("%s (%s) q%d: %.1f\n", resp.LocalizedName, resp.ItemID, resp.Quality, resp.ItemPower)
		return nil
	}
	fmt.Printf("%s q%d: %.1f\n", resp.ItemID, resp.Quality, resp.ItemPower)
	return nil
}
