package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var getSelectionCmd = &cobra.Command{
	Use:   "get-selection [id]",
	Short: "Show a stored selection",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetSelection,
}

func runGetSelection(_ *cobra.Command, args []string) error {
	client, cleanup, err := createSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetSelection(ctx, &selectionv1.GetSelectionRequest{ID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to get selection: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	sel := resp.Selection
	fmt.Printf("Selection %s (%s)\n", sel.ID, sel.Location)
	fmt.Printf("Created: %s\n\n", time.Unix(sel.CreatedAt, 0).UTC().Format(time.RFC3339))
	printSlots(sel.Slots)
	fmt.Printf("\nTotal: %.0f silver\n", sel.TotalPrice)
	return nil
}
