package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var deleteSelectionCmd = &cobra.Command{
	Use:   "delete-selection [id]",
	Short: "Remove a stored selection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteSelection,
}

func runDeleteSelection(_ *cobra.Command, args []string) error {
	client, cleanup, err := createSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.DeleteSelection(ctx, &selectionv1.DeleteSelectionRequest{ID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Printf("Deleted selection %s\n", resp.ID)
	return nil
}
