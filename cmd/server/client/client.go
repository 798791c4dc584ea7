// Package client provides commands that call a running selection server
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	jsonOutput bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the selection server",
	Long:  `Client commands make real gRPC requests against a running selection server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	// Price fetches retry for a while before giving up
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")
	ClientCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	ClientCmd.AddCommand(selectCmd)
	ClientCmd.AddCommand(getSelectionCmd)
	ClientCmd.AddCommand(deleteSelectionCmd)
	ClientCmd.AddCommand(powerCmd)
	ClientCmd.AddCommand(variantsCmd)
}

// createSelectionClient creates a selection service client
func createSelectionClient() (selectionv1.SelectionServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return selectionv1.NewSelectionServiceClient(conn), cleanup, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
