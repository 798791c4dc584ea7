// Package main is the entry point for the selection gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cabeard21/ao-bin-dumps/cmd/server/client"
)

const (
	serviceName = "ao-selector"
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Albion item power market selector",
	Long:  `ao-selector finds the cheapest or most power-efficient market variant for every item slot of a build.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
