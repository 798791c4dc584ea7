package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/config"
	"github.com/cabeard21/ao-bin-dumps/internal/logger"
	redisclient "github.com/cabeard21/ao-bin-dumps/internal/redis"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/items"
)

var catalogFile string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the item catalog stored in redis",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the stored catalog with a snapshot file",
	Long: `Read a catalog snapshot ({"quality_bonuses": {...}, "items": [...]}) and store it in redis.
The previous catalog is replaced atomically.`,
	RunE: runCatalogImport,
}

var catalogGetCmd = &cobra.Command{
	Use:   "get [unique-name]",
	Short: "Show one stored item definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogGet,
}

func init() {
	catalogImportCmd.Flags().StringVar(&catalogFile, "file", "", "Path to the catalog snapshot JSON")
	_ = catalogImportCmd.MarkFlagRequired("file")
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogGetCmd)
}

// openItemsRepo loads config, initializes logging and connects the items
// repository. The returned func closes the redis connection.
func openItemsRepo() (items.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: serviceName})

	rdb, err := redisclient.Open(cfg.RedisAddrs, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open redis: %w", err)
	}
	cleanup := func() {
		_ = rdb.Close()
	}

	repo, err := items.NewRedis(&items.RedisConfig{Client: rdb})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create items repository: %w", err)
	}
	return repo, cleanup, nil
}

func runCatalogImport(_ *cobra.Command, _ []string) error {
	f, err := os.Open(catalogFile)
	if err != nil {
		return fmt.Errorf("failed to open catalog snapshot: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	snapshot, err := catalog.ReadSnapshot(f)
	if err != nil {
		return err
	}

	repo, cleanup, err := openItemsRepo()
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := repo.Save(context.Background(), items.SaveInput{
		Items:          snapshot.Items,
		QualityBonuses: snapshot.QualityBonuses,
	})
	if err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	slog.Info("Catalog imported", "file", catalogFile, "items", out.ItemCount)
	return nil
}

func runCatalogGet(cmd *cobra.Command, args []string) error {
	repo, cleanup, err := openItemsRepo()
	if err != nil {
		return err
	}
	defer cleanup()

	return writeItem(cmd.Context(), repo, args[0], cmd.OutOrStdout())
}

// writeItem prints the stored definition of uniqueName as indented JSON
func writeItem(ctx context.Context, repo items.Repository, uniqueName string, w io.Writer) error {
	out, err := repo.Get(ctx, items.GetInput{UniqueName: uniqueName})
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Item)
}
