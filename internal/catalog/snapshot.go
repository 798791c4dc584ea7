package catalog

import (
	"encoding/json"
	"io"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// snapshotJSON is the file layout produced by the item dump tooling
type snapshotJSON struct {
	QualityBonuses map[int]float64          `json:"quality_bonuses,omitempty"`
	Items          []*albion.ItemDefinition `json:"items"`
}

// ReadSnapshot decodes a catalog snapshot. A snapshot without a quality table
// gets DefaultQualityBonuses.
func ReadSnapshot(r io.Reader) (*StaticConfig, error) {
	var snap snapshotJSON
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog snapshot")
	}

	cfg := &StaticConfig{
		Items:          snap.Items,
		QualityBonuses: snap.QualityBonuses,
	}
	if len(cfg.QualityBonuses) == 0 {
		cfg.QualityBonuses = DefaultQualityBonuses()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog snapshot")
	}
	return cfg, nil
}
