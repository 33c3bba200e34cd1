package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// SeedFile is the on-disk format consumed by `orbi merchants seed`. Seeding
// is part of the external maintenance workflow; the classification path
// never writes to the dictionary.
type SeedFile struct {
	Merchants []seedMerchant `yaml:"merchants"`
}

type seedMerchant struct {
	CanonicalName  string   `yaml:"canonical_name"`
	CategoryID     string   `yaml:"category_id"`
	UserID         string   `yaml:"user_id"`
	Aliases        []string `yaml:"aliases"`
	ConfidenceBase float64  `yaml:"confidence_base"`
}

// ParseSeedFile reads and validates a merchant seed file.
func ParseSeedFile(path string) ([]model.MerchantEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	entries := make([]model.MerchantEntry, 0, len(seed.Merchants))
	for i, m := range seed.Merchants {
		if m.CanonicalName == "" {
			return nil, fmt.Errorf("seed merchant at index %d: missing canonical_name", i)
		}
		if m.CategoryID == "" {
			return nil, fmt.Errorf("seed merchant %q: missing category_id", m.CanonicalName)
		}
		confidence := m.ConfidenceBase
		if confidence <= 0 || confidence > 1 {
			confidence = 0.8
		}
		entries = append(entries, model.MerchantEntry{
			CanonicalName:  m.CanonicalName,
			CategoryID:     m.CategoryID,
			UserID:         m.UserID,
			Aliases:        m.Aliases,
			ConfidenceBase: confidence,
			Source:         model.SourceSeed,
		})
	}

	return entries, nil
}
