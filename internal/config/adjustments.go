package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
)

// LoadAdjustments reads difficulty constants from a YAML file. Keys missing
// from the file keep their default value. An empty path returns the
// defaults.
func LoadAdjustments(path string) (fdr.Adjustments, error) {
	adj := fdr.DefaultAdjustments()
	if path == "" {
		return adj, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return adj, errors.Wrapf(err, "read adjustments %s", path)
	}
	if err := yaml.Unmarshal(raw, &adj); err != nil {
		return adj, errors.Wrapf(err, "parse adjustments %s", path)
	}
	if err := validateAdjustments(adj); err != nil {
		return adj, errors.Wrapf(err, "adjustments %s", path)
	}
	return adj, nil
}

func validateAdjustments(a fdr.Adjustments) error {
	if a.MinDifficulty >= a.MaxDifficulty {
		return errors.Errorf("min_difficulty (%v) must be below max_difficulty (%v)", a.MinDifficulty, a.MaxDifficulty)
	}
	if a.StrengthFloor >= a.StrengthCeiling {
		return errors.Errorf("strength_floor (%v) must be below strength_ceiling (%v)", a.StrengthFloor, a.StrengthCeiling)
	}
	if a.TopRankThreshold < 0 || a.BottomRankThreshold < 0 {
		return errors.New("rank thresholds must not be negative")
	}
	return nil
}
