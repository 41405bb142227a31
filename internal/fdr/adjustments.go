package fdr

// Adjustments are the ad hoc constants layered on top of the official
// difficulty rating. Zero values are not meaningful; start from
// DefaultAdjustments and override.
type Adjustments struct {
	// TopRankThreshold: opponents ranked at or above this are "tough".
	TopRankThreshold int     `yaml:"top_rank_threshold"`
	TopRankDelta     float64 `yaml:"top_rank_delta"`

	// BottomRankThreshold: opponents ranked at or below this are "weak".
	BottomRankThreshold int     `yaml:"bottom_rank_threshold"`
	BottomRankDelta     float64 `yaml:"bottom_rank_delta"`

	AwayDelta float64 `yaml:"away_delta"`

	MinDifficulty float64 `yaml:"min_difficulty"`
	MaxDifficulty float64 `yaml:"max_difficulty"`

	// Raw team strength range rescaled onto [MinDifficulty, MaxDifficulty].
	StrengthFloor   float64 `yaml:"strength_floor"`
	StrengthCeiling float64 `yaml:"strength_ceiling"`
}

const (
	DefaultWindowSize = 5
	// MaxWindowSize is one season of rounds.
	MaxWindowSize = 38
)

// DefaultAdjustments returns the constants the ticker has always shipped with.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		TopRankThreshold:    4,
		TopRankDelta:        0.5,
		BottomRankThreshold: 18,
		BottomRankDelta:     -0.5,
		AwayDelta:           0.2,
		MinDifficulty:       1,
		MaxDifficulty:       5,
		StrengthFloor:       1000,
		StrengthCeiling:     1350,
	}
}

// rankDelta returns the rank-based adjustment. At most one rule fires; the
// top rule wins if the thresholds are configured to overlap.
func (a Adjustments) rankDelta(rank int, ok bool) float64 {
	if !ok || rank <= 0 {
		return 0
	}
	switch {
	case rank <= a.TopRankThreshold:
		return a.TopRankDelta
	case rank >= a.BottomRankThreshold:
		return a.BottomRankDelta
	default:
		return 0
	}
}

func (a Adjustments) venueDelta(isHome bool) float64 {
	if isHome {
		return 0
	}
	return a.AwayDelta
}

func (a Adjustments) clamp(v float64) float64 {
	if v < a.MinDifficulty {
		return a.MinDifficulty
	}
	if v > a.MaxDifficulty {
		return a.MaxDifficulty
	}
	return v
}

// Final combines the components into the displayed difficulty.
func (a Adjustments) Final(base int, rankAdj float64, venueAdj float64) float64 {
	return a.clamp(float64(base) + rankAdj + venueAdj)
}

// NormalizeStrength linearly maps a raw strength onto the difficulty scale.
func (a Adjustments) NormalizeStrength(raw int) float64 {
	span := a.StrengthCeiling - a.StrengthFloor
	if span <= 0 {
		return a.MinDifficulty
	}
	scaled := (float64(raw)-a.StrengthFloor)/span*(a.MaxDifficulty-a.MinDifficulty) + a.MinDifficulty
	return a.clamp(scaled)
}
