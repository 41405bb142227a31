// Package fdr computes fixture difficulty ratings for a window of upcoming
// gameweeks. Everything here is a pure function of its inputs.
package fdr

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
)

// RankResolver maps a team display name to its league position. Misses
// are reported with ok=false and mean "no adjustment".
type RankResolver interface {
	ResolveOpponentRank(name string) (rank int, ok bool)
}

// RankFunc adapts a plain function to RankResolver.
type RankFunc func(name string) (int, bool)

func (f RankFunc) ResolveOpponentRank(name string) (int, bool) { return f(name) }

// UnknownOpponent is substituted when a fixture references a team id that
// is not in the team set.
const UnknownOpponent = "Unknown"

// ProcessedFixture is one slot in a team's ticker row. Blank slots carry
// only Event and zero difficulty.
type ProcessedFixture struct {
	Event         int        `json:"event"`
	FixtureID     int        `json:"fixture_id,omitempty"`
	OpponentID    int        `json:"opponent_id,omitempty"`
	OpponentName  string     `json:"opponent_name,omitempty"`
	OpponentShort string     `json:"opponent_short,omitempty"`
	IsHome        bool       `json:"is_home"`
	KickoffTime   *time.Time `json:"kickoff_time,omitempty"`
	Blank         bool       `json:"blank,omitempty"`

	Difficulty         float64 `json:"difficulty"`
	BaseDifficulty     int     `json:"base_difficulty"`
	RankAdjustment     float64 `json:"rank_adjustment"`
	HomeAwayAdjustment float64 `json:"home_away_adjustment"`
	OpponentRank       int     `json:"opponent_rank,omitempty"`

	AttackDifficulty  float64 `json:"attack_difficulty"`
	DefenceDifficulty float64 `json:"defence_difficulty"`
}

// TeamDifficultySummary is a team's ticker row plus its sort keys.
type TeamDifficultySummary struct {
	TeamID    int                `json:"team_id"`
	TeamName  string             `json:"team_name"`
	TeamShort string             `json:"team_short"`
	TeamCode  int                `json:"team_code"`
	Fixtures  []ProcessedFixture `json:"fixtures"`
	Overall   float64            `json:"overall"`
	Attack    float64            `json:"attack"`
	Defence   float64            `json:"defence"`
}

// Scorer runs the difficulty computation with a fixed set of adjustments.
type Scorer struct {
	Adjustments Adjustments
}

func NewScorer(adj Adjustments) *Scorer {
	return &Scorer{Adjustments: adj}
}

// ComputeDifficulty scores every team with DefaultAdjustments.
func ComputeDifficulty(teams []fpl.Team, fixtures []fpl.Fixture, startRound int, windowSize int, ranks RankResolver) []TeamDifficultySummary {
	return NewScorer(DefaultAdjustments()).Compute(teams, fixtures, startRound, windowSize, ranks)
}

// Compute returns one summary per team, in input order. It never fails:
// unknown opponents become a sentinel, missing ranks skip the adjustment,
// and rounds without a fixture become blank slots. windowSize 0 selects
// DefaultWindowSize and larger windows are capped at MaxWindowSize; a
// negative window yields empty rows.
func (s *Scorer) Compute(teams []fpl.Team, fixtures []fpl.Fixture, startRound int, windowSize int, ranks RankResolver) []TeamDifficultySummary {
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	if startRound < 1 {
		startRound = 1
	}
	windowSize = min(windowSize, MaxWindowSize)
	if windowSize > 0 && startRound > math.MaxInt-windowSize {
		startRound = math.MaxInt - windowSize
	}
	endRound := startRound + windowSize

	teamsByID := lo.KeyBy(teams, func(t fpl.Team) int { return t.ID })

	window := lo.Filter(fixtures, func(f fpl.Fixture, _ int) bool {
		return !f.Finished && f.Event >= startRound && f.Event < endRound
	})
	SortFixtures(window)

	// byTeam[teamID][event] = fixtures in kickoff order
	byTeam := make(map[int]map[int][]fpl.Fixture, len(teams))
	add := func(teamID int, f fpl.Fixture) {
		if byTeam[teamID] == nil {
			byTeam[teamID] = make(map[int][]fpl.Fixture)
		}
		byTeam[teamID][f.Event] = append(byTeam[teamID][f.Event], f)
	}
	for _, f := range window {
		add(f.TeamH, f)
		add(f.TeamA, f)
	}

	out := make([]TeamDifficultySummary, 0, len(teams))
	for _, team := range teams {
		row := TeamDifficultySummary{
			TeamID:    team.ID,
			TeamName:  team.Name,
			TeamShort: team.ShortName,
			TeamCode:  team.Code,
			Fixtures:  make([]ProcessedFixture, 0, max(windowSize, 0)),
		}
		for gw := startRound; gw < endRound; gw++ {
			matches := byTeam[team.ID][gw]
			if len(matches) == 0 {
				row.Fixtures = append(row.Fixtures, ProcessedFixture{Event: gw, Blank: true})
				continue
			}
			for _, f := range matches {
				row.Fixtures = append(row.Fixtures, s.process(team.ID, f, teamsByID, ranks))
			}
		}
		for _, pf := range row.Fixtures {
			row.Overall += pf.Difficulty
			row.Attack += pf.AttackDifficulty
			row.Defence += pf.DefenceDifficulty
		}
		out = append(out, row)
	}
	return out
}

func (s *Scorer) process(teamID int, f fpl.Fixture, teamsByID map[int]fpl.Team, ranks RankResolver) ProcessedFixture {
	adj := s.Adjustments

	isHome := f.TeamH == teamID
	opponentID, base := f.TeamH, f.TeamADifficulty
	if isHome {
		opponentID, base = f.TeamA, f.TeamHDifficulty
	}

	opponent, found := teamsByID[opponentID]
	if !found {
		opponent = fpl.Team{ID: opponentID, Name: UnknownOpponent, ShortName: "???"}
	}

	rank, rankOK := 0, false
	if found && ranks != nil {
		rank, rankOK = ranks.ResolveOpponentRank(opponent.Name)
		if (!rankOK || rank <= 0) && opponent.ShortName != "" {
			rank, rankOK = ranks.ResolveOpponentRank(opponent.ShortName)
		}
		rankOK = rankOK && rank > 0
	}
	rankAdj := adj.rankDelta(rank, rankOK)
	venueAdj := adj.venueDelta(isHome)

	// The opponent plays from the other side of the fixture.
	oppDefence, oppAttack := opponent.StrengthDefenceAway, opponent.StrengthAttackAway
	if !isHome {
		oppDefence, oppAttack = opponent.StrengthDefenceHome, opponent.StrengthAttackHome
	}

	pf := ProcessedFixture{
		Event:              f.Event,
		FixtureID:          f.ID,
		OpponentID:         opponentID,
		OpponentName:       opponent.Name,
		OpponentShort:      opponent.ShortName,
		IsHome:             isHome,
		KickoffTime:        f.KickoffTime,
		BaseDifficulty:     base,
		RankAdjustment:     rankAdj,
		HomeAwayAdjustment: venueAdj,
		Difficulty:         adj.Final(base, rankAdj, venueAdj),
		AttackDifficulty:   adj.NormalizeStrength(oppDefence),
		DefenceDifficulty:  adj.NormalizeStrength(oppAttack),
	}
	if rankOK {
		pf.OpponentRank = rank
	}
	return pf
}

// SortFixtures orders by event, then kickoff (unscheduled last), then id.
func SortFixtures(fs []fpl.Fixture) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		switch {
		case a.KickoffTime != nil && b.KickoffTime != nil && !a.KickoffTime.Equal(*b.KickoffTime):
			return a.KickoffTime.Before(*b.KickoffTime)
		case a.KickoffTime != nil && b.KickoffTime == nil:
			return true
		case a.KickoffTime == nil && b.KickoffTime != nil:
			return false
		}
		return a.ID < b.ID
	})
}
