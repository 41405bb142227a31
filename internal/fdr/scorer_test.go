package fdr

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
)

// team builds a team with every strength set to s.
func team(id int, name, short string, s int) fpl.Team {
	return fpl.Team{
		ID: id, Name: name, ShortName: short,
		StrengthOverallHome: s, StrengthOverallAway: s,
		StrengthAttackHome: s, StrengthAttackAway: s,
		StrengthDefenceHome: s, StrengthDefenceAway: s,
	}
}

func fixture(id, gw, home, away, hDiff, aDiff int) fpl.Fixture {
	return fpl.Fixture{ID: id, Event: gw, TeamH: home, TeamA: away, TeamHDifficulty: hDiff, TeamADifficulty: aDiff}
}

func rankTable(m map[string]int) RankResolver {
	return RankFunc(func(name string) (int, bool) {
		r, ok := m[name]
		return r, ok
	})
}

func fourTeams() []fpl.Team {
	return []fpl.Team{
		team(1, "Arsenal", "ARS", 1300),
		team(2, "Liverpool", "LIV", 1300),
		team(3, "Brighton", "BHA", 1175),
		team(4, "Sheffield Utd", "SHU", 1000),
	}
}

var exampleRanks = map[string]int{"Liverpool": 2, "Brighton": 10, "Sheffield Utd": 20, "Arsenal": 1}

func findTeam(t *testing.T, rows []TeamDifficultySummary, id int) TeamDifficultySummary {
	t.Helper()
	for _, r := range rows {
		if r.TeamID == id {
			return r
		}
	}
	t.Fatalf("team %d not in result", id)
	return TeamDifficultySummary{}
}

func TestCompute_AllHomeExample(t *testing.T) {
	fixtures := []fpl.Fixture{
		fixture(100, 10, 1, 2, 2, 4),
		fixture(101, 11, 1, 3, 3, 3),
		fixture(102, 12, 1, 4, 4, 2),
	}

	rows := ComputeDifficulty(fourTeams(), fixtures, 10, 3, rankTable(exampleRanks))
	ars := findTeam(t, rows, 1)

	require.Len(t, ars.Fixtures, 3)
	wantRank := []float64{0.5, 0, -0.5}
	wantFinal := []float64{2.5, 3.0, 3.5}
	for i, pf := range ars.Fixtures {
		assert.Equal(t, 10+i, pf.Event)
		assert.True(t, pf.IsHome)
		assert.Equal(t, wantRank[i], pf.RankAdjustment, "rank adjustment gw %d", pf.Event)
		assert.Equal(t, 0.0, pf.HomeAwayAdjustment)
		assert.InDelta(t, wantFinal[i], pf.Difficulty, 1e-9, "final gw %d", pf.Event)
	}
	assert.InDelta(t, 9.0, ars.Overall, 1e-9)
}

func TestCompute_AwayAddsPenalty(t *testing.T) {
	fixtures := []fpl.Fixture{
		fixture(100, 10, 1, 2, 2, 4),
		fixture(101, 11, 3, 1, 3, 3), // ARS away at Brighton
		fixture(102, 12, 1, 4, 4, 2),
	}

	rows := ComputeDifficulty(fourTeams(), fixtures, 10, 3, rankTable(exampleRanks))
	ars := findTeam(t, rows, 1)

	away := ars.Fixtures[1]
	assert.False(t, away.IsHome)
	assert.Equal(t, 3, away.BaseDifficulty)
	assert.Equal(t, 0.2, away.HomeAwayAdjustment)
	assert.InDelta(t, 3.2, away.Difficulty, 1e-9)
	assert.InDelta(t, 9.2, ars.Overall, 1e-9)
}

func TestCompute_OpponentStrengthSidesAndTotals(t *testing.T) {
	teams := []fpl.Team{
		team(1, "Arsenal", "ARS", 1200),
		{
			ID: 2, Name: "Chelsea", ShortName: "CHE",
			StrengthAttackHome: 1350, StrengthAttackAway: 1000,
			StrengthDefenceHome: 1175, StrengthDefenceAway: 1350,
		},
	}
	fixtures := []fpl.Fixture{
		fixture(1, 1, 1, 2, 3, 3), // ARS home: Chelsea plays away
		fixture(2, 2, 2, 1, 3, 3), // ARS away: Chelsea plays home
	}

	rows := ComputeDifficulty(teams, fixtures, 1, 2, nil)
	ars := findTeam(t, rows, 1)

	home, away := ars.Fixtures[0], ars.Fixtures[1]
	assert.InDelta(t, 5.0, home.AttackDifficulty, 1e-9, "away defence 1350")
	assert.InDelta(t, 1.0, home.DefenceDifficulty, 1e-9, "away attack 1000")
	assert.InDelta(t, 3.0, away.AttackDifficulty, 1e-9, "home defence 1175")
	assert.InDelta(t, 5.0, away.DefenceDifficulty, 1e-9, "home attack 1350")

	assert.InDelta(t, 8.0, ars.Attack, 1e-9)
	assert.InDelta(t, 6.0, ars.Defence, 1e-9)
}

func TestCompute_Clamped(t *testing.T) {
	fixtures := []fpl.Fixture{
		fixture(1, 1, 2, 1, 1, 5), // ARS away vs #2: 5 + 0.5 + 0.2 -> 5
		fixture(2, 2, 1, 4, 1, 5), // ARS home vs #20: 1 - 0.5 -> 1
	}
	rows := ComputeDifficulty(fourTeams(), fixtures, 1, 2, rankTable(exampleRanks))
	ars := findTeam(t, rows, 1)

	assert.Equal(t, 5.0, ars.Fixtures[0].Difficulty)
	assert.Equal(t, 1.0, ars.Fixtures[1].Difficulty)
}

func TestCompute_BlankWindow(t *testing.T) {
	teams := append(fourTeams(), team(5, "Ipswich", "IPS", 1050))
	fixtures := []fpl.Fixture{fixture(1, 3, 1, 2, 3, 3)}

	rows := ComputeDifficulty(teams, fixtures, 3, 4, nil)
	ips := findTeam(t, rows, 5)

	require.Len(t, ips.Fixtures, 4)
	for i, pf := range ips.Fixtures {
		assert.True(t, pf.Blank)
		assert.Equal(t, 3+i, pf.Event)
		assert.Zero(t, pf.Difficulty)
		assert.Zero(t, pf.OpponentID)
	}
	assert.Zero(t, ips.Overall)
	assert.Zero(t, ips.Attack)
	assert.Zero(t, ips.Defence)
}

func TestCompute_DoubleGameweek(t *testing.T) {
	early := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	late := early.Add(72 * time.Hour)

	second := fixture(20, 11, 1, 4, 2, 4)
	second.KickoffTime = &late
	first := fixture(21, 11, 3, 1, 3, 3)
	first.KickoffTime = &early

	fixtures := []fpl.Fixture{
		fixture(10, 10, 1, 2, 4, 2),
		second,
		first,
		fixture(30, 12, 2, 1, 4, 4),
	}

	rows := ComputeDifficulty(fourTeams(), fixtures, 10, 3, nil)
	ars := findTeam(t, rows, 1)

	require.Len(t, ars.Fixtures, 4, "a double consumes an extra slot")
	assert.Equal(t, []int{10, 11, 11, 12}, []int{
		ars.Fixtures[0].Event, ars.Fixtures[1].Event, ars.Fixtures[2].Event, ars.Fixtures[3].Event,
	})
	assert.Equal(t, 21, ars.Fixtures[1].FixtureID, "earlier kickoff first")
	assert.Equal(t, 20, ars.Fixtures[2].FixtureID)

	bha := findTeam(t, rows, 3)
	require.Len(t, bha.Fixtures, 3)
	assert.True(t, bha.Fixtures[0].Blank)
	assert.False(t, bha.Fixtures[1].Blank)
	assert.True(t, bha.Fixtures[2].Blank)
}

func TestCompute_UnknownOpponent(t *testing.T) {
	looked := []string{}
	ranks := RankFunc(func(name string) (int, bool) {
		looked = append(looked, name)
		return 1, true
	})
	fixtures := []fpl.Fixture{fixture(1, 5, 1, 99, 3, 3)}

	rows := ComputeDifficulty(fourTeams(), fixtures, 5, 1, ranks)
	ars := findTeam(t, rows, 1)

	require.Len(t, ars.Fixtures, 1)
	pf := ars.Fixtures[0]
	assert.False(t, pf.Blank)
	assert.Equal(t, 99, pf.OpponentID)
	assert.Equal(t, UnknownOpponent, pf.OpponentName)
	assert.Zero(t, pf.RankAdjustment)
	assert.Equal(t, 3.0, pf.Difficulty)
	assert.Equal(t, 1.0, pf.AttackDifficulty)
	assert.Empty(t, looked, "sentinel opponent is not rank-resolved")
}

func TestCompute_FinishedAndOutOfWindowIgnored(t *testing.T) {
	done := fixture(1, 5, 1, 2, 5, 5)
	done.Finished = true
	fixtures := []fpl.Fixture{
		done,
		fixture(2, 4, 1, 3, 5, 5),
		fixture(3, 7, 1, 3, 5, 5),
		fixture(4, 0, 1, 4, 5, 5),
	}

	rows := ComputeDifficulty(fourTeams(), fixtures, 5, 2, nil)
	ars := findTeam(t, rows, 1)

	require.Len(t, ars.Fixtures, 2)
	assert.True(t, ars.Fixtures[0].Blank)
	assert.True(t, ars.Fixtures[1].Blank)
}

func TestCompute_WindowShift(t *testing.T) {
	var fixtures []fpl.Fixture
	for gw := 1; gw <= 6; gw++ {
		fixtures = append(fixtures, fixture(gw, gw, 1, 2+gw%3, 1+gw%5, 3))
	}

	before := findTeam(t, ComputeDifficulty(fourTeams(), fixtures, 1, 4, nil), 1)
	after := findTeam(t, ComputeDifficulty(fourTeams(), fixtures, 2, 4, nil), 1)

	require.Len(t, before.Fixtures, 4)
	require.Len(t, after.Fixtures, 4)
	assert.Equal(t, before.Fixtures[1:], after.Fixtures[:3])
	assert.Equal(t, 5, after.Fixtures[3].Event)
}

func TestCompute_WindowEdgeCases(t *testing.T) {
	fixtures := []fpl.Fixture{fixture(1, 1, 1, 2, 3, 3)}

	t.Run("zero window uses default", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, 1, 0, nil)
		assert.Len(t, findTeam(t, rows, 1).Fixtures, DefaultWindowSize)
	})

	t.Run("negative window is empty", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, 1, -3, nil)
		require.Len(t, rows, 4)
		for _, r := range rows {
			assert.Empty(t, r.Fixtures)
			assert.Zero(t, r.Overall)
		}
	})

	t.Run("start below one", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, 0, 1, nil)
		ars := findTeam(t, rows, 1)
		require.Len(t, ars.Fixtures, 1)
		assert.Equal(t, 1, ars.Fixtures[0].Event)
		assert.False(t, ars.Fixtures[0].Blank)
	})

	t.Run("huge window is capped", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, 1, math.MaxInt, nil)
		require.Len(t, rows, 4)
		ars := findTeam(t, rows, 1)
		require.Len(t, ars.Fixtures, MaxWindowSize)
		assert.False(t, ars.Fixtures[0].Blank)
		assert.Equal(t, MaxWindowSize, ars.Fixtures[MaxWindowSize-1].Event)
	})

	t.Run("start near max int does not overflow", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, math.MaxInt, 2, nil)
		for _, r := range rows {
			require.Len(t, r.Fixtures, 2)
			assert.True(t, r.Fixtures[0].Blank)
		}
	})

	t.Run("start past the season", func(t *testing.T) {
		rows := ComputeDifficulty(fourTeams(), fixtures, 40, 3, nil)
		for _, r := range rows {
			require.Len(t, r.Fixtures, 3)
			for _, pf := range r.Fixtures {
				assert.True(t, pf.Blank)
			}
		}
	})
}

func TestCompute_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	teams := make([]fpl.Team, 0, 20)
	ranks := map[string]int{}
	for i := 1; i <= 20; i++ {
		tm := team(i, string(rune('A'+i-1))+" FC", string(rune('A'+i-1)), 1000+rnd.Intn(351))
		teams = append(teams, tm)
		if i%5 != 0 {
			ranks[tm.Name] = i
		}
	}
	var fixtures []fpl.Fixture
	id := 1
	for gw := 1; gw <= 8; gw++ {
		perm := rnd.Perm(20)
		for k := 0; k+1 < len(perm); k += 2 {
			fixtures = append(fixtures, fixture(id, gw, perm[k]+1, perm[k+1]+1, 1+rnd.Intn(5), 1+rnd.Intn(5)))
			id++
		}
	}

	adj := DefaultAdjustments()
	rows := ComputeDifficulty(teams, fixtures, 2, 5, rankTable(ranks))
	for _, r := range rows {
		for _, pf := range r.Fixtures {
			if pf.Blank {
				continue
			}
			assert.GreaterOrEqual(t, pf.Difficulty, 1.0)
			assert.LessOrEqual(t, pf.Difficulty, 5.0)

			rank, ok := ranks[pf.OpponentName]
			switch {
			case ok && rank <= 4:
				assert.Equal(t, 0.5, pf.RankAdjustment)
			case ok && rank >= 18:
				assert.Equal(t, -0.5, pf.RankAdjustment)
			default:
				assert.Equal(t, 0.0, pf.RankAdjustment)
			}

			if pf.IsHome {
				assert.Equal(t, 0.0, pf.HomeAwayAdjustment)
			} else {
				assert.Equal(t, 0.2, pf.HomeAwayAdjustment)
			}

			assert.Equal(t, adj.Final(pf.BaseDifficulty, pf.RankAdjustment, pf.HomeAwayAdjustment), pf.Difficulty)
		}
	}
}

func TestNormalizeStrength(t *testing.T) {
	adj := DefaultAdjustments()
	cases := []struct {
		raw  int
		want float64
	}{
		{1175, 3.0},
		{1000, 1.0},
		{1350, 5.0},
		{1087, 1.9942857142857142},
		{900, 1.0},
		{1500, 5.0},
		{0, 1.0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, adj.NormalizeStrength(c.raw), 1e-9, "raw %d", c.raw)
	}
}

func TestRankDelta_OverlappingThresholdsDoNotStack(t *testing.T) {
	adj := DefaultAdjustments()
	adj.TopRankThreshold = 10
	adj.BottomRankThreshold = 8

	assert.Equal(t, adj.TopRankDelta, adj.rankDelta(9, true))
	assert.Equal(t, 0.0, adj.rankDelta(9, false))
	assert.Equal(t, adj.BottomRankDelta, adj.rankDelta(11, true))
}

func TestCompute_RankByShortName(t *testing.T) {
	fixtures := []fpl.Fixture{fixture(1, 1, 1, 2, 3, 3)}
	// Only the abbreviation is known to the rank source.
	ranks := rankTable(map[string]int{"LIV": 1})

	rows := ComputeDifficulty(fourTeams(), fixtures, 1, 1, ranks)
	pf := findTeam(t, rows, 1).Fixtures[0]
	assert.Equal(t, 1, pf.OpponentRank)
	assert.InDelta(t, 0.5, pf.RankAdjustment, 1e-9)
	assert.InDelta(t, 3.5, pf.Difficulty, 1e-9)
}
