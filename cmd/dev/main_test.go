package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

func TestPrintTable(t *testing.T) {
	res := &ticker.Result{
		StartRound: 5,
		Window:     2,
		View:       ticker.ViewState{Sort: fdr.SortOverall},
		RankSource: ticker.RankSourceESPN,
		Teams: []fdr.TeamDifficultySummary{
			{
				TeamShort: "ARS",
				Overall:   4.5, Attack: 6, Defence: 7,
				Fixtures: []fdr.ProcessedFixture{
					{Event: 5, OpponentShort: "LIV", IsHome: true, Difficulty: 4.5},
					{Event: 6, Blank: true},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, res))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "GW 5-6 (overall, ranks: espn)", strings.TrimSpace(lines[0]))
	assert.Equal(t, []string{"TEAM", "OVR", "ATT", "DEF", "FIXTURES"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"ARS", "4.5", "6.0", "7.0", "LIV(H)", "4.5", "-"}, strings.Fields(lines[2]))
}

func TestFixtureCell(t *testing.T) {
	assert.Equal(t, "-", fixtureCell(fdr.ProcessedFixture{Blank: true}))
	assert.Equal(t, "MCI(A) 4.7", fixtureCell(fdr.ProcessedFixture{OpponentShort: "MCI", Difficulty: 4.7}))
}
