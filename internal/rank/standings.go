package rank

import (
	"sort"

	"github.com/samber/lo"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
)

// Row is one team's line in a league table computed from results.
type Row struct {
	Pos    int    `json:"pos"`
	Team   string `json:"team"`
	Short  string `json:"short"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	Drawn  int    `json:"drawn"`
	Lost   int    `json:"lost"`
	GF     int    `json:"gf"`
	GA     int    `json:"ga"`
	GD     int    `json:"gd"`
	Points int    `json:"points"`
}

// teamAccum accumulates W/D/L/GF/GA for a single team.
type teamAccum struct {
	Won   int
	Drawn int
	Lost  int
	GF    int
	GA    int
}

// TableFromFixtures builds the league table from finished fixtures with
// recorded scores. Every known team gets a row, including teams that have
// not played yet; they sort by their (empty) record like everyone else.
func TableFromFixtures(teams []fpl.Team, fixtures []fpl.Fixture) []Row {
	accum := make(map[int]*teamAccum, len(teams))
	for _, t := range teams {
		accum[t.ID] = &teamAccum{}
	}

	for _, f := range fixtures {
		if !f.Finished || f.TeamHScore == nil || f.TeamAScore == nil {
			continue
		}
		home, away := accum[f.TeamH], accum[f.TeamA]
		if home == nil || away == nil {
			continue
		}
		hs, as := *f.TeamHScore, *f.TeamAScore

		home.GF += hs
		home.GA += as
		away.GF += as
		away.GA += hs

		switch {
		case hs > as:
			home.Won++
			away.Lost++
		case hs < as:
			away.Won++
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
		}
	}

	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		a := accum[t.ID]
		rows = append(rows, Row{
			Team:   t.Name,
			Short:  t.ShortName,
			Played: a.Won + a.Drawn + a.Lost,
			Won:    a.Won,
			Drawn:  a.Drawn,
			Lost:   a.Lost,
			GF:     a.GF,
			GA:     a.GA,
			GD:     a.GF - a.GA,
			Points: a.Won*3 + a.Drawn,
		})
	}

	// Points DESC, GD DESC, GF DESC, name ASC.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GD != rows[j].GD {
			return rows[i].GD > rows[j].GD
		}
		if rows[i].GF != rows[j].GF {
			return rows[i].GF > rows[j].GF
		}
		return rows[i].Team < rows[j].Team
	})

	// Identical records share a position.
	for i := range rows {
		if i > 0 && rows[i].Points == rows[i-1].Points &&
			rows[i].GD == rows[i-1].GD &&
			rows[i].GF == rows[i-1].GF {
			rows[i].Pos = rows[i-1].Pos
		} else {
			rows[i].Pos = i + 1
		}
	}
	return rows
}

// EntriesFromTable converts table rows into resolver entries. Teams with
// no games played are left out; before the first result every team would
// otherwise share first place.
func EntriesFromTable(rows []Row) []Entry {
	played := lo.Filter(rows, func(r Row, _ int) bool { return r.Played > 0 })
	return lo.Map(played, func(r Row, _ int) Entry {
		return Entry{Team: r.Team, Short: r.Short, Rank: r.Pos}
	})
}
