package ticker

import (
	"strings"

	"github.com/samber/lo"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
)

// Render applies a view state to computed rows: the search filter first,
// then the sort, then the manual order on top of it. The input slice is
// not modified.
func Render(rows []fdr.TeamDifficultySummary, state ViewState) []fdr.TeamDifficultySummary {
	out := make([]fdr.TeamDifficultySummary, len(rows))
	copy(out, rows)

	if needle := strings.ToLower(strings.TrimSpace(state.Search)); needle != "" {
		out = lo.Filter(out, func(r fdr.TeamDifficultySummary, _ int) bool {
			return strings.Contains(strings.ToLower(r.TeamName), needle) ||
				strings.Contains(strings.ToLower(r.TeamShort), needle)
		})
	}

	mode := state.Sort
	if mode == "" {
		mode = fdr.SortOverall
	}
	out = fdr.Sort(out, mode)
	return fdr.ApplyManualOrder(out, state.ManualOrder)
}
