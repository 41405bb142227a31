package fdr

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SortMode selects which total orders the ticker.
type SortMode string

const (
	SortOverall SortMode = "overall"
	SortAttack  SortMode = "attack"
	SortDefence SortMode = "defence"
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

// ParseSortMode accepts the three modes case-insensitively, plus
// "defense". Empty selects SortOverall.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overall":
		return SortOverall, nil
	case "attack":
		return SortAttack, nil
	case "defence", "defense":
		return SortDefence, nil
	default:
		return "", errors.Wrapf(ErrUnknownSortMode, "%q", s)
	}
}

// Total returns the sort key for mode.
func (t TeamDifficultySummary) Total(mode SortMode) float64 {
	switch mode {
	case SortAttack:
		return t.Attack
	case SortDefence:
		return t.Defence
	default:
		return t.Overall
	}
}

// Sort orders rows ascending by the mode's total (easiest run first), with
// team name as tie-break. rows is sorted in place and returned.
func Sort(rows []TeamDifficultySummary, mode SortMode) []TeamDifficultySummary {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Total(mode), rows[j].Total(mode)
		if a != b {
			return a < b
		}
		return rows[i].TeamName < rows[j].TeamName
	})
	return rows
}

// ApplyManualOrder returns rows rearranged to follow order (team ids).
// Ids not present in rows are ignored, duplicates count once, and rows
// whose team is missing from order follow in their existing relative
// order.
func ApplyManualOrder(rows []TeamDifficultySummary, order []int) []TeamDifficultySummary {
	if len(order) == 0 {
		return rows
	}
	byID := make(map[int]int, len(rows))
	for i, r := range rows {
		byID[r.TeamID] = i
	}

	out := make([]TeamDifficultySummary, 0, len(rows))
	used := make(map[int]bool, len(rows))
	for _, id := range order {
		i, ok := byID[id]
		if !ok || used[id] {
			continue
		}
		used[id] = true
		out = append(out, rows[i])
	}
	for _, r := range rows {
		if !used[r.TeamID] {
			out = append(out, r)
		}
	}
	return out
}
