package fdr

import "github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"

// CurrentEvent picks the gameweek the game considers current, falling back
// to the next event and then to 1 (pre-season).
func CurrentEvent(events []fpl.Event) int {
	next := 0
	for _, e := range events {
		if e.IsCurrent {
			return e.ID
		}
		if e.IsNext && next == 0 {
			next = e.ID
		}
	}
	if next > 0 {
		return next
	}
	return 1
}

// ResolveStartRound returns the first gameweek the ticker should show.
// The current gameweek is skipped once all of its fixtures are finished.
func ResolveStartRound(events []fpl.Event, fixtures []fpl.Fixture) int {
	current := CurrentEvent(events)

	total, finished := 0, 0
	for _, f := range fixtures {
		if f.Event != current {
			continue
		}
		total++
		if f.Finished {
			finished++
		}
	}
	if total > 0 && finished == total {
		return current + 1
	}
	return current
}
