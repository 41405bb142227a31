package fetch

import (
	"context"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
)

// Snapshots serves payloads previously written under a raw root, for
// offline runs. force is ignored.
type Snapshots struct {
	Store *store.JSONStore
}

func (s Snapshots) BootstrapStatic(_ context.Context, _ bool) ([]byte, error) {
	return s.Store.ReadRaw(fpl.BootstrapPath)
}

func (s Snapshots) Fixtures(_ context.Context, _ bool) ([]byte, error) {
	return s.Store.ReadRaw(fpl.FixturesPath)
}

func (s Snapshots) Standings(_ context.Context, _ bool) ([]byte, error) {
	return s.Store.ReadRaw(fpl.StandingsPath)
}
