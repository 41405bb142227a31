package fetch

import (
	"context"
	"strings"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
)

// /bootstrap-static/
func (c *Client) BootstrapStatic(ctx context.Context, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "bootstrap", c.fplURL("/bootstrap-static/"), fpl.BootstrapPath, force)
}

// /fixtures/
func (c *Client) Fixtures(ctx context.Context, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "fixtures", c.fplURL("/fixtures/"), fpl.FixturesPath, force)
}

// ESPN league standings document.
func (c *Client) Standings(ctx context.Context, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "standings", c.StandingsURL, fpl.StandingsPath, force)
}

func (c *Client) fplURL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}
