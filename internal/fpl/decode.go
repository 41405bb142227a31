package fpl

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Snapshot paths under a raw root, shared by the fetch client and the
// offline snapshot source.
const (
	BootstrapPath = "bootstrap/bootstrap-static.json"
	FixturesPath  = "fixtures/fixtures.json"
	StandingsPath = "standings/espn.json"
)

// DecodeBootstrap parses a bootstrap-static body. Elements and the rest of
// the payload are skipped.
func DecodeBootstrap(raw []byte) (*Bootstrap, error) {
	var b Bootstrap
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, errors.Wrap(err, "parse bootstrap-static")
	}
	if len(b.Teams) == 0 {
		return nil, errors.New("bootstrap-static has no teams")
	}
	return &b, nil
}

// DecodeFixtures parses the fixtures endpoint body. A JSON null event is
// decoded as 0.
func DecodeFixtures(raw []byte) ([]Fixture, error) {
	raw = bytes.TrimSpace(raw)
	var out []Fixture
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "parse fixtures")
	}
	return out, nil
}
