package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
)

func TestBuildInventory(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	require.NoError(t, st.WriteRaw(fpl.FixturesPath, []byte(`[
		{"id": 1, "event": 3, "kickoff_time": "2024-08-17T14:00:00Z", "finished": false},
		{"id": 2, "event": null, "kickoff_time": null, "finished": false}
	]`), false))

	inv, err := buildInventory(st)
	require.NoError(t, err)
	require.Len(t, inv.Payloads, 1)

	p := inv.Payloads[0]
	assert.Equal(t, "fixtures", p.Name)
	assert.Equal(t, []Field{
		{Path: "$", Types: []string{"array"}},
		{Path: "$[]", Types: []string{"object"}},
		{Path: "$[].event", Types: []string{"null", "number"}},
		{Path: "$[].finished", Types: []string{"bool"}},
		{Path: "$[].id", Types: []string{"number"}},
		{Path: "$[].kickoff_time", Types: []string{"null", "string"}},
	}, p.Fields)
}

func TestBuildInventoryEmptyRoot(t *testing.T) {
	_, err := buildInventory(store.NewJSONStore(t.TempDir()))
	require.Error(t, err)
}
