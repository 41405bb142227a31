package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
)

// inventoryPath is where the field inventory is written under --raw-root.
const inventoryPath = "inventory/schema.json"

type Inventory struct {
	GeneratedAtUTC string    `json:"generated_at_utc"`
	RawRoot        string    `json:"raw_root"`
	Payloads       []Payload `json:"payloads"`
}

type Payload struct {
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Path  string   `json:"path"`
	Types []string `json:"types"`
}

// fieldTypes collects every JSON type seen at a path.
type fieldTypes map[string]map[string]bool

func inventoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "list the field paths and JSON types found in the snapshots under --raw-root",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "stdout", Usage: "print instead of writing " + inventoryPath},
		},
		Action: func(c *cli.Context) error {
			st := store.NewJSONStore(c.String("raw-root"))
			inv, err := buildInventory(st)
			if err != nil {
				return err
			}
			inv.GeneratedAtUTC = time.Now().UTC().Format(time.RFC3339)

			payload, err := json.Marshal(inv)
			if err != nil {
				return err
			}
			if c.Bool("stdout") {
				_, err = fmt.Fprintln(os.Stdout, string(payload))
				return err
			}
			if err := st.WriteRaw(inventoryPath, payload, c.Bool("pretty")); err != nil {
				return err
			}
			log.Info().Str("path", st.Path(inventoryPath)).Msg("inventory written")
			return nil
		},
	}
}

func buildInventory(st *store.JSONStore) (*Inventory, error) {
	payloads := []struct{ name, path string }{
		{"bootstrap-static", fpl.BootstrapPath},
		{"fixtures", fpl.FixturesPath},
		{"standings", fpl.StandingsPath},
	}

	inv := &Inventory{RawRoot: st.Root, Payloads: make([]Payload, 0, len(payloads))}
	for _, p := range payloads {
		if !st.Exists(p.path) {
			log.Warn().Str("payload", p.name).Str("path", st.Path(p.path)).Msg("snapshot missing")
			continue
		}
		raw, err := st.ReadRaw(p.path)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(raw) {
			log.Warn().Str("payload", p.name).Msg("snapshot is not valid json")
			continue
		}
		types := make(fieldTypes)
		walkFields(gjson.ParseBytes(raw), "$", types)
		inv.Payloads = append(inv.Payloads, Payload{Name: p.name, Path: p.path, Fields: types.fields()})
	}
	if len(inv.Payloads) == 0 {
		return nil, errors.Errorf("no snapshots under %s; run fetch first", st.Root)
	}
	return inv, nil
}

// walkFields records v's type at path and recurses. Every array element is
// visited so nullable fields report both types.
func walkFields(v gjson.Result, path string, types fieldTypes) {
	switch {
	case v.IsObject():
		types.add(path, "object")
		v.ForEach(func(key, value gjson.Result) bool {
			walkFields(value, path+"."+key.String(), types)
			return true
		})
	case v.IsArray():
		types.add(path, "array")
		items := v.Array()
		if len(items) == 0 {
			types.add(path+"[]", "unknown")
		}
		for _, item := range items {
			walkFields(item, path+"[]", types)
		}
	default:
		types.add(path, typeName(v.Type))
	}
}

func typeName(t gjson.Type) string {
	switch t {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return "unknown"
	}
}

func (ft fieldTypes) add(path, typ string) {
	if ft[path] == nil {
		ft[path] = make(map[string]bool)
	}
	ft[path][typ] = true
}

func (ft fieldTypes) fields() []Field {
	paths := lo.Keys(ft)
	sort.Strings(paths)
	return lo.Map(paths, func(p string, _ int) Field {
		types := lo.Keys(ft[p])
		sort.Strings(types)
		return Field{Path: p, Types: types}
	})
}
