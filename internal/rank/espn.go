package rank

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ParseESPNStandings reads the ESPN soccer standings document. Both the
// league form (children[0].standings) and the group form (standings at the
// root) are accepted. A missing rank stat falls back to table position.
func ParseESPNStandings(body []byte) ([]Entry, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("espn standings: invalid json")
	}
	doc := gjson.ParseBytes(body)

	list := doc.Get("children.0.standings.entries")
	if !list.Exists() {
		list = doc.Get("standings.entries")
	}
	if !list.IsArray() {
		return nil, errors.New("espn standings: no entries")
	}

	out := make([]Entry, 0, 20)
	for i, e := range list.Array() {
		name := e.Get("team.displayName").String()
		if name == "" {
			name = e.Get("team.name").String()
		}
		if name == "" {
			continue
		}
		pos := int(e.Get(`stats.#(name=="rank").value`).Int())
		if pos <= 0 {
			pos = i + 1
		}
		out = append(out, Entry{
			Team:  name,
			Short: e.Get("team.abbreviation").String(),
			Rank:  pos,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("espn standings: no named entries")
	}
	return out, nil
}
