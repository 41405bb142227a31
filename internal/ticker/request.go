package ticker

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
)

// Request selects the window and view of a ticker computation. Zero Start
// and Window mean "current round" and "configured default".
type Request struct {
	Start  int    `json:"start" validate:"gte=0,lte=38"`
	Window int    `json:"window" validate:"gte=0,lte=38"`
	Sort   string `json:"sort" validate:"sortmode"`
	Order  []int  `json:"order,omitempty" validate:"max=40,dive,gt=0"`
	Search string `json:"search,omitempty" validate:"max=64"`

	// Force bypasses the upstream response cache.
	Force bool `json:"-"`
}

// ViewState is the client-side presentation of a ticker: sort mode, manual
// drag order and search text.
type ViewState struct {
	Sort        fdr.SortMode `json:"sort"`
	ManualOrder []int        `json:"manual_order,omitempty"`
	Search      string       `json:"search,omitempty"`
}

// ViewState returns the presentation part of r. r must be valid.
func (r Request) ViewState() ViewState {
	mode, _ := fdr.ParseSortMode(r.Sort)
	return ViewState{Sort: mode, ManualOrder: r.Order, Search: r.Search}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("sortmode", sortMode); err != nil {
		panic(err)
	}
	return validate
}

func sortMode(fl validator.FieldLevel) bool {
	_, err := fdr.ParseSortMode(fl.Field().String())
	return err == nil
}

// ParseRequest reads a Request from query parameters:
// start, window, sort, order (comma separated team ids), q and force.
func ParseRequest(q url.Values) (Request, error) {
	var (
		req Request
		err error
	)
	if req.Start, err = intParam(q, "start"); err != nil {
		return req, err
	}
	if req.Window, err = intParam(q, "window"); err != nil {
		return req, err
	}
	req.Sort = q.Get("sort")
	req.Search = strings.TrimSpace(q.Get("q"))

	if raw := strings.TrimSpace(q.Get("order")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return req, withKind(ErrInvalidRequest, errors.Errorf("order: %q is not a team id", part))
			}
			req.Order = append(req.Order, id)
		}
	}

	if raw := q.Get("force"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return req, withKind(ErrInvalidRequest, errors.Errorf("force: %q is not a boolean", raw))
		}
		req.Force = force
	}
	return req, nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, withKind(ErrInvalidRequest, errors.Errorf("%s: %q is not an integer", key, raw))
	}
	return v, nil
}
