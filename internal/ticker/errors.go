package ticker

import "github.com/pkg/errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrTeamNotFound   = errors.New("team not found")
	ErrUpstream       = errors.New("upstream unavailable")
)

// kindError tags err with one of the sentinels above so callers can map
// it with errors.Is while keeping the underlying cause.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string        { return e.kind.Error() + ": " + e.err.Error() }
func (e *kindError) Unwrap() error        { return e.err }
func (e *kindError) Is(target error) bool { return target == e.kind }

func withKind(kind error, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}
