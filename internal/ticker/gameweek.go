package ticker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
)

const (
	RoundFinished   = "finished"
	RoundInProgress = "in_progress"
	RoundUpcoming   = "upcoming"
)

// GameweekFixture is one Premier League match with both sides resolved to
// names. Scores are nil until the match has started.
type GameweekFixture struct {
	FixtureID   int        `json:"fixture_id"`
	Event       int        `json:"event"`
	Home        string     `json:"home"`
	HomeShort   string     `json:"home_short"`
	Away        string     `json:"away"`
	AwayShort   string     `json:"away_short"`
	HomeScore   *int       `json:"home_score"`
	AwayScore   *int       `json:"away_score"`
	KickoffTime *time.Time `json:"kickoff_time,omitempty"`
	Started     bool       `json:"started"`
	Finished    bool       `json:"finished"`
}

type GameweekFixtures struct {
	Gameweek int               `json:"gameweek"`
	Fixtures []GameweekFixture `json:"fixtures"`
}

// FixtureProgress counts how many fixtures of a gameweek have started and
// finished.
type FixtureProgress struct {
	Total    int `json:"total"`
	Started  int `json:"started"`
	Finished int `json:"finished"`
}

// GameweekStatus summarises where the season is. StartRound is the first
// gameweek the ticker shows by default.
type GameweekStatus struct {
	CurrentGW          int             `json:"current_gw"`
	CurrentGWFinished  bool            `json:"current_gw_finished"`
	NextGW             int             `json:"next_gw"`
	NextDeadline       string          `json:"next_deadline,omitempty"`
	NextGWFirstKickoff *time.Time      `json:"next_gw_first_kickoff,omitempty"`
	CurrentGWFixtures  FixtureProgress `json:"current_gw_fixtures"`
	RoundStatus        string          `json:"round_status"`
	StartRound         int             `json:"start_round"`
}

// GameweekFixtures lists the fixtures of gameweek gw in kickoff order.
// A gw of 0 means the current gameweek.
func (s *Service) GameweekFixtures(ctx context.Context, gw int, force bool) (*GameweekFixtures, error) {
	if gw < 0 || gw > fdr.MaxWindowSize {
		return nil, withKind(ErrInvalidRequest, errors.Errorf("gameweek must be between 0 and %d, got %d", fdr.MaxWindowSize, gw))
	}
	in, err := s.load(ctx, force, false)
	if err != nil {
		return nil, err
	}
	if gw == 0 {
		gw = fdr.CurrentEvent(in.bootstrap.Events)
	}

	raw := lo.Filter(in.fixtures, func(f fpl.Fixture, _ int) bool { return f.Event == gw })
	fdr.SortFixtures(raw)

	teams := in.bootstrap.TeamsByID()
	lookup := func(id int) fpl.Team {
		if t, ok := teams[id]; ok {
			return t
		}
		return fpl.Team{ID: id, Name: fdr.UnknownOpponent, ShortName: "???"}
	}

	out := make([]GameweekFixture, 0, len(raw))
	for _, f := range raw {
		home, away := lookup(f.TeamH), lookup(f.TeamA)
		out = append(out, GameweekFixture{
			FixtureID:   f.ID,
			Event:       f.Event,
			Home:        home.Name,
			HomeShort:   home.ShortName,
			Away:        away.Name,
			AwayShort:   away.ShortName,
			HomeScore:   f.TeamHScore,
			AwayScore:   f.TeamAScore,
			KickoffTime: f.KickoffTime,
			Started:     f.Started,
			Finished:    f.Finished,
		})
	}
	return &GameweekFixtures{Gameweek: gw, Fixtures: out}, nil
}

// GameweekStatus reports the current and next gameweek with fixture
// progress for the current one.
func (s *Service) GameweekStatus(ctx context.Context, force bool) (*GameweekStatus, error) {
	in, err := s.load(ctx, force, false)
	if err != nil {
		return nil, err
	}
	events, fixtures := in.bootstrap.Events, in.fixtures

	current := fdr.CurrentEvent(events)
	progress := fixtureProgress(fixtures, current)
	currentEvent, _ := lo.Find(events, func(e fpl.Event) bool { return e.ID == current })

	status := &GameweekStatus{
		CurrentGW:         current,
		CurrentGWFinished: currentEvent.Finished || (progress.Total > 0 && progress.Finished == progress.Total),
		NextGW:            nextEvent(events, current),
		CurrentGWFixtures: progress,
		RoundStatus:       roundStatus(progress),
		StartRound:        fdr.ResolveStartRound(events, fixtures),
	}
	if status.NextGW > 0 {
		if e, ok := lo.Find(events, func(e fpl.Event) bool { return e.ID == status.NextGW }); ok {
			status.NextDeadline = e.DeadlineTime
		}
		status.NextGWFirstKickoff = firstKickoff(fixtures, status.NextGW)
	}
	return status, nil
}

func fixtureProgress(fixtures []fpl.Fixture, gw int) FixtureProgress {
	var p FixtureProgress
	for _, f := range fixtures {
		if f.Event != gw {
			continue
		}
		p.Total++
		if f.Started || f.Finished {
			p.Started++
		}
		if f.Finished {
			p.Finished++
		}
	}
	return p
}

func roundStatus(p FixtureProgress) string {
	switch {
	case p.Total > 0 && p.Finished == p.Total:
		return RoundFinished
	case p.Started > 0:
		return RoundInProgress
	default:
		return RoundUpcoming
	}
}

// nextEvent prefers the is_next flag and falls back to current+1. It is 0
// after the last gameweek.
func nextEvent(events []fpl.Event, current int) int {
	if e, ok := lo.Find(events, func(e fpl.Event) bool { return e.IsNext }); ok {
		return e.ID
	}
	if current < fdr.MaxWindowSize {
		return current + 1
	}
	return 0
}

func firstKickoff(fixtures []fpl.Fixture, gw int) *time.Time {
	var first *time.Time
	for _, f := range fixtures {
		if f.Event != gw || f.KickoffTime == nil {
			continue
		}
		if first == nil || f.KickoffTime.Before(*first) {
			first = f.KickoffTime
		}
	}
	return first
}
