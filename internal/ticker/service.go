// Package ticker assembles the fixture ticker: it loads upstream data,
// picks a rank source, runs the scorer and applies the requested view.
package ticker

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fpl"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/observability"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/rank"
)

// Source provides raw upstream payloads. *fetch.Client and fetch.Snapshots
// implement it.
type Source interface {
	BootstrapStatic(ctx context.Context, force bool) ([]byte, error)
	Fixtures(ctx context.Context, force bool) ([]byte, error)
	Standings(ctx context.Context, force bool) ([]byte, error)
}

const (
	RankSourceESPN     = "espn"
	RankSourceFixtures = "fixtures"
)

// RankTable is the standings table used for rank adjustments.
type RankTable struct {
	Source  string       `json:"source"`
	Entries []rank.Entry `json:"entries"`
}

type Result struct {
	StartRound  int                         `json:"start_round"`
	Window      int                         `json:"window"`
	View        ViewState                   `json:"view"`
	RankSource  string                      `json:"rank_source"`
	GeneratedAt time.Time                   `json:"generated_at"`
	Teams       []fdr.TeamDifficultySummary `json:"teams"`
}

type TeamResult struct {
	StartRound  int                       `json:"start_round"`
	Window      int                       `json:"window"`
	RankSource  string                    `json:"rank_source"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Team        fdr.TeamDifficultySummary `json:"team"`
}

type Service struct {
	Source        Source
	Scorer        *fdr.Scorer
	DefaultWindow int
	Now           func() time.Time

	validate *validator.Validate
}

func NewService(src Source, scorer *fdr.Scorer, defaultWindow int) *Service {
	if scorer == nil {
		scorer = fdr.NewScorer(fdr.DefaultAdjustments())
	}
	if defaultWindow <= 0 {
		defaultWindow = fdr.DefaultWindowSize
	}
	return &Service{
		Source:        src,
		Scorer:        scorer,
		DefaultWindow: defaultWindow,
		Now:           time.Now,
		validate:      newValidator(),
	}
}

type inputs struct {
	bootstrap *fpl.Bootstrap
	fixtures  []fpl.Fixture
	ranks     RankTable
}

// Build computes and renders the ticker for every team.
func (s *Service) Build(ctx context.Context, req Request) (*Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, withKind(ErrInvalidRequest, err)
	}
	in, err := s.load(ctx, req.Force, true)
	if err != nil {
		return nil, err
	}
	start, window := s.window(in, req)
	rows := s.compute(in, start, window)

	view := req.ViewState()
	return &Result{
		StartRound:  start,
		Window:      window,
		View:        view,
		RankSource:  in.ranks.Source,
		GeneratedAt: s.Now().UTC(),
		Teams:       Render(rows, view),
	}, nil
}

// Team computes the ticker row of a single team. View fields of req are
// ignored.
func (s *Service) Team(ctx context.Context, teamID int, req Request) (*TeamResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, withKind(ErrInvalidRequest, err)
	}
	if teamID <= 0 {
		return nil, withKind(ErrInvalidRequest, errors.Errorf("team id must be positive, got %d", teamID))
	}
	in, err := s.load(ctx, req.Force, true)
	if err != nil {
		return nil, err
	}
	if !lo.ContainsBy(in.bootstrap.Teams, func(t fpl.Team) bool { return t.ID == teamID }) {
		return nil, withKind(ErrTeamNotFound, errors.Errorf("team %d", teamID))
	}

	// Opponents are resolved against the full team set, so score everyone.
	start, window := s.window(in, req)
	rows := s.compute(in, start, window)
	row, _ := lo.Find(rows, func(r fdr.TeamDifficultySummary) bool { return r.TeamID == teamID })
	return &TeamResult{
		StartRound:  start,
		Window:      window,
		RankSource:  in.ranks.Source,
		GeneratedAt: s.Now().UTC(),
		Team:        row,
	}, nil
}

// Standings returns the rank table the scorer would use right now.
func (s *Service) Standings(ctx context.Context, force bool) (*RankTable, error) {
	in, err := s.load(ctx, force, true)
	if err != nil {
		return nil, err
	}
	return &in.ranks, nil
}

func (s *Service) window(in *inputs, req Request) (int, int) {
	start := req.Start
	if start == 0 {
		start = fdr.ResolveStartRound(in.bootstrap.Events, in.fixtures)
	}
	window := req.Window
	if window == 0 {
		window = s.DefaultWindow
	}
	return start, window
}

func (s *Service) compute(in *inputs, start, window int) []fdr.TeamDifficultySummary {
	t0 := time.Now()
	defer func() { observability.ComputeDuration.Observe(time.Since(t0).Seconds()) }()
	return s.Scorer.Compute(in.bootstrap.Teams, in.fixtures, start, window, rank.NewResolver(in.ranks.Entries))
}

// load fetches bootstrap and fixtures concurrently; either failing fails
// the call. When withStandings is set, standings are fetched alongside but
// never fail it.
func (s *Service) load(ctx context.Context, force, withStandings bool) (*inputs, error) {
	var (
		in           inputs
		standings    []byte
		standingsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.Source.BootstrapStatic(gctx, force)
		if err != nil {
			return withKind(ErrUpstream, err)
		}
		in.bootstrap, err = fpl.DecodeBootstrap(raw)
		return withKind(ErrUpstream, err)
	})
	g.Go(func() error {
		raw, err := s.Source.Fixtures(gctx, force)
		if err != nil {
			return withKind(ErrUpstream, err)
		}
		in.fixtures, err = fpl.DecodeFixtures(raw)
		return withKind(ErrUpstream, err)
	})
	if withStandings {
		g.Go(func() error {
			standings, standingsErr = s.Source.Standings(gctx, force)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !withStandings {
		return &in, nil
	}

	in.ranks = s.rankTable(in.bootstrap.Teams, in.fixtures, standings, standingsErr)
	observability.RankSource.WithLabelValues(in.ranks.Source).Inc()
	return &in, nil
}

func (s *Service) rankTable(teams []fpl.Team, fixtures []fpl.Fixture, standings []byte, fetchErr error) RankTable {
	err := fetchErr
	if err == nil {
		var entries []rank.Entry
		entries, err = rank.ParseESPNStandings(standings)
		if err == nil {
			return RankTable{Source: RankSourceESPN, Entries: entries}
		}
	}
	log.Warn().Err(err).Msg("standings unavailable, ranking from fixture results")
	return RankTable{
		Source:  RankSourceFixtures,
		Entries: rank.EntriesFromTable(rank.TableFromFixtures(teams, fixtures)),
	}
}
