package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/cache"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/config"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fdr"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/fetch"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/logger"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/store"
	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

func main() {
	app := &cli.App{
		Name:  "fplticker-dev",
		Usage: "snapshot FPL payloads and print the fixture ticker",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "raw-root", Value: "data/raw", Usage: "root directory for raw JSON snapshots"},
			&cli.BoolFlag{Name: "pretty", Value: true, Usage: "pretty-print JSON to disk"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "zerolog level"},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(logger.Options{DevMode: true, Level: c.String("log-level")})
			return nil
		},
		Commands: []*cli.Command{
			fetchCommand(),
			tickerCommand(),
			inventoryCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "download bootstrap-static, fixtures and standings into --raw-root",
		Action: func(c *cli.Context) error {
			client := fetch.NewClient(nil)
			client.Store = store.NewJSONStore(c.String("raw-root"))
			client.PrettyWrite = c.Bool("pretty")

			ctx := c.Context
			if _, err := client.BootstrapStatic(ctx, true); err != nil {
				return err
			}
			if _, err := client.Fixtures(ctx, true); err != nil {
				return err
			}
			if _, err := client.Standings(ctx, true); err != nil {
				// Standings are optional for the ticker.
				log.Warn().Err(err).Msg("standings not saved")
			}
			log.Info().Str("raw_root", c.String("raw-root")).Msg("snapshots written")
			return nil
		},
	}
}

func tickerCommand() *cli.Command {
	return &cli.Command{
		Name:  "ticker",
		Usage: "compute and print the fixture ticker",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "offline", Usage: "read snapshots from --raw-root instead of the live API"},
			&cli.IntFlag{Name: "start", Usage: "first gameweek (0 = current)"},
			&cli.IntFlag{Name: "window", Value: fdr.DefaultWindowSize, Usage: "number of gameweeks"},
			&cli.StringFlag{Name: "sort", Value: string(fdr.SortOverall), Usage: "overall|attack|defence"},
			&cli.IntSliceFlag{Name: "order", Usage: "manual team id order"},
			&cli.StringFlag{Name: "search", Usage: "filter by team name"},
			&cli.StringFlag{Name: "adjustments", EnvVars: []string{"FPLTICKER_ADJUSTMENTS_FILE"}, Usage: "YAML file overriding difficulty constants"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			adj, err := config.LoadAdjustments(c.String("adjustments"))
			if err != nil {
				return err
			}

			var src ticker.Source
			if c.Bool("offline") {
				src = fetch.Snapshots{Store: store.NewJSONStore(c.String("raw-root"))}
			} else {
				src = fetch.NewClient(cache.NewMemory(0))
			}

			svc := ticker.NewService(src, fdr.NewScorer(adj), fdr.DefaultWindowSize)
			res, err := svc.Build(c.Context, ticker.Request{
				Start:  c.Int("start"),
				Window: c.Int("window"),
				Sort:   c.String("sort"),
				Order:  c.IntSlice("order"),
				Search: c.String("search"),
			})
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printTable(os.Stdout, res)
		},
	}
}

// printTable writes one line per team: totals, then one cell per slot,
// e.g. "LIV(A) 4.7". Blank gameweeks print as "-".
func printTable(w io.Writer, res *ticker.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "GW %d-%d (%s, ranks: %s)\n", res.StartRound, res.StartRound+res.Window-1, res.View.Sort, res.RankSource)
	fmt.Fprint(tw, "TEAM\tOVR\tATT\tDEF\tFIXTURES\n")
	for _, row := range res.Teams {
		cells := make([]string, 0, len(row.Fixtures))
		for _, pf := range row.Fixtures {
			cells = append(cells, fixtureCell(pf))
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%s\n", row.TeamShort, row.Overall, row.Attack, row.Defence, strings.Join(cells, "  "))
	}
	return tw.Flush()
}

func fixtureCell(pf fdr.ProcessedFixture) string {
	if pf.Blank {
		return "-"
	}
	venue := "A"
	if pf.IsHome {
		venue = "H"
	}
	return fmt.Sprintf("%s(%s) %.1f", pf.OpponentShort, venue, pf.Difficulty)
}
