package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

type TickerArgs struct {
	Start  int    `json:"start" jsonschema:"First gameweek to show (0 = current)"`
	Window int    `json:"window" jsonschema:"Number of gameweeks (0 = default, max 38)"`
	Sort   string `json:"sort" jsonschema:"Sort mode: overall|attack|defence (default overall)"`
	Order  []int  `json:"order,omitempty" jsonschema:"Manual team id order; unlisted teams follow in sorted order"`
	Search string `json:"search,omitempty" jsonschema:"Case-insensitive filter on team name or short name"`
}

type TeamFixturesArgs struct {
	TeamID int `json:"team_id" jsonschema:"FPL team id (required)"`
	Start  int `json:"start" jsonschema:"First gameweek to show (0 = current)"`
	Window int `json:"window" jsonschema:"Number of gameweeks (0 = default, max 38)"`
}

type StandingsArgs struct {
	Force bool `json:"force,omitempty" jsonschema:"Bypass the upstream cache"`
}

type GameweekFixturesArgs struct {
	GW int `json:"gw" jsonschema:"Gameweek number (0 = current)"`
}

// GameweekStatusArgs is the input schema for gameweek_status (no parameters).
type GameweekStatusArgs struct{}

func (s *Server) registerTools() {
	addTool(s.mcp, &s.registry, &mcp.Tool{
		Name:        "fixture_ticker",
		Description: "Upcoming fixture difficulty for every Premier League team, sorted easiest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TickerArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.svc.Build(ctx, ticker.Request{
			Start:  args.Start,
			Window: args.Window,
			Sort:   args.Sort,
			Order:  args.Order,
			Search: args.Search,
		})
		return toolJSON(res, err)
	})

	addTool(s.mcp, &s.registry, &mcp.Tool{
		Name:        "team_fixtures",
		Description: "Per-fixture difficulty breakdown (base, rank and home/away adjustments) for one team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamFixturesArgs) (*mcp.CallToolResult, any, error) {
		if args.TeamID == 0 {
			return toolError(fmt.Errorf("team_id is required")), nil, nil
		}
		res, err := s.svc.Team(ctx, args.TeamID, ticker.Request{Start: args.Start, Window: args.Window})
		return toolJSON(res, err)
	})

	addTool(s.mcp, &s.registry, &mcp.Tool{
		Name:        "standings",
		Description: "League table used for opponent rank adjustments, with its source",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.svc.Standings(ctx, args.Force)
		return toolJSON(res, err)
	})

	addTool(s.mcp, &s.registry, &mcp.Tool{
		Name:        "gameweek_fixtures",
		Description: "Premier League fixtures and scores for one gameweek (0 = current)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameweekFixturesArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.svc.GameweekFixtures(ctx, args.GW, false)
		return toolJSON(res, err)
	})

	addTool(s.mcp, &s.registry, &mcp.Tool{
		Name:        "gameweek_status",
		Description: "Current and next gameweek, fixture progress and the ticker's default start round",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameweekStatusArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.svc.GameweekStatus(ctx, false)
		return toolJSON(res, err)
	})
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
