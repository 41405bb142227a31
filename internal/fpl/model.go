// Package fpl holds the subset of the public Fantasy Premier League API
// payloads that the fixture ticker consumes.
package fpl

import "time"

// Team holds bootstrap team metadata, including the six strength ratings
// (overall/attack/defence, split home/away) on the ~1000-1350 scale.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      int    `json:"code"`

	StrengthOverallHome int `json:"strength_overall_home"`
	StrengthOverallAway int `json:"strength_overall_away"`
	StrengthAttackHome  int `json:"strength_attack_home"`
	StrengthAttackAway  int `json:"strength_attack_away"`
	StrengthDefenceHome int `json:"strength_defence_home"`
	StrengthDefenceAway int `json:"strength_defence_away"`
}

// Fixture is a single scheduled match. Event is 0 when the fixture has
// not been assigned a gameweek yet. Score pointers are nil until the
// match has started.
type Fixture struct {
	ID              int        `json:"id"`
	Event           int        `json:"event"`
	TeamH           int        `json:"team_h"`
	TeamA           int        `json:"team_a"`
	TeamHDifficulty int        `json:"team_h_difficulty"`
	TeamADifficulty int        `json:"team_a_difficulty"`
	KickoffTime     *time.Time `json:"kickoff_time"`
	Started         bool       `json:"started"`
	Finished        bool       `json:"finished"`
	TeamHScore      *int       `json:"team_h_score"`
	TeamAScore      *int       `json:"team_a_score"`
}

// Event is one gameweek entry from bootstrap-static events[].
type Event struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
}

// Bootstrap is the decoded subset of bootstrap-static.
type Bootstrap struct {
	Teams  []Team  `json:"teams"`
	Events []Event `json:"events"`
}

// TeamsByID indexes teams by id.
func (b *Bootstrap) TeamsByID() map[int]Team {
	out := make(map[int]Team, len(b.Teams))
	for _, t := range b.Teams {
		out[t.ID] = t
	}
	return out
}
