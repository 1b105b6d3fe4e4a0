// Package models holds the typed entities the gateway works with. Raw
// provider responses are parsed into these exactly once, at the adapter
// boundary; everything past that point uses typed fields.
package models

import (
	"time"
)

// League represents one fantasy league the user belongs to.
type League struct {
	LeagueKey   string `json:"league_key"`
	LeagueID    string `json:"league_id"`
	Name        string `json:"name"`
	Season      string `json:"season"`
	NumTeams    int    `json:"num_teams"`
	ScoringType string `json:"scoring_type,omitempty"`
	LeagueType  string `json:"league_type,omitempty"`
	URL         string `json:"url,omitempty"`
	CurrentWeek int    `json:"current_week"`
	StartWeek   int    `json:"start_week,omitempty"`
	EndWeek     int    `json:"end_week,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsFinished  bool   `json:"is_finished"`
}

// Team represents one team within a league.
type Team struct {
	TeamKey        string `json:"team_key"`
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	ManagerName    string `json:"manager_name,omitempty"`
	WaiverPriority int    `json:"waiver_priority,omitempty"`
	Moves          int    `json:"moves,omitempty"`
	Trades         int    `json:"trades,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
}

// Standing represents one team's position in the league table.
type Standing struct {
	TeamKey       string  `json:"team_key"`
	TeamName      string  `json:"team_name"`
	Rank          int     `json:"rank"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// Injury status values as the provider reports them. Anything absent is
// normalized to healthy at the adapter.
const (
	InjuryHealthy          = "Healthy"
	InjuryQuestionable     = "Q"
	InjuryDoubtful         = "D"
	InjuryOut              = "O"
	InjuryInjuredReserve   = "IR"
	InjuryPhysicallyUnable = "PUP"
)

// Player represents one player, on a roster or on waivers.
type Player struct {
	PlayerKey         string   `json:"player_key"`
	Name              string   `json:"name"`
	Position          string   `json:"position"`
	Team              string   `json:"team,omitempty"`
	InjuryStatus      string   `json:"injury_status"`
	InjuryNote        string   `json:"injury_note,omitempty"`
	PercentOwned      float64  `json:"percent_owned,omitempty"`
	ProjectedPoints   float64  `json:"projected_points,omitempty"`
	ByeWeek           int      `json:"bye_week,omitempty"`
	EligiblePositions []string `json:"eligible_positions,omitempty"`
}

// Injured reports whether the player carries any injury designation.
func (p Player) Injured() bool {
	return p.InjuryStatus != "" && p.InjuryStatus != InjuryHealthy
}

// RosterSlot represents one lineup slot and the player filling it. Slot is
// the selected position: a starting position, W/R/T for flex, BN or IR.
type RosterSlot struct {
	Slot   string `json:"slot"`
	Player Player `json:"player"`
}

// Roster represents a team's lineup for one week.
type Roster struct {
	TeamKey string       `json:"team_key"`
	Week    int          `json:"week,omitempty"`
	Slots   []RosterSlot `json:"slots"`
}

// Players returns the roster's players regardless of slot.
func (r Roster) Players() []Player {
	players := make([]Player, 0, len(r.Slots))
	for _, slot := range r.Slots {
		players = append(players, slot.Player)
	}
	return players
}

// MatchupSide represents one team's half of a weekly matchup.
type MatchupSide struct {
	TeamKey         string  `json:"team_key"`
	TeamName        string  `json:"team_name"`
	ActualPoints    float64 `json:"actual_points"`
	ProjectedPoints float64 `json:"projected_points"`
}

// Matchup represents one head-to-head pairing for a week.
type Matchup struct {
	Week       int         `json:"week"`
	Status     string      `json:"status,omitempty"`
	IsPlayoffs bool        `json:"is_playoffs,omitempty"`
	Home       MatchupSide `json:"home"`
	Away       MatchupSide `json:"away"`
}

// TransactionPlayer represents one player moved by a transaction.
type TransactionPlayer struct {
	PlayerKey   string `json:"player_key"`
	Name        string `json:"name"`
	Action      string `json:"action"` // add, drop, trade
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// Transaction represents one league transaction (add, drop, trade).
type Transaction struct {
	TransactionKey string              `json:"transaction_key"`
	Type           string              `json:"type"`
	Status         string              `json:"status,omitempty"`
	Timestamp      time.Time           `json:"timestamp,omitempty"`
	Players        []TransactionPlayer `json:"players,omitempty"`
}

// ScheduleEvent represents one matchup week as a calendar entry for the
// league schedule feed.
type ScheduleEvent struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
}
