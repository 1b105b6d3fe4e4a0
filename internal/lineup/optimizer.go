package lineup

import (
	"fmt"
	"sort"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
)

// Slot is one starting lineup slot and the positions that may fill it.
type Slot struct {
	Name     string   `json:"name"`
	Eligible []string `json:"eligible"`
}

// starterSlots returns the standard head-to-head lineup template. Greedy
// fill walks the slots in this order, so dedicated slots claim players
// before FLEX sees the leftovers.
func starterSlots() []Slot {
	return []Slot{
		{Name: "QB", Eligible: []string{"QB"}},
		{Name: "RB1", Eligible: []string{"RB"}},
		{Name: "RB2", Eligible: []string{"RB"}},
		{Name: "WR1", Eligible: []string{"WR"}},
		{Name: "WR2", Eligible: []string{"WR"}},
		{Name: "TE", Eligible: []string{"TE"}},
		{Name: "FLEX", Eligible: []string{"RB", "WR", "TE"}},
		{Name: "K", Eligible: []string{"K"}},
		{Name: "DEF", Eligible: []string{"DEF"}},
	}
}

// LineupSlot pairs a slot with the player recommended to start there.
type LineupSlot struct {
	Slot               string        `json:"slot"`
	Player             models.Player `json:"player"`
	AdjustedProjection float64       `json:"adjusted_projection"`
}

// Recommendation is a full start/sit recommendation for one roster.
type Recommendation struct {
	TeamKey        string          `json:"team_key"`
	Week           int             `json:"week,omitempty"`
	Strategy       Strategy        `json:"strategy"`
	Starters       []LineupSlot    `json:"starters"`
	Bench          []models.Player `json:"bench"`
	ProjectedTotal float64         `json:"projected_total"`
	Notes          []string        `json:"notes,omitempty"`
}

// eligibleFor reports whether the player may fill the slot, using the
// provider's eligibility list when present and the primary position
// otherwise.
func eligibleFor(player models.Player, slot Slot) bool {
	positions := player.EligiblePositions
	if len(positions) == 0 {
		positions = []string{player.Position}
	}
	for _, have := range positions {
		for _, want := range slot.Eligible {
			if have == want {
				return true
			}
		}
	}
	return false
}

// rankPool sorts players by adjusted projection, highest first, with the
// name as a deterministic tie break.
func rankPool(players []models.Player, strategy Strategy) []models.Player {
	ranked := make([]models.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi := AdjustedProjection(ranked[i], strategy)
		pj := AdjustedProjection(ranked[j], strategy)
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// Optimize builds the recommended starting lineup for the roster: slots
// are filled greedily in template order with the best remaining eligible
// player by strategy-adjusted projection.
func Optimize(roster models.Roster, strategy Strategy) (*Recommendation, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if strategy == "" {
		strategy = StrategyBalanced
	}
	pool := roster.Players()
	if len(pool) == 0 {
		return nil, errors.ValidationError("roster has no players")
	}

	ranked := rankPool(pool, strategy)
	used := make(map[string]bool, len(ranked))
	rec := &Recommendation{
		TeamKey:  roster.TeamKey,
		Week:     roster.Week,
		Strategy: strategy,
	}

	for _, slot := range starterSlots() {
		filled := false
		for _, player := range ranked {
			if used[player.PlayerKey] || !startable(player) || !eligibleFor(player, slot) {
				continue
			}
			adjusted := AdjustedProjection(player, strategy)
			rec.Starters = append(rec.Starters, LineupSlot{
				Slot:               slot.Name,
				Player:             player,
				AdjustedProjection: adjusted,
			})
			rec.ProjectedTotal += adjusted
			used[player.PlayerKey] = true
			filled = true
			break
		}
		if !filled {
			rec.Notes = append(rec.Notes, fmt.Sprintf("no eligible player for %s", slot.Name))
		}
	}

	for _, player := range ranked {
		if !used[player.PlayerKey] {
			rec.Bench = append(rec.Bench, player)
		}
	}
	return rec, nil
}
