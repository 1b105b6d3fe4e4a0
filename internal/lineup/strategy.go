// Package lineup turns fetched rosters, player pools and matchups into
// start/sit, waiver, trade and matchup insights. Everything here is pure
// computation over typed entities; fetching is the caller's job.
package lineup

import (
	"fmt"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
)

// Strategy selects how hard injury designations discount a player's
// projection.
type Strategy string

const (
	// StrategyConservative benches injury risks aggressively.
	StrategyConservative Strategy = "conservative"
	// StrategyBalanced is the default middle ground.
	StrategyBalanced Strategy = "balanced"
	// StrategyAggressive starts anyone not ruled out.
	StrategyAggressive Strategy = "aggressive"
)

// ParseStrategy validates a strategy name. Empty means balanced.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "":
		return StrategyBalanced, nil
	case StrategyConservative, StrategyBalanced, StrategyAggressive:
		return Strategy(name), nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("unknown strategy: %s", name))
	}
}

// Injury multipliers per strategy. Out, IR and PUP players never start;
// the strategies differ on questionable and doubtful.
var injuryMultipliers = map[Strategy]map[string]float64{
	StrategyConservative: {
		models.InjuryQuestionable: 0.5,
		models.InjuryDoubtful:     0.25,
	},
	StrategyBalanced: {
		models.InjuryQuestionable: 0.8,
		models.InjuryDoubtful:     0.5,
	},
	StrategyAggressive: {
		models.InjuryQuestionable: 1.0,
		models.InjuryDoubtful:     1.0,
	},
}

// startable reports whether a player may appear in a recommended
// lineup at all. Out, IR and PUP designations bench a player under
// every strategy.
func startable(player models.Player) bool {
	switch player.InjuryStatus {
	case models.InjuryOut, models.InjuryInjuredReserve, models.InjuryPhysicallyUnable:
		return false
	}
	return true
}

// AdjustedProjection returns the player's projected points under the
// strategy's injury discounting.
func AdjustedProjection(player models.Player, strategy Strategy) float64 {
	switch player.InjuryStatus {
	case "", models.InjuryHealthy:
		return player.ProjectedPoints
	case models.InjuryOut, models.InjuryInjuredReserve, models.InjuryPhysicallyUnable:
		return 0
	}

	multipliers, ok := injuryMultipliers[strategy]
	if !ok {
		multipliers = injuryMultipliers[StrategyBalanced]
	}
	if multiplier, ok := multipliers[player.InjuryStatus]; ok {
		return player.ProjectedPoints * multiplier
	}
	// Unrecognized designations get the questionable treatment.
	return player.ProjectedPoints * multipliers[models.InjuryQuestionable]
}
