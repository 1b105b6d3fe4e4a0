package lineup

import (
	"fmt"
	"sort"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
)

// minimumUpgrade is how many projected points an available player must
// add over the weakest eligible starter before they are worth a claim.
const minimumUpgrade = 1.0

// WaiverTarget is an available player worth claiming, with the starter
// they would displace.
type WaiverTarget struct {
	Player             models.Player `json:"player"`
	AdjustedProjection float64       `json:"adjusted_projection"`
	Upgrade            float64       `json:"upgrade"`
	Slot               string        `json:"slot"`
	Replaces           models.Player `json:"replaces"`
}

// WaiverTargets filters the available pool down to players who would
// improve the roster's recommended lineup by more than the minimum
// upgrade threshold. Targets come back sorted by upgrade, best first.
func WaiverTargets(roster models.Roster, available []models.Player, strategy Strategy) ([]WaiverTarget, error) {
	rec, err := Optimize(roster, strategy)
	if err != nil {
		return nil, err
	}

	starters := make(map[string]LineupSlot, len(rec.Starters))
	for _, starter := range rec.Starters {
		starters[starter.Slot] = starter
	}

	var targets []WaiverTarget
	for _, candidate := range available {
		adjusted := AdjustedProjection(candidate, rec.Strategy)
		if adjusted <= minimumUpgrade {
			continue
		}

		// Find the weakest starter among the slots this player can fill.
		// An unfilled slot counts as a zero-point starter.
		best := WaiverTarget{Player: candidate, AdjustedProjection: adjusted}
		found := false
		for _, slot := range starterSlots() {
			if !eligibleFor(candidate, slot) {
				continue
			}
			baseline := 0.0
			incumbent := models.Player{}
			if starter, ok := starters[slot.Name]; ok {
				baseline = starter.AdjustedProjection
				incumbent = starter.Player
			}
			upgrade := adjusted - baseline
			if !found || upgrade > best.Upgrade {
				best.Upgrade = upgrade
				best.Slot = slot.Name
				best.Replaces = incumbent
				found = true
			}
		}
		if found && best.Upgrade > minimumUpgrade {
			targets = append(targets, best)
		}
	}

	sort.SliceStable(targets, func(i, j int) bool {
		if targets[i].Upgrade != targets[j].Upgrade {
			return targets[i].Upgrade > targets[j].Upgrade
		}
		return targets[i].Player.Name < targets[j].Player.Name
	})
	return targets, nil
}

// TradeVerdict is the recommendation for the side giving up the first
// player list.
type TradeVerdict string

const (
	TradeAccept TradeVerdict = "accept"
	TradeReject TradeVerdict = "reject"
	TradeFair   TradeVerdict = "fair"
)

// TradeAssessment compares the projected value moving in each direction.
type TradeAssessment struct {
	Strategy     Strategy     `json:"strategy"`
	GiveTotal    float64      `json:"give_total"`
	ReceiveTotal float64      `json:"receive_total"`
	Differential float64      `json:"differential"`
	Verdict      TradeVerdict `json:"verdict"`
}

// EvaluateTrade sums strategy-adjusted projections for both sides and
// recommends from the giving side's perspective. Differences inside a
// 10% fairness band count as fair.
func EvaluateTrade(give, receive []models.Player, strategy Strategy) (*TradeAssessment, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if strategy == "" {
		strategy = StrategyBalanced
	}
	if len(give) == 0 || len(receive) == 0 {
		return nil, errors.ValidationError("both trade sides need at least one player")
	}

	assessment := &TradeAssessment{Strategy: strategy}
	for _, player := range give {
		assessment.GiveTotal += AdjustedProjection(player, strategy)
	}
	for _, player := range receive {
		assessment.ReceiveTotal += AdjustedProjection(player, strategy)
	}
	assessment.Differential = assessment.ReceiveTotal - assessment.GiveTotal

	band := 0.10 * assessment.GiveTotal
	if assessment.ReceiveTotal > assessment.GiveTotal {
		band = 0.10 * assessment.ReceiveTotal
	}
	switch {
	case assessment.Differential > band:
		assessment.Verdict = TradeAccept
	case assessment.Differential < -band:
		assessment.Verdict = TradeReject
	default:
		assessment.Verdict = TradeFair
	}
	return assessment, nil
}

// MatchupAnalysis is the projected outlook for one team in one matchup.
type MatchupAnalysis struct {
	Week             int     `json:"week"`
	TeamKey          string  `json:"team_key"`
	OpponentKey      string  `json:"opponent_key"`
	Opponent         string  `json:"opponent"`
	ProjectedFor     float64 `json:"projected_for"`
	ProjectedAgainst float64 `json:"projected_against"`
	ProjectedMargin  float64 `json:"projected_margin"`
	WinLikelihood    float64 `json:"win_likelihood"`
	Favored          bool    `json:"favored"`
}

// AnalyzeMatchup reads the matchup from teamKey's side: projected margin
// plus a win likelihood derived from each side's share of the combined
// projection, clamped away from certainty.
func AnalyzeMatchup(matchup models.Matchup, teamKey string) (*MatchupAnalysis, error) {
	var ours, theirs models.MatchupSide
	switch teamKey {
	case matchup.Home.TeamKey:
		ours, theirs = matchup.Home, matchup.Away
	case matchup.Away.TeamKey:
		ours, theirs = matchup.Away, matchup.Home
	default:
		return nil, errors.ValidationError(fmt.Sprintf("team %s is not in this matchup", teamKey))
	}

	analysis := &MatchupAnalysis{
		Week:             matchup.Week,
		TeamKey:          ours.TeamKey,
		OpponentKey:      theirs.TeamKey,
		Opponent:         theirs.TeamName,
		ProjectedFor:     ours.ProjectedPoints,
		ProjectedAgainst: theirs.ProjectedPoints,
		ProjectedMargin:  ours.ProjectedPoints - theirs.ProjectedPoints,
	}

	total := ours.ProjectedPoints + theirs.ProjectedPoints
	if total <= 0 {
		analysis.WinLikelihood = 0.5
	} else {
		likelihood := ours.ProjectedPoints / total
		if likelihood < 0.05 {
			likelihood = 0.05
		}
		if likelihood > 0.95 {
			likelihood = 0.95
		}
		analysis.WinLikelihood = likelihood
	}
	analysis.Favored = analysis.ProjectedMargin > 0
	return analysis, nil
}
