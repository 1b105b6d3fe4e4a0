package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/lineup"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
)

// HandleLineup recommends a starting lineup
// @Summary Optimal lineup
// @Description Greedy lineup recommendation for the team's roster under the chosen strategy
// @Tags insights
// @Produce json
// @Param team path string true "Team key"
// @Param week query int false "Week number"
// @Param strategy query string false "conservative, balanced or aggressive"
// @Success 200 {object} lineup.Recommendation
// @Failure 400 {object} models.APIError "Unknown strategy or bad week"
// @Router /api/teams/{team}/lineup [get]
func (h *Handlers) HandleLineup(w http.ResponseWriter, r *http.Request) {
	teamKey := mux.Vars(r)["team"]
	strategy, err := lineup.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	roster, err := h.teamRoster(r, teamKey)
	if err != nil {
		h.respondError(w, err)
		return
	}

	recommendation, err := lineup.Optimize(*roster, strategy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, recommendation)
}

// HandleWaivers suggests waiver pickups for a team
// @Summary Waiver targets
// @Description Available players whose adjusted projection beats a current starter
// @Tags insights
// @Produce json
// @Param league path string true "League key"
// @Param team query string true "Team key to improve"
// @Param strategy query string false "conservative, balanced or aggressive"
// @Success 200 {array} lineup.WaiverTarget
// @Failure 400 {object} models.APIError "Missing team or unknown strategy"
// @Router /api/leagues/{league}/waivers [get]
func (h *Handlers) HandleWaivers(w http.ResponseWriter, r *http.Request) {
	leagueKey := mux.Vars(r)["league"]
	teamKey := r.URL.Query().Get("team")
	if teamKey == "" {
		h.respondError(w, errors.ValidationError("team query parameter is required"))
		return
	}
	strategy, err := lineup.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	roster, err := h.teamRoster(r, teamKey)
	if err != nil {
		h.respondError(w, err)
		return
	}
	rawPlayers, err := h.fetchWithReauth(r.Context(), provider.OpAvailablePlayers, map[string]string{
		"league_key": leagueKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	available, err := models.ParsePlayers(rawPlayers)
	if err != nil {
		h.respondError(w, err)
		return
	}

	targets, err := lineup.WaiverTargets(*roster, available, strategy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, targets)
}

// HandleTradeAnalyze evaluates a proposed trade
// @Summary Trade analysis
// @Description Compares the summed adjusted projections of the two sides from team A's perspective
// @Tags insights
// @Accept json
// @Produce json
// @Param strategy query string false "conservative, balanced or aggressive"
// @Param request body models.TradeAnalyzeRequest true "Teams and the players each side sends"
// @Success 200 {object} lineup.TradeAssessment
// @Failure 400 {object} models.APIError "Players missing from a roster"
// @Router /api/trades/analyze [post]
func (h *Handlers) HandleTradeAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.TradeAnalyzeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.TeamAKey == "" || req.TeamBKey == "" {
		h.respondError(w, errors.ValidationError("team_a_key and team_b_key are required"))
		return
	}
	strategy, err := lineup.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	give, err := h.rosterPlayers(r, req.TeamAKey, req.TeamASends, req.Week)
	if err != nil {
		h.respondError(w, err)
		return
	}
	receive, err := h.rosterPlayers(r, req.TeamBKey, req.TeamBSends, req.Week)
	if err != nil {
		h.respondError(w, err)
		return
	}

	assessment, err := lineup.EvaluateTrade(give, receive, strategy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, assessment)
}

// HandleMatchupAnalysis projects a team's weekly matchup outcome
// @Summary Matchup analysis
// @Description Projected margin and win likelihood for the team's matchup
// @Tags insights
// @Produce json
// @Param team path string true "Team key"
// @Param week query int false "Week number"
// @Success 200 {object} lineup.MatchupAnalysis
// @Failure 404 {object} models.APIError "No matchup for the week"
// @Router /api/teams/{team}/matchup/analysis [get]
func (h *Handlers) HandleMatchupAnalysis(w http.ResponseWriter, r *http.Request) {
	teamKey := mux.Vars(r)["team"]
	matchup, err := h.teamMatchup(r, teamKey)
	if err != nil {
		h.respondError(w, err)
		return
	}

	analysis, err := lineup.AnalyzeMatchup(*matchup, teamKey)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, analysis)
}

// teamRoster fetches and parses one team's roster, honoring ?week=.
func (h *Handlers) teamRoster(r *http.Request, teamKey string) (*models.Roster, error) {
	week, err := weekParam(r)
	if err != nil {
		return nil, err
	}
	params := map[string]string{"team_key": teamKey}
	if week != "" {
		params["week"] = week
	}
	raw, err := h.fetchWithReauth(r.Context(), provider.OpTeamRoster, params)
	if err != nil {
		return nil, err
	}
	return models.ParseRoster(raw, teamKey)
}

// rosterPlayers resolves the named player keys against a team's roster.
func (h *Handlers) rosterPlayers(r *http.Request, teamKey string, playerKeys []string, week int) ([]models.Player, error) {
	params := map[string]string{"team_key": teamKey}
	if week > 0 {
		params["week"] = strconv.Itoa(week)
	}
	raw, err := h.fetchWithReauth(r.Context(), provider.OpTeamRoster, params)
	if err != nil {
		return nil, err
	}
	roster, err := models.ParseRoster(raw, teamKey)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]models.Player, len(roster.Slots))
	for _, player := range roster.Players() {
		byKey[player.PlayerKey] = player
	}
	players := make([]models.Player, 0, len(playerKeys))
	for _, key := range playerKeys {
		player, ok := byKey[key]
		if !ok {
			return nil, errors.ValidationError("player " + key + " is not on roster " + teamKey)
		}
		players = append(players, player)
	}
	return players, nil
}
