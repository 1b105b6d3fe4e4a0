package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/fetch"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
)

// HandleUserLeagues lists the authenticated account's leagues
// @Summary List user leagues
// @Description Returns the leagues for the configured game scope
// @Tags leagues
// @Produce json
// @Success 200 {array} models.League
// @Failure 502 {object} models.APIError "Provider call failed"
// @Router /api/leagues [get]
func (h *Handlers) HandleUserLeagues(w http.ResponseWriter, r *http.Request) {
	raw, err := h.fetchWithReauth(r.Context(), provider.OpUserLeagues, map[string]string{
		"game_key": h.config.ProviderGameKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	leagues, err := models.ParseLeagues(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, leagues)
}

// HandleLeagueInfo returns one league's settings and state
// @Summary League info
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Success 200 {object} models.League
// @Failure 404 {object} models.APIError "League not found"
// @Router /api/leagues/{league} [get]
func (h *Handlers) HandleLeagueInfo(w http.ResponseWriter, r *http.Request) {
	leagueKey := mux.Vars(r)["league"]
	raw, err := h.fetchWithReauth(r.Context(), provider.OpLeagueInfo, map[string]string{
		"league_key": leagueKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	league, err := models.ParseLeague(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, league)
}

// HandleLeagueTeams lists a league's teams
// @Summary League teams
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Success 200 {array} models.Team
// @Failure 404 {object} models.APIError "League not found"
// @Router /api/leagues/{league}/teams [get]
func (h *Handlers) HandleLeagueTeams(w http.ResponseWriter, r *http.Request) {
	leagueKey := mux.Vars(r)["league"]
	raw, err := h.fetchWithReauth(r.Context(), provider.OpLeagueTeams, map[string]string{
		"league_key": leagueKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	teams, err := models.ParseTeams(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, teams)
}

// HandleLeagueStandings returns a league's standings
// @Summary League standings
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Success 200 {array} models.Standing
// @Failure 404 {object} models.APIError "League not found"
// @Router /api/leagues/{league}/standings [get]
func (h *Handlers) HandleLeagueStandings(w http.ResponseWriter, r *http.Request) {
	leagueKey := mux.Vars(r)["league"]
	raw, err := h.fetchWithReauth(r.Context(), provider.OpLeagueStandings, map[string]string{
		"league_key": leagueKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	standings, err := models.ParseStandings(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, standings)
}

// HandleAvailablePlayers lists available players in a league
// @Summary Available players
// @Description Free agents and waiver players, optionally filtered by position and paged
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Param position query string false "Position filter (QB, RB, WR, TE, K, DEF)"
// @Param start query int false "Pagination offset"
// @Param count query int false "Page size"
// @Success 200 {array} models.Player
// @Failure 400 {object} models.APIError "Bad pagination parameters"
// @Router /api/leagues/{league}/players [get]
func (h *Handlers) HandleAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{"league_key": mux.Vars(r)["league"]}
	query := r.URL.Query()
	if position := query.Get("position"); position != "" {
		params["position"] = position
	}
	for _, name := range []string{"start", "count"} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(w, errors.ValidationError(name+" must be a non-negative integer"))
			return
		}
		params[name] = strconv.Itoa(n)
	}

	raw, err := h.fetchWithReauth(r.Context(), provider.OpAvailablePlayers, params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	players, err := models.ParsePlayers(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, players)
}

// HandleInjuryReport lists a league's injured players
// @Summary Injury report
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Success 200 {array} models.Player
// @Failure 404 {object} models.APIError "League not found"
// @Router /api/leagues/{league}/injuries [get]
func (h *Handlers) HandleInjuryReport(w http.ResponseWriter, r *http.Request) {
	leagueKey := mux.Vars(r)["league"]
	raw, err := h.fetchWithReauth(r.Context(), provider.OpInjuryReport, map[string]string{
		"league_key": leagueKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	players, err := models.ParsePlayers(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, players)
}

// HandleLeagueTransactions lists recent league transactions
// @Summary League transactions
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Param count query int false "Maximum transactions to return"
// @Success 200 {array} models.Transaction
// @Failure 404 {object} models.APIError "League not found"
// @Router /api/leagues/{league}/transactions [get]
func (h *Handlers) HandleLeagueTransactions(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{"league_key": mux.Vars(r)["league"]}
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(w, errors.ValidationError("count must be a positive integer"))
			return
		}
		params["count"] = strconv.Itoa(n)
	}

	raw, err := h.fetchWithReauth(r.Context(), provider.OpLeagueTransactions, params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	transactions, err := models.ParseTransactions(raw)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

// batchResources maps batch resource names onto provider operations.
var batchResources = map[string]provider.Operation{
	"info":         provider.OpLeagueInfo,
	"teams":        provider.OpLeagueTeams,
	"standings":    provider.OpLeagueStandings,
	"players":      provider.OpAvailablePlayers,
	"injuries":     provider.OpInjuryReport,
	"transactions": provider.OpLeagueTransactions,
}

func parseBatchResource(resource string, raw []byte) (interface{}, error) {
	switch resource {
	case "info":
		return models.ParseLeague(raw)
	case "teams":
		return models.ParseTeams(raw)
	case "standings":
		return models.ParseStandings(raw)
	case "players", "injuries":
		return models.ParsePlayers(raw)
	case "transactions":
		return models.ParseTransactions(raw)
	}
	return nil, errors.ValidationError("unknown batch resource: " + resource)
}

// HandleBatch fetches one resource across several leagues
// @Summary Batch league fetch
// @Description Fetches the named resource for every league key; each league succeeds or fails on its own
// @Tags leagues
// @Accept json
// @Produce json
// @Param request body models.BatchRequest true "League keys and resource"
// @Success 200 {object} models.BatchResponse
// @Failure 400 {object} models.APIError "Unknown resource or empty league list"
// @Router /api/leagues/batch [post]
func (h *Handlers) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if len(req.LeagueKeys) == 0 {
		h.respondError(w, errors.ValidationError("league_keys is required"))
		return
	}
	op, ok := batchResources[req.Resource]
	if !ok {
		h.respondError(w, errors.ValidationError("unknown batch resource: "+req.Resource))
		return
	}

	items := make([]fetch.BatchItem, 0, len(req.LeagueKeys))
	for _, leagueKey := range req.LeagueKeys {
		params := map[string]string{"league_key": leagueKey}
		if req.Week > 0 {
			params["week"] = strconv.Itoa(req.Week)
		}
		items = append(items, fetch.BatchItem{Key: leagueKey, Op: op, Params: params})
	}

	results, err := h.fetcher.FetchBatch(r.Context(), items)
	if results == nil {
		h.respondError(w, err)
		return
	}
	results = h.retryAuthFailures(r.Context(), items, results)

	response := models.BatchResponse{Results: make([]models.BatchEntry, 0, len(results))}
	for i, result := range results {
		entry := models.BatchEntry{LeagueKey: req.LeagueKeys[i]}
		if result.Err != nil {
			entry.Error = apiErrorFrom(result.Err)
			response.Results = append(response.Results, entry)
			continue
		}
		parsed, parseErr := parseBatchResource(req.Resource, result.Value)
		if parseErr != nil {
			entry.Error = apiErrorFrom(parseErr)
			response.Results = append(response.Results, entry)
			continue
		}
		data, marshalErr := json.Marshal(parsed)
		if marshalErr != nil {
			entry.Error = apiErrorFrom(errors.InternalError("failed to encode resource", marshalErr))
			response.Results = append(response.Results, entry)
			continue
		}
		entry.Data = data
		response.Results = append(response.Results, entry)
	}
	h.respondJSON(w, http.StatusOK, response)
}

// retryAuthFailures re-runs batch items that failed on provider credential
// rejection after one forced refresh. Other failures stand as reported.
func (h *Handlers) retryAuthFailures(ctx context.Context, items []fetch.BatchItem, results []fetch.BatchResult) []fetch.BatchResult {
	var failed []int
	for i, result := range results {
		if result.Err != nil && errors.IsType(result.Err, errors.ErrTypeAuth) {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 {
		return results
	}

	h.logger.Warn("Provider rejected credentials during batch, forcing refresh",
		logging.Field{Key: "failed_items", Value: len(failed)})
	if !h.tokens.ForceRefresh(ctx) {
		return results
	}

	retryItems := make([]fetch.BatchItem, 0, len(failed))
	for _, i := range failed {
		retryItems = append(retryItems, items[i])
	}
	retried, _ := h.fetcher.FetchBatch(ctx, retryItems)
	for j, i := range failed {
		if j < len(retried) {
			results[i] = retried[j]
		}
	}
	return results
}
