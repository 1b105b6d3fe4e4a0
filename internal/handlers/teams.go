package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
)

// HandleTeamRoster returns a team's roster
// @Summary Team roster
// @Description Returns the team's slotted roster, for the current week or the requested one
// @Tags teams
// @Produce json
// @Param team path string true "Team key"
// @Param week query int false "Week number"
// @Success 200 {object} models.Roster
// @Failure 400 {object} models.APIError "Bad week parameter"
// @Failure 404 {object} models.APIError "Team not found"
// @Router /api/teams/{team}/roster [get]
func (h *Handlers) HandleTeamRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.teamRoster(r, mux.Vars(r)["team"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, roster)
}

// HandleTeamMatchup returns a team's matchup for one week
// @Summary Team matchup
// @Tags teams
// @Produce json
// @Param team path string true "Team key"
// @Param week query int false "Week number"
// @Success 200 {object} models.Matchup
// @Failure 404 {object} models.APIError "No matchup for the week"
// @Router /api/teams/{team}/matchup [get]
func (h *Handlers) HandleTeamMatchup(w http.ResponseWriter, r *http.Request) {
	matchup, err := h.teamMatchup(r, mux.Vars(r)["team"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, matchup)
}

// teamMatchup fetches the single matchup the week query names. Bye weeks and
// out-of-season weeks come back empty from the provider and answer not found.
func (h *Handlers) teamMatchup(r *http.Request, teamKey string) (*models.Matchup, error) {
	week, err := weekParam(r)
	if err != nil {
		return nil, err
	}

	params := map[string]string{"team_key": teamKey}
	if week != "" {
		params["week"] = week
	}
	raw, err := h.fetchWithReauth(r.Context(), provider.OpTeamMatchup, params)
	if err != nil {
		return nil, err
	}
	matchups, err := models.ParseMatchups(raw)
	if err != nil {
		return nil, err
	}
	if len(matchups) == 0 {
		return nil, errors.NotFoundError("matchup")
	}
	return &matchups[0], nil
}
