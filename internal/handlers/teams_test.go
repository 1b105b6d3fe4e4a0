package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
)

func TestHandleTeamRoster(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(rosterWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/teams/{team}/roster", h.handlers.HandleTeamRoster,
		"GET", "/api/teams/461.l.12345.t.1/roster?week=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var roster models.Roster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roster))
	assert.Equal(t, "461.l.12345.t.1", roster.TeamKey)
	assert.Equal(t, 5, roster.Week)
	assert.Len(t, roster.Slots, 9)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, provider.OpTeamRoster, fetcher.calls[0].op)
	assert.Equal(t, "461.l.12345.t.1", fetcher.calls[0].params["team_key"])
	assert.Equal(t, "5", fetcher.calls[0].params["week"])
}

func TestHandleTeamRoster_RejectsBadWeek(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newHarness(fetcher)

	rec := serve(h, "/api/teams/{team}/roster", h.handlers.HandleTeamRoster,
		"GET", "/api/teams/461.l.12345.t.1/roster?week=soon", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, fetcher.callCount())
}

func TestHandleTeamMatchup(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(matchupWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/teams/{team}/matchup", h.handlers.HandleTeamMatchup,
		"GET", "/api/teams/461.l.12345.t.1/matchup?week=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var matchup models.Matchup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matchup))
	assert.Equal(t, 5, matchup.Week)
	assert.Equal(t, "461.l.12345.t.1", matchup.Home.TeamKey)
	assert.Equal(t, "The Replacements", matchup.Away.TeamName)
}

func TestHandleTeamMatchup_ByeWeek(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(emptyMatchupsWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/teams/{team}/matchup", h.handlers.HandleTeamMatchup,
		"GET", "/api/teams/461.l.12345.t.1/matchup?week=14", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "not_found", envelope.Type)
}

func TestProviderAuthFailureForcesOneRefresh(t *testing.T) {
	calls := 0
	fetcher := &stubFetcher{}
	fetcher.respond = func(provider.Operation, map[string]string) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.AuthError("provider rejected token")
		}
		return []byte(rosterWire), nil
	}
	h := newHarness(fetcher)

	rec := serve(h, "/api/teams/{team}/roster", h.handlers.HandleTeamRoster,
		"GET", "/api/teams/461.l.12345.t.1/roster", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.tokens.refreshCount())
	assert.Equal(t, 2, fetcher.callCount())
}

func TestProviderAuthFailureWithoutRecovery(t *testing.T) {
	fetcher := &stubFetcher{
		respond: func(provider.Operation, map[string]string) ([]byte, error) {
			return nil, errors.AuthError("provider rejected token")
		},
	}
	h := newHarness(fetcher)
	h.tokens.refreshOK = false

	rec := serve(h, "/api/teams/{team}/roster", h.handlers.HandleTeamRoster,
		"GET", "/api/teams/461.l.12345.t.1/roster", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var envelope models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "authentication", envelope.Type)

	assert.Equal(t, 1, h.tokens.refreshCount())
	assert.Equal(t, 1, fetcher.callCount(), "failed refresh must not trigger a second fetch")
}
