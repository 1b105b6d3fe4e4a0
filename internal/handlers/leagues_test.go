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

func TestHandleUserLeagues(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(leaguesWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues", h.handlers.HandleUserLeagues, "GET", "/api/leagues", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var leagues []models.League
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leagues))
	require.Len(t, leagues, 1)
	assert.Equal(t, "461.l.12345", leagues[0].LeagueKey)
	assert.Equal(t, "Main Street Legends", leagues[0].Name)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, provider.OpUserLeagues, fetcher.calls[0].op)
	assert.Equal(t, "nfl", fetcher.calls[0].params["game_key"])
}

func TestHandleLeagueInfo(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(leagueWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/{league}", h.handlers.HandleLeagueInfo,
		"GET", "/api/leagues/461.l.12345", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var league models.League
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &league))
	assert.Equal(t, "Main Street Legends", league.Name)
	assert.Equal(t, 1, league.StartWeek)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, provider.OpLeagueInfo, fetcher.calls[0].op)
	assert.Equal(t, "461.l.12345", fetcher.calls[0].params["league_key"])
}

func TestErrorEnvelopeMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", errors.NotFoundError("league"), http.StatusNotFound, "not_found"},
		{"rate limited", errors.RateLimitError("provider_api"), http.StatusTooManyRequests, "rate_limit"},
		{"timeout", errors.TimeoutError("league_info"), http.StatusGatewayTimeout, "timeout"},
		{"connection", errors.ConnectionError("provider unreachable", nil), http.StatusBadGateway, "connection"},
		{"unavailable", errors.UnavailableError("provider_api", nil), http.StatusServiceUnavailable, "unavailable"},
		{"internal", errors.InternalError("boom", nil), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{
				respond: func(provider.Operation, map[string]string) ([]byte, error) {
					return nil, tt.err
				},
			}
			h := newHarness(fetcher)

			rec := serve(h, "/api/leagues/{league}", h.handlers.HandleLeagueInfo,
				"GET", "/api/leagues/461.l.12345", "")
			require.Equal(t, tt.wantStatus, rec.Code)

			var envelope models.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantType, envelope.Type)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

func TestHandleAvailablePlayers_ForwardsFilters(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(availablePlayersWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/{league}/players", h.handlers.HandleAvailablePlayers,
		"GET", "/api/leagues/461.l.12345/players?position=WR&start=25&count=25", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, fetcher.calls, 1)
	call := fetcher.calls[0]
	assert.Equal(t, provider.OpAvailablePlayers, call.op)
	assert.Equal(t, "WR", call.params["position"])
	assert.Equal(t, "25", call.params["start"])
	assert.Equal(t, "25", call.params["count"])
}

func TestHandleAvailablePlayers_RejectsBadPaging(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/{league}/players", h.handlers.HandleAvailablePlayers,
		"GET", "/api/leagues/461.l.12345/players?count=lots", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, fetcher.callCount())
}

func TestHandleBatch_IsolatesFailures(t *testing.T) {
	fetcher := &stubFetcher{
		respond: func(op provider.Operation, params map[string]string) ([]byte, error) {
			if params["league_key"] == "461.l.404" {
				return nil, errors.NotFoundError("league")
			}
			return []byte(teamsWire), nil
		},
	}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/batch", h.handlers.HandleBatch,
		"POST", "/api/leagues/batch",
		`{"league_keys": ["461.l.12345", "461.l.404"], "resource": "teams"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response models.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Results, 2)

	good := response.Results[0]
	assert.Equal(t, "461.l.12345", good.LeagueKey)
	assert.Nil(t, good.Error)
	var teams []models.Team
	require.NoError(t, json.Unmarshal(good.Data, &teams))
	assert.Len(t, teams, 2)

	bad := response.Results[1]
	assert.Equal(t, "461.l.404", bad.LeagueKey)
	assert.Nil(t, bad.Data)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "not_found", bad.Error.Type)
}

func TestHandleBatch_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty league list", `{"league_keys": [], "resource": "teams"}`},
		{"unknown resource", `{"league_keys": ["461.l.1"], "resource": "scores"}`},
		{"malformed body", `{"league_keys": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			h := newHarness(fetcher)

			rec := serve(h, "/api/leagues/batch", h.handlers.HandleBatch,
				"POST", "/api/leagues/batch", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, fetcher.callCount())
		})
	}
}

func TestHandleBatch_RetriesAuthFailuresOnce(t *testing.T) {
	attempts := make(map[string]int)
	fetcher := &stubFetcher{}
	fetcher.respond = func(op provider.Operation, params map[string]string) ([]byte, error) {
		key := params["league_key"]
		attempts[key]++
		if key == "461.l.stale" && attempts[key] == 1 {
			return nil, errors.AuthError("provider rejected token")
		}
		return []byte(teamsWire), nil
	}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/batch", h.handlers.HandleBatch,
		"POST", "/api/leagues/batch",
		`{"league_keys": ["461.l.ok", "461.l.stale"], "resource": "teams"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response models.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Results, 2)
	assert.Nil(t, response.Results[0].Error)
	assert.Nil(t, response.Results[1].Error, "auth failure should succeed after the forced refresh")

	assert.Equal(t, 1, h.tokens.refreshCount())
	assert.Equal(t, 1, attempts["461.l.ok"], "healthy league must not be refetched")
	assert.Equal(t, 2, attempts["461.l.stale"])
}
