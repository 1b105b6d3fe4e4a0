// Package provider is the outbound edge of the gateway: a registry of the
// fantasy provider's read operations and a Client that renders paths,
// attaches credentials and classifies failures into the shared error
// taxonomy. Everything above this package works with operation IDs and
// typed errors, never raw HTTP statuses.
package provider

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"fantasy-gateway/internal/common/errors"
)

// Operation identifies one provider read operation.
type Operation string

const (
	OpUserLeagues        Operation = "user_leagues"
	OpLeagueInfo         Operation = "league_info"
	OpLeagueTeams        Operation = "league_teams"
	OpTeamRoster         Operation = "team_roster"
	OpTeamMatchup        Operation = "team_matchup"
	OpPlayerInfo         Operation = "player_info"
	OpAvailablePlayers   Operation = "available_players"
	OpInjuryReport       Operation = "injury_report"
	OpLeagueStandings    Operation = "league_standings"
	OpLeagueTransactions Operation = "league_transactions"
)

// ProviderTag marks every cache entry written from provider responses, so
// one invalidation can drop them all.
const ProviderTag = "provider_api"

// matrixParam maps a caller-facing parameter onto the matrix key the
// provider expects in the path (";week=5" style).
type matrixParam struct {
	Param string
	Key   string
}

// Spec describes one registry entry: the path template with {param}
// placeholders, which parameters must be present, which optional ones are
// appended as matrix parameters, and how long responses stay cacheable.
type Spec struct {
	Path     string
	Required []string
	Matrix   []matrixParam
	CacheTTL time.Duration
}

// registry holds every operation the gateway can perform against the
// provider. League and player data age at very different rates, so each
// operation carries its own TTL: league metadata barely moves while the
// available-player pool churns constantly.
var registry = map[Operation]Spec{
	OpUserLeagues: {
		Path:     "/users;use_login=1/games;game_keys={game_key}/leagues",
		Required: []string{"game_key"},
		CacheTTL: 4 * time.Hour,
	},
	OpLeagueInfo: {
		Path:     "/league/{league_key}",
		Required: []string{"league_key"},
		CacheTTL: 24 * time.Hour,
	},
	OpLeagueTeams: {
		Path:     "/league/{league_key}/teams",
		Required: []string{"league_key"},
		CacheTTL: time.Hour,
	},
	OpTeamRoster: {
		Path:     "/team/{team_key}/roster",
		Required: []string{"team_key"},
		Matrix:   []matrixParam{{Param: "week", Key: "week"}},
		CacheTTL: 2 * time.Hour,
	},
	OpTeamMatchup: {
		Path:     "/team/{team_key}/matchups",
		Required: []string{"team_key"},
		Matrix:   []matrixParam{{Param: "week", Key: "weeks"}},
		CacheTTL: time.Hour,
	},
	OpPlayerInfo: {
		Path:     "/player/{player_key}",
		Required: []string{"player_key"},
		CacheTTL: 6 * time.Hour,
	},
	OpAvailablePlayers: {
		Path:     "/league/{league_key}/players;status=A;sort=AR",
		Required: []string{"league_key"},
		Matrix:   []matrixParam{{Param: "position", Key: "position"}, {Param: "start", Key: "start"}, {Param: "count", Key: "count"}},
		CacheTTL: 30 * time.Minute,
	},
	OpInjuryReport: {
		Path:     "/league/{league_key}/players;status=IR",
		Required: []string{"league_key"},
		CacheTTL: 2 * time.Hour,
	},
	OpLeagueStandings: {
		Path:     "/league/{league_key}/standings",
		Required: []string{"league_key"},
		CacheTTL: time.Hour,
	},
	OpLeagueTransactions: {
		Path:     "/league/{league_key}/transactions",
		Required: []string{"league_key"},
		Matrix:   []matrixParam{{Param: "count", Key: "count"}},
		CacheTTL: 30 * time.Minute,
	},
}

// Lookup returns the registry entry for op.
func Lookup(op Operation) (Spec, bool) {
	spec, ok := registry[op]
	return spec, ok
}

// Operations returns every registered operation in stable order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(registry))
	for op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Valid reports whether op is registered.
func (op Operation) Valid() bool {
	_, ok := registry[op]
	return ok
}

// CacheTTL returns the operation's default response lifetime, or zero for
// an unknown operation.
func (op Operation) CacheTTL() time.Duration {
	return registry[op].CacheTTL
}

// DefaultTags derives the cache tags for one call: the provider-wide tag,
// the operation tag, and scope tags for the league and team the call
// touches. Invalidating "league:<key>" drops every cached response about
// that league regardless of operation.
func (op Operation) DefaultTags(params map[string]string) []string {
	tags := []string{ProviderTag, string(op)}
	if v := params["league_key"]; v != "" {
		tags = append(tags, "league:"+v)
	}
	if v := params["team_key"]; v != "" {
		tags = append(tags, "team:"+v)
	}
	return tags
}

// renderPath substitutes required placeholders and appends present optional
// parameters as matrix parameters. Values are path-escaped.
func (s Spec) renderPath(op Operation, params map[string]string) (string, error) {
	path := s.Path
	for _, name := range s.Required {
		value := params[name]
		if value == "" {
			return "", errors.ValidationError(fmt.Sprintf("operation %s requires parameter %s", op, name))
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	for _, mp := range s.Matrix {
		if value := params[mp.Param]; value != "" {
			path += ";" + mp.Key + "=" + url.PathEscape(value)
		}
	}
	return path, nil
}
