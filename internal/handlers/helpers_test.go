package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"fantasy-gateway/internal/auth"
	"fantasy-gateway/internal/circuitbreaker"
	"fantasy-gateway/internal/config"
	"fantasy-gateway/internal/fetch"
	"fantasy-gateway/internal/handlers"
	"fantasy-gateway/internal/provider"
	"fantasy-gateway/internal/token"
)

type fetchCall struct {
	op     provider.Operation
	params map[string]string
}

// stubFetcher satisfies handlers.Fetcher. respond decides each call's
// outcome; calls records every fetch in order.
type stubFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(op provider.Operation, params map[string]string) ([]byte, error)
	stats   fetch.Stats
	removed int
	lastTag string
}

func (s *stubFetcher) Fetch(ctx context.Context, op provider.Operation, params map[string]string, ttl time.Duration, tags []string) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, fetchCall{op: op, params: params})
	s.mu.Unlock()
	return s.respond(op, params)
}

func (s *stubFetcher) FetchBatch(ctx context.Context, items []fetch.BatchItem) ([]fetch.BatchResult, error) {
	results := make([]fetch.BatchResult, len(items))
	for i, item := range items {
		value, err := s.Fetch(ctx, item.Op, item.Params, item.TTL, item.Tags)
		results[i] = fetch.BatchResult{Key: item.Key, Value: value, Err: err}
	}
	return results, nil
}

func (s *stubFetcher) InvalidateTag(ctx context.Context, tag string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTag = tag
	return s.removed, nil
}

func (s *stubFetcher) Stats() fetch.Stats {
	return s.stats
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// respondWith serves one canned payload regardless of operation.
func respondWith(payload string) func(provider.Operation, map[string]string) ([]byte, error) {
	return func(provider.Operation, map[string]string) ([]byte, error) {
		return []byte(payload), nil
	}
}

// respondByOp serves payloads keyed by operation.
func respondByOp(payloads map[provider.Operation]string) func(provider.Operation, map[string]string) ([]byte, error) {
	return func(op provider.Operation, _ map[string]string) ([]byte, error) {
		return []byte(payloads[op]), nil
	}
}

type stubTokens struct {
	mu        sync.Mutex
	status    token.Status
	refreshOK bool
	refreshes int
}

func (s *stubTokens) Status() token.Status {
	return s.status
}

func (s *stubTokens) ForceRefresh(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	return s.refreshOK
}

func (s *stubTokens) refreshCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

type stubBreakers struct {
	stats circuitbreaker.Stats
}

func (s *stubBreakers) BreakerStats() circuitbreaker.Stats {
	return s.stats
}

type harness struct {
	handlers *handlers.Handlers
	fetcher  *stubFetcher
	tokens   *stubTokens
	breakers *stubBreakers
}

func newHarness(fetcher *stubFetcher) *harness {
	if fetcher.respond == nil {
		fetcher.respond = respondWith(`{"fantasy_content": {}}`)
	}
	tokens := &stubTokens{
		status:    token.Status{Running: true, AuthState: "authenticated", RefreshCount: 3},
		refreshOK: true,
	}
	breakers := &stubBreakers{stats: circuitbreaker.Stats{Name: "provider_http", State: "closed"}}
	authService, err := auth.New(auth.Config{Enabled: false}, nil)
	if err != nil {
		panic(err)
	}
	cfg := &config.Config{ProviderGameKey: "nfl"}
	return &harness{
		handlers: handlers.New(cfg, tokens, fetcher, breakers, authService, nil),
		fetcher:  fetcher,
		tokens:   tokens,
		breakers: breakers,
	}
}

// serve routes one request through a mux router so path variables resolve
// the way they do in production.
func serve(h *harness, pattern string, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, handler).Methods(method)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Wire-format fixtures in the provider's numbered-collection shape.

const leaguesWire = `{
	"fantasy_content": {
		"leagues": {
			"0": {"league": {
				"league_key": "461.l.12345",
				"league_id": "12345",
				"name": "Main Street Legends",
				"season": "2026",
				"num_teams": "12",
				"current_week": "5",
				"start_week": "1",
				"end_week": "17",
				"start_date": "2026-09-10",
				"end_date": "2027-01-05"
			}},
			"count": 1
		}
	}
}`

const leagueWire = `{
	"fantasy_content": {
		"league": {
			"league_key": "461.l.12345",
			"league_id": "12345",
			"name": "Main Street Legends",
			"season": "2026",
			"num_teams": "12",
			"current_week": "5",
			"start_week": "1",
			"end_week": "3",
			"start_date": "2026-09-10",
			"end_date": "2026-09-28"
		}
	}
}`

const leagueNoDatesWire = `{
	"fantasy_content": {
		"league": {
			"league_key": "461.l.99",
			"name": "Dateless League"
		}
	}
}`

const teamsWire = `{
	"fantasy_content": {
		"teams": {
			"0": {"team": {
				"team_key": "461.l.12345.t.1",
				"team_id": "1",
				"name": "Gridiron Gang"
			}},
			"1": {"team": {
				"team_key": "461.l.12345.t.2",
				"team_id": "2",
				"name": "The Replacements"
			}},
			"count": 2
		}
	}
}`

const rosterWire = `{
	"fantasy_content": {
		"roster": {
			"week": "5",
			"players": {
				"0": {"player": {
					"player_key": "461.p.1",
					"name": {"full": "Steady Quarterback"},
					"display_position": "QB",
					"projected_points": 21.5,
					"selected_position": {"position": "BN"}
				}},
				"1": {"player": {
					"player_key": "461.p.2",
					"name": {"full": "Lead Back"},
					"display_position": "RB",
					"projected_points": 16.0,
					"selected_position": {"position": "BN"}
				}},
				"2": {"player": {
					"player_key": "461.p.3",
					"name": {"full": "Change Of Pace"},
					"display_position": "RB",
					"projected_points": 11.0,
					"selected_position": {"position": "BN"}
				}},
				"3": {"player": {
					"player_key": "461.p.4",
					"name": {"full": "Alpha Receiver"},
					"display_position": "WR",
					"projected_points": 14.5,
					"selected_position": {"position": "BN"}
				}},
				"4": {"player": {
					"player_key": "461.p.5",
					"name": {"full": "Slot Receiver"},
					"display_position": "WR",
					"projected_points": 10.5,
					"selected_position": {"position": "BN"}
				}},
				"5": {"player": {
					"player_key": "461.p.6",
					"name": {"full": "Move Tight End"},
					"display_position": "TE",
					"projected_points": 9.0,
					"selected_position": {"position": "BN"}
				}},
				"6": {"player": {
					"player_key": "461.p.7",
					"name": {"full": "Third Receiver"},
					"display_position": "WR",
					"projected_points": 8.5,
					"selected_position": {"position": "BN"}
				}},
				"7": {"player": {
					"player_key": "461.p.8",
					"name": {"full": "Reliable Kicker"},
					"display_position": "K",
					"projected_points": 7.5,
					"selected_position": {"position": "BN"}
				}},
				"8": {"player": {
					"player_key": "461.p.9",
					"name": {"full": "Stout Defense"},
					"display_position": "DEF",
					"projected_points": 6.5,
					"selected_position": {"position": "BN"}
				}},
				"count": 9
			}
		}
	}
}`

const matchupWire = `{
	"fantasy_content": {
		"matchups": {
			"0": {"matchup": {
				"week": "5",
				"status": "midevent",
				"teams": {
					"0": {"team": {
						"team_key": "461.l.12345.t.1",
						"name": "Gridiron Gang",
						"team_projected_points": {"total": "112.40"}
					}},
					"1": {"team": {
						"team_key": "461.l.12345.t.2",
						"name": "The Replacements",
						"team_projected_points": {"total": "98.20"}
					}},
					"count": 2
				}
			}},
			"count": 1
		}
	}
}`

const emptyMatchupsWire = `{
	"fantasy_content": {
		"matchups": {
			"count": 0
		}
	}
}`

const rosterBWire = `{
	"fantasy_content": {
		"roster": {
			"week": "5",
			"players": {
				"0": {"player": {
					"player_key": "461.p.50",
					"name": {"full": "Star Runner"},
					"display_position": "RB",
					"projected_points": 18.0,
					"selected_position": {"position": "RB"}
				}},
				"1": {"player": {
					"player_key": "461.p.51",
					"name": {"full": "Depth Receiver"},
					"display_position": "WR",
					"projected_points": 7.0,
					"selected_position": {"position": "BN"}
				}},
				"count": 2
			}
		}
	}
}`

const availablePlayersWire = `{
	"fantasy_content": {
		"players": {
			"0": {"player": {
				"player_key": "461.p.90",
				"name": {"full": "Waiver Gem"},
				"display_position": "WR",
				"projected_points": 13.5
			}},
			"1": {"player": {
				"player_key": "461.p.91",
				"name": {"full": "Marginal Pickup"},
				"display_position": "RB",
				"projected_points": 5.0
			}},
			"count": 2
		}
	}
}`
