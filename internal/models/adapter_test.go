package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeagues_NumberedCollection(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"leagues": {
				"0": {"league": {
					"league_key": "461.l.12345",
					"league_id": 12345,
					"name": "Main Street Legends",
					"season": "2026",
					"num_teams": "12",
					"scoring_type": "head",
					"league_type": "private",
					"current_week": "3",
					"start_week": "1",
					"end_week": "17",
					"start_date": "2026-09-10",
					"end_date": "2027-01-05",
					"is_finished": "0"
				}},
				"1": {"league": {
					"league_key": "461.l.67890",
					"league_id": "67890",
					"name": {"full": "Office League"},
					"season": 2026,
					"num_teams": 10,
					"current_week": 3,
					"is_finished": 1
				}},
				"count": 2
			}
		}
	}`)

	leagues, err := ParseLeagues(raw)
	require.NoError(t, err)
	require.Len(t, leagues, 2)

	assert.Equal(t, "461.l.12345", leagues[0].LeagueKey)
	assert.Equal(t, "12345", leagues[0].LeagueID)
	assert.Equal(t, "Main Street Legends", leagues[0].Name)
	assert.Equal(t, 12, leagues[0].NumTeams)
	assert.Equal(t, 3, leagues[0].CurrentWeek)
	assert.Equal(t, 1, leagues[0].StartWeek)
	assert.Equal(t, 17, leagues[0].EndWeek)
	assert.Equal(t, "2026-09-10", leagues[0].StartDate)
	assert.Equal(t, "2027-01-05", leagues[0].EndDate)
	assert.False(t, leagues[0].IsFinished)

	assert.Equal(t, "Office League", leagues[1].Name)
	assert.Equal(t, "2026", leagues[1].Season)
	assert.True(t, leagues[1].IsFinished)
}

func TestParseLeagues_PlainArray(t *testing.T) {
	raw := []byte(`{"leagues": [{"league_key": "461.l.1", "name": "A"}, {"league_key": "461.l.2", "name": "B"}]}`)

	leagues, err := ParseLeagues(raw)
	require.NoError(t, err)
	require.Len(t, leagues, 2)
	assert.Equal(t, "461.l.2", leagues[1].LeagueKey)
}

func TestParseLeague_Wrapped(t *testing.T) {
	raw := []byte(`{"fantasy_content": {"league": {"league_key": "461.l.12345", "name": "Main Street Legends", "num_teams": "12"}}}`)

	league, err := ParseLeague(raw)
	require.NoError(t, err)
	assert.Equal(t, "461.l.12345", league.LeagueKey)
	assert.Equal(t, 12, league.NumTeams)
}

func TestParseLeagues_Malformed(t *testing.T) {
	_, err := ParseLeagues([]byte(`{"fantasy_content": {"games": []}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse leagues")

	_, err = ParseLeagues([]byte(`not json`))
	require.Error(t, err)
}

func TestParseTeams_ManagerShapes(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"teams": {
				"0": {"team": {
					"team_key": "461.l.12345.t.1",
					"team_id": "1",
					"name": "Gridiron Gang",
					"managers": [{"manager": {"nickname": "Sam"}}],
					"waiver_priority": "4",
					"number_of_moves": "11",
					"number_of_trades": 2
				}},
				"1": {"team": {
					"team_key": "461.l.12345.t.2",
					"team_id": 2,
					"name": {"full": "The Replacements"},
					"managers": {"manager": {"nickname": "Alex"}}
				}},
				"count": 2
			}
		}
	}`)

	teams, err := ParseTeams(raw)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, "Gridiron Gang", teams[0].Name)
	assert.Equal(t, "Sam", teams[0].ManagerName)
	assert.Equal(t, 4, teams[0].WaiverPriority)
	assert.Equal(t, 11, teams[0].Moves)
	assert.Equal(t, 2, teams[0].Trades)

	assert.Equal(t, "The Replacements", teams[1].Name)
	assert.Equal(t, "Alex", teams[1].ManagerName)
}

func TestParseStandings_WrappedTotals(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"standings": {
				"0": {"team": {
					"team_key": "461.l.12345.t.2",
					"name": "The Replacements",
					"team_standings": {
						"rank": "2",
						"outcome_totals": {"wins": "7", "losses": "3", "ties": 0, "percentage": ".700"},
						"points_for": "1024.5",
						"points_against": "987.22"
					}
				}},
				"1": {"team": {
					"team_key": "461.l.12345.t.1",
					"team_name": "Gridiron Gang",
					"rank": 1,
					"wins": 8, "losses": 2, "ties": 0,
					"percentage": 0.8,
					"points_for": 1110.1,
					"points_against": 900.4
				}},
				"count": 2
			}
		}
	}`)

	standings, err := ParseStandings(raw)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "Gridiron Gang", standings[0].TeamName)
	assert.Equal(t, 8, standings[0].Wins)

	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, "The Replacements", standings[1].TeamName)
	assert.Equal(t, 7, standings[1].Wins)
	assert.Equal(t, 3, standings[1].Losses)
	assert.InDelta(t, 0.7, standings[1].Percentage, 0.0001)
	assert.InDelta(t, 1024.5, standings[1].PointsFor, 0.0001)
}

func TestParseStandings_TeamsSectionFallback(t *testing.T) {
	raw := []byte(`{"teams": [{"team": {"team_key": "461.l.1.t.1", "name": "A", "team_standings": {"rank": 1}}}]}`)

	standings, err := ParseStandings(raw)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].Rank)
}

func TestParsePlayers_Normalization(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"players": {
				"0": {"player": {
					"player_key": "461.p.31023",
					"name": {"full": "Lamar Jackson", "first": "Lamar", "last": "Jackson"},
					"display_position": "QB",
					"editorial_team_abbr": "BAL",
					"percent_owned": "99.5",
					"player_points": {"total": "24.3"},
					"bye_weeks": {"week": "14"},
					"eligible_positions": [{"position": "QB"}]
				}},
				"1": {"player": {
					"player_key": "461.p.40001",
					"full_name": "Rookie Runner",
					"primary_position": "RB",
					"team_abbr": "DAL",
					"status": "Q",
					"injury_note": "hamstring",
					"projected_points": 11.2,
					"eligible_positions": ["RB", "W/R/T"]
				}},
				"count": 2
			}
		}
	}`)

	players, err := ParsePlayers(raw)
	require.NoError(t, err)
	require.Len(t, players, 2)

	lamar := players[0]
	assert.Equal(t, "Lamar Jackson", lamar.Name)
	assert.Equal(t, "QB", lamar.Position)
	assert.Equal(t, "BAL", lamar.Team)
	assert.Equal(t, InjuryHealthy, lamar.InjuryStatus)
	assert.False(t, lamar.Injured())
	assert.InDelta(t, 99.5, lamar.PercentOwned, 0.0001)
	assert.InDelta(t, 24.3, lamar.ProjectedPoints, 0.0001)
	assert.Equal(t, 14, lamar.ByeWeek)
	assert.Equal(t, []string{"QB"}, lamar.EligiblePositions)

	rookie := players[1]
	assert.Equal(t, "Rookie Runner", rookie.Name)
	assert.Equal(t, "RB", rookie.Position)
	assert.Equal(t, InjuryQuestionable, rookie.InjuryStatus)
	assert.True(t, rookie.Injured())
	assert.Equal(t, "hamstring", rookie.InjuryNote)
	assert.InDelta(t, 11.2, rookie.ProjectedPoints, 0.0001)
	assert.Equal(t, []string{"RB", "W/R/T"}, rookie.EligiblePositions)
}

func TestParsePlayer_MissingNameDefaults(t *testing.T) {
	player, err := ParsePlayer([]byte(`{"player": {"player_key": "461.p.1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Unknown Player", player.Name)
	assert.Equal(t, InjuryHealthy, player.InjuryStatus)
}

func TestParseRoster_SelectedPositions(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"roster": {
				"week": "5",
				"players": {
					"0": {"player": {
						"player_key": "461.p.1",
						"name": {"full": "Flex Back"},
						"display_position": "RB",
						"selected_position": {"position": "W/R/T"}
					}},
					"1": {"player": {
						"player_key": "461.p.2",
						"name": {"full": "Bench Guy"},
						"display_position": "WR",
						"selected_position": {"position": "BN"}
					}},
					"2": {"player": {
						"player_key": "461.p.3",
						"name": {"full": "No Slot"},
						"display_position": "TE"
					}},
					"count": 3
				}
			}
		}
	}`)

	roster, err := ParseRoster(raw, "461.l.12345.t.1")
	require.NoError(t, err)
	assert.Equal(t, "461.l.12345.t.1", roster.TeamKey)
	assert.Equal(t, 5, roster.Week)
	require.Len(t, roster.Slots, 3)

	assert.Equal(t, "W/R/T", roster.Slots[0].Slot)
	assert.Equal(t, "BN", roster.Slots[1].Slot)
	assert.Equal(t, "TE", roster.Slots[2].Slot)

	players := roster.Players()
	require.Len(t, players, 3)
	assert.Equal(t, "Flex Back", players[0].Name)
}

func TestParseMatchups_PointsWrappers(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"matchups": {
				"0": {"matchup": {
					"week": "5",
					"status": "postevent",
					"is_playoffs": "0",
					"teams": {
						"0": {"team": {
							"team_key": "461.l.12345.t.1",
							"name": "Gridiron Gang",
							"team_points": {"total": "112.40"},
							"team_projected_points": {"total": "108.10"}
						}},
						"1": {"team": {
							"team_key": "461.l.12345.t.2",
							"name": "The Replacements",
							"team_points": {"total": "98.22"},
							"team_projected_points": {"total": "104.50"}
						}},
						"count": 2
					}
				}},
				"count": 1
			}
		}
	}`)

	matchups, err := ParseMatchups(raw)
	require.NoError(t, err)
	require.Len(t, matchups, 1)

	matchup := matchups[0]
	assert.Equal(t, 5, matchup.Week)
	assert.Equal(t, "postevent", matchup.Status)
	assert.False(t, matchup.IsPlayoffs)
	assert.Equal(t, "461.l.12345.t.1", matchup.Home.TeamKey)
	assert.InDelta(t, 112.40, matchup.Home.ActualPoints, 0.0001)
	assert.InDelta(t, 104.50, matchup.Away.ProjectedPoints, 0.0001)
	assert.Equal(t, "The Replacements", matchup.Away.TeamName)
}

func TestParseTransactions_DataVariants(t *testing.T) {
	raw := []byte(`{
		"fantasy_content": {
			"transactions": {
				"0": {"transaction": {
					"transaction_key": "461.l.12345.tr.100",
					"type": "add/drop",
					"status": "successful",
					"timestamp": "1755648000",
					"players": {
						"0": {"player": {
							"player_key": "461.p.9",
							"name": {"full": "Pickup Player"},
							"transaction_data": [{"type": "add", "source_type": "waivers", "destination_team_name": "Gridiron Gang"}]
						}},
						"1": {"player": {
							"player_key": "461.p.10",
							"name": {"full": "Dropped Player"},
							"transaction_data": {"type": "drop", "source_team_name": "Gridiron Gang", "destination_type": "waivers"}
						}},
						"count": 2
					}
				}},
				"count": 1
			}
		}
	}`)

	transactions, err := ParseTransactions(raw)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	transaction := transactions[0]
	assert.Equal(t, "add/drop", transaction.Type)
	assert.Equal(t, "successful", transaction.Status)
	assert.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), transaction.Timestamp)
	require.Len(t, transaction.Players, 2)

	assert.Equal(t, "add", transaction.Players[0].Action)
	assert.Equal(t, "waivers", transaction.Players[0].Source)
	assert.Equal(t, "Gridiron Gang", transaction.Players[0].Destination)

	assert.Equal(t, "drop", transaction.Players[1].Action)
	assert.Equal(t, "Gridiron Gang", transaction.Players[1].Source)
	assert.Equal(t, "waivers", transaction.Players[1].Destination)
}
