package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fantasy-gateway/internal/common/errors"
)

// The provider emits JSON in several shapes for the same data: numbers as
// strings, collections as objects keyed "0","1",... with a "count" field,
// entities wrapped one level deep ({"league": {...}}) and names either flat
// or split into {full, first, last}. Everything here exists to fold those
// variants into the typed entities exactly once.

func parseError(what string, err error) error {
	return errors.InternalError("failed to parse "+what, err)
}

// flexString accepts a JSON string, number or boolean.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = ""
		return nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return fmt.Errorf("expected scalar, got %s", string(trimmed[0]))
	}
	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = flexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*n = flexInt(int(f))
	return nil
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (n *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = flexFloat(v)
	return nil
}

// flexBool accepts a JSON boolean, a 0/1 number or their string forms.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch s {
	case "1", "true", "True":
		*b = true
	case "", "0", "false", "False", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	return nil
}

// nameField accepts a flat string or a {full, first, last} wrapper.
type nameField string

func (n *nameField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*n = ""
		return nil
	}
	if trimmed[0] == '{' {
		var wrapper struct {
			Full  string `json:"full"`
			First string `json:"first"`
			Last  string `json:"last"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		if wrapper.Full != "" {
			*n = nameField(wrapper.Full)
			return nil
		}
		*n = nameField(strings.TrimSpace(wrapper.First + " " + wrapper.Last))
		return nil
	}
	var v string
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*n = nameField(v)
	return nil
}

// content strips the fantasy_content envelope when present.
func content(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}
	var env struct {
		FantasyContent json.RawMessage `json:"fantasy_content"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if len(env.FantasyContent) > 0 {
		return env.FantasyContent, nil
	}
	return trimmed, nil
}

// unwrap peels a single-key {"name": {...}} wrapper off an element.
func unwrap(item json.RawMessage, name string) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(item, &probe); err != nil {
		return item
	}
	if inner, ok := probe[name]; ok && len(probe) == 1 {
		return inner
	}
	return item
}

// numberedCollection flattens a {"0": {...}, "1": {...}, "count": N} object
// into an ordered list.
func numberedCollection(section []byte) ([]json.RawMessage, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(section, &probe); err != nil {
		return nil, err
	}
	indexes := make([]int, 0, len(probe))
	for key := range probe {
		if idx, err := strconv.Atoi(key); err == nil {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)
	list := make([]json.RawMessage, 0, len(indexes))
	for _, idx := range indexes {
		list = append(list, probe[strconv.Itoa(idx)])
	}
	return list, nil
}

// listSection returns the named collection within body. The body may be the
// collection itself; the collection may be an array or a numbered object.
func listSection(body []byte, name string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, err
	}
	section, ok := probe[name]
	if !ok {
		return nil, fmt.Errorf("missing %s section", name)
	}
	section = bytes.TrimSpace(section)
	if len(section) > 0 && section[0] == '{' {
		return numberedCollection(section)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(section, &list); err != nil {
		return nil, err
	}
	return list, nil
}

type wireLeague struct {
	LeagueKey   flexString `json:"league_key"`
	LeagueID    flexString `json:"league_id"`
	Name        nameField  `json:"name"`
	Season      flexString `json:"season"`
	NumTeams    flexInt    `json:"num_teams"`
	ScoringType flexString `json:"scoring_type"`
	LeagueType  flexString `json:"league_type"`
	URL         flexString `json:"url"`
	CurrentWeek flexInt    `json:"current_week"`
	StartWeek   flexInt    `json:"start_week"`
	EndWeek     flexInt    `json:"end_week"`
	StartDate   flexString `json:"start_date"`
	EndDate     flexString `json:"end_date"`
	IsFinished  flexBool   `json:"is_finished"`
}

func (w wireLeague) toLeague() League {
	return League{
		LeagueKey:   string(w.LeagueKey),
		LeagueID:    string(w.LeagueID),
		Name:        string(w.Name),
		Season:      string(w.Season),
		NumTeams:    int(w.NumTeams),
		ScoringType: string(w.ScoringType),
		LeagueType:  string(w.LeagueType),
		URL:         string(w.URL),
		CurrentWeek: int(w.CurrentWeek),
		StartWeek:   int(w.StartWeek),
		EndWeek:     int(w.EndWeek),
		StartDate:   string(w.StartDate),
		EndDate:     string(w.EndDate),
		IsFinished:  bool(w.IsFinished),
	}
}

// ParseLeagues parses a user-leagues response.
func ParseLeagues(raw []byte) ([]League, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("leagues", err)
	}
	items, err := listSection(body, "leagues")
	if err != nil {
		return nil, parseError("leagues", err)
	}

	leagues := make([]League, 0, len(items))
	for _, item := range items {
		var w wireLeague
		if err := json.Unmarshal(unwrap(item, "league"), &w); err != nil {
			return nil, parseError("league", err)
		}
		leagues = append(leagues, w.toLeague())
	}
	return leagues, nil
}

// ParseLeague parses a single-league response.
func ParseLeague(raw []byte) (*League, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("league", err)
	}
	var w wireLeague
	if err := json.Unmarshal(unwrap(body, "league"), &w); err != nil {
		return nil, parseError("league", err)
	}
	league := w.toLeague()
	return &league, nil
}

// wireManagers accepts a managers array, a single manager object or a
// {"manager": {...}} wrapper and keeps the first nickname found.
type wireManagers struct {
	Nickname string
}

func (m *wireManagers) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	type manager struct {
		Nickname flexString `json:"nickname"`
	}
	type entry struct {
		Manager  manager    `json:"manager"`
		Nickname flexString `json:"nickname"`
	}
	pick := func(e entry) string {
		if e.Manager.Nickname != "" {
			return string(e.Manager.Nickname)
		}
		return string(e.Nickname)
	}

	if trimmed[0] == '[' {
		var list []entry
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		for _, e := range list {
			if name := pick(e); name != "" {
				m.Nickname = name
				return nil
			}
		}
		return nil
	}
	var e entry
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return err
	}
	m.Nickname = pick(e)
	return nil
}

type wireTeam struct {
	TeamKey        flexString   `json:"team_key"`
	TeamID         flexString   `json:"team_id"`
	Name           nameField    `json:"name"`
	Managers       wireManagers `json:"managers"`
	ManagerName    flexString   `json:"manager_name"`
	WaiverPriority flexInt      `json:"waiver_priority"`
	NumberOfMoves  flexInt      `json:"number_of_moves"`
	NumberOfTrades flexInt      `json:"number_of_trades"`
	LogoURL        flexString   `json:"logo_url"`
}

func (w wireTeam) toTeam() Team {
	managerName := w.Managers.Nickname
	if managerName == "" {
		managerName = string(w.ManagerName)
	}
	return Team{
		TeamKey:        string(w.TeamKey),
		TeamID:         string(w.TeamID),
		Name:           string(w.Name),
		ManagerName:    managerName,
		WaiverPriority: int(w.WaiverPriority),
		Moves:          int(w.NumberOfMoves),
		Trades:         int(w.NumberOfTrades),
		LogoURL:        string(w.LogoURL),
	}
}

// ParseTeams parses a league-teams response.
func ParseTeams(raw []byte) ([]Team, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("teams", err)
	}
	items, err := listSection(body, "teams")
	if err != nil {
		return nil, parseError("teams", err)
	}

	teams := make([]Team, 0, len(items))
	for _, item := range items {
		var w wireTeam
		if err := json.Unmarshal(unwrap(item, "team"), &w); err != nil {
			return nil, parseError("team", err)
		}
		teams = append(teams, w.toTeam())
	}
	return teams, nil
}

type wireOutcome struct {
	Wins       flexInt   `json:"wins"`
	Losses     flexInt   `json:"losses"`
	Ties       flexInt   `json:"ties"`
	Percentage flexFloat `json:"percentage"`
}

type wireTeamStandings struct {
	Rank          flexInt      `json:"rank"`
	Outcome       *wireOutcome `json:"outcome_totals"`
	PointsFor     flexFloat    `json:"points_for"`
	PointsAgainst flexFloat    `json:"points_against"`
}

type wireStanding struct {
	TeamKey       flexString         `json:"team_key"`
	TeamName      flexString         `json:"team_name"`
	Name          nameField          `json:"name"`
	Rank          flexInt            `json:"rank"`
	Outcome       *wireOutcome       `json:"outcome_totals"`
	Wins          flexInt            `json:"wins"`
	Losses        flexInt            `json:"losses"`
	Ties          flexInt            `json:"ties"`
	Percentage    flexFloat          `json:"percentage"`
	PointsFor     flexFloat          `json:"points_for"`
	PointsAgainst flexFloat          `json:"points_against"`
	TeamStandings *wireTeamStandings `json:"team_standings"`
}

func (w wireStanding) toStanding() Standing {
	standing := Standing{
		TeamKey:       string(w.TeamKey),
		TeamName:      string(w.TeamName),
		Rank:          int(w.Rank),
		Wins:          int(w.Wins),
		Losses:        int(w.Losses),
		Ties:          int(w.Ties),
		Percentage:    float64(w.Percentage),
		PointsFor:     float64(w.PointsFor),
		PointsAgainst: float64(w.PointsAgainst),
	}
	if standing.TeamName == "" {
		standing.TeamName = string(w.Name)
	}
	if w.Outcome != nil {
		standing.Wins = int(w.Outcome.Wins)
		standing.Losses = int(w.Outcome.Losses)
		standing.Ties = int(w.Outcome.Ties)
		standing.Percentage = float64(w.Outcome.Percentage)
	}
	if w.TeamStandings != nil {
		standing.Rank = int(w.TeamStandings.Rank)
		standing.PointsFor = float64(w.TeamStandings.PointsFor)
		standing.PointsAgainst = float64(w.TeamStandings.PointsAgainst)
		if w.TeamStandings.Outcome != nil {
			standing.Wins = int(w.TeamStandings.Outcome.Wins)
			standing.Losses = int(w.TeamStandings.Outcome.Losses)
			standing.Ties = int(w.TeamStandings.Outcome.Ties)
			standing.Percentage = float64(w.TeamStandings.Outcome.Percentage)
		}
	}
	return standing
}

// ParseStandings parses a league-standings response. Entries come back
// sorted by rank.
func ParseStandings(raw []byte) ([]Standing, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("standings", err)
	}
	items, err := listSection(body, "standings")
	if err != nil {
		// Standings often arrive as a teams collection with embedded
		// team_standings.
		items, err = listSection(body, "teams")
		if err != nil {
			return nil, parseError("standings", err)
		}
	}

	standings := make([]Standing, 0, len(items))
	for _, item := range items {
		var w wireStanding
		if err := json.Unmarshal(unwrap(item, "team"), &w); err != nil {
			return nil, parseError("standing", err)
		}
		standings = append(standings, w.toStanding())
	}
	sort.Slice(standings, func(i, j int) bool { return standings[i].Rank < standings[j].Rank })
	return standings, nil
}

type wirePoints struct {
	Total flexFloat `json:"total"`
}

// wireByeWeeks accepts {"week": N}, a bare number or a list of weeks.
type wireByeWeeks struct {
	Week int
}

func (b *wireByeWeeks) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	switch trimmed[0] {
	case '{':
		var wrapper struct {
			Week flexInt `json:"week"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		b.Week = int(wrapper.Week)
	case '[':
		var list []flexInt
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			b.Week = int(list[0])
		}
	default:
		var v flexInt
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		b.Week = int(v)
	}
	return nil
}

// eligiblePositions accepts ["RB","W/R/T"], [{"position":"RB"},...] or a
// {"position": [...]} wrapper.
type eligiblePositions []string

func (e *eligiblePositions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*e = nil
		return nil
	}
	if trimmed[0] == '{' {
		var wrapper struct {
			Position eligiblePositions `json:"position"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		*e = wrapper.Position
		return nil
	}
	if trimmed[0] == '"' {
		var one string
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*e = eligiblePositions{one}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	out := make(eligiblePositions, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var wrapper struct {
				Position flexString `json:"position"`
			}
			if err := json.Unmarshal(item, &wrapper); err != nil {
				return err
			}
			if wrapper.Position != "" {
				out = append(out, string(wrapper.Position))
			}
			continue
		}
		var v string
		if err := json.Unmarshal(item, &v); err != nil {
			return err
		}
		out = append(out, v)
	}
	*e = out
	return nil
}

type wireSelected struct {
	Position flexString `json:"position"`
}

type wirePlayer struct {
	PlayerKey         flexString        `json:"player_key"`
	Name              nameField         `json:"name"`
	FullName          flexString        `json:"full_name"`
	DisplayName       flexString        `json:"display_name"`
	DisplayPosition   flexString        `json:"display_position"`
	PrimaryPosition   flexString        `json:"primary_position"`
	Position          flexString        `json:"position"`
	EditorialTeamAbbr flexString        `json:"editorial_team_abbr"`
	TeamAbbr          flexString        `json:"team_abbr"`
	Status            flexString        `json:"status"`
	InjuryNote        flexString        `json:"injury_note"`
	PercentOwned      flexFloat         `json:"percent_owned"`
	ProjectedPoints   flexFloat         `json:"projected_points"`
	PlayerPoints      *wirePoints       `json:"player_points"`
	ByeWeeks          *wireByeWeeks     `json:"bye_weeks"`
	Eligible          eligiblePositions `json:"eligible_positions"`
	SelectedPosition  *wireSelected     `json:"selected_position"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (w wirePlayer) toPlayer() Player {
	player := Player{
		PlayerKey:         string(w.PlayerKey),
		Name:              firstNonEmpty(string(w.Name), string(w.FullName), string(w.DisplayName), "Unknown Player"),
		Position:          firstNonEmpty(string(w.DisplayPosition), string(w.PrimaryPosition), string(w.Position)),
		Team:              firstNonEmpty(string(w.EditorialTeamAbbr), string(w.TeamAbbr)),
		InjuryStatus:      firstNonEmpty(string(w.Status), InjuryHealthy),
		InjuryNote:        string(w.InjuryNote),
		PercentOwned:      float64(w.PercentOwned),
		ProjectedPoints:   float64(w.ProjectedPoints),
		EligiblePositions: []string(w.Eligible),
	}
	if w.PlayerPoints != nil && w.PlayerPoints.Total != 0 {
		player.ProjectedPoints = float64(w.PlayerPoints.Total)
	}
	if w.ByeWeeks != nil {
		player.ByeWeek = w.ByeWeeks.Week
	}
	return player
}

// ParsePlayers parses any players collection response.
func ParsePlayers(raw []byte) ([]Player, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("players", err)
	}
	items, err := listSection(body, "players")
	if err != nil {
		return nil, parseError("players", err)
	}

	players := make([]Player, 0, len(items))
	for _, item := range items {
		var w wirePlayer
		if err := json.Unmarshal(unwrap(item, "player"), &w); err != nil {
			return nil, parseError("player", err)
		}
		players = append(players, w.toPlayer())
	}
	return players, nil
}

// ParsePlayer parses a single-player response.
func ParsePlayer(raw []byte) (*Player, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("player", err)
	}
	var w wirePlayer
	if err := json.Unmarshal(unwrap(body, "player"), &w); err != nil {
		return nil, parseError("player", err)
	}
	player := w.toPlayer()
	return &player, nil
}

// ParseRoster parses a team-roster response. The team key comes from the
// caller; the payload carries it inconsistently.
func ParseRoster(raw []byte, teamKey string) (*Roster, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("roster", err)
	}
	section := unwrap(body, "roster")

	var header struct {
		Week flexInt `json:"week"`
	}
	if bytes.HasPrefix(bytes.TrimSpace(section), []byte("{")) {
		if err := json.Unmarshal(section, &header); err != nil {
			return nil, parseError("roster", err)
		}
	}

	items, err := listSection(section, "players")
	if err != nil {
		return nil, parseError("roster", err)
	}

	roster := &Roster{
		TeamKey: teamKey,
		Week:    int(header.Week),
		Slots:   make([]RosterSlot, 0, len(items)),
	}
	for _, item := range items {
		var w wirePlayer
		if err := json.Unmarshal(unwrap(item, "player"), &w); err != nil {
			return nil, parseError("roster player", err)
		}
		player := w.toPlayer()
		slot := player.Position
		if w.SelectedPosition != nil && w.SelectedPosition.Position != "" {
			slot = string(w.SelectedPosition.Position)
		}
		roster.Slots = append(roster.Slots, RosterSlot{Slot: slot, Player: player})
	}
	return roster, nil
}

type wireMatchupTeam struct {
	TeamKey             flexString  `json:"team_key"`
	Name                nameField   `json:"name"`
	TeamName            flexString  `json:"team_name"`
	TeamPoints          *wirePoints `json:"team_points"`
	TeamProjectedPoints *wirePoints `json:"team_projected_points"`
	ActualPoints        flexFloat   `json:"actual_points"`
	ProjectedPoints     flexFloat   `json:"projected_points"`
}

func (w wireMatchupTeam) toSide() MatchupSide {
	side := MatchupSide{
		TeamKey:         string(w.TeamKey),
		TeamName:        firstNonEmpty(string(w.TeamName), string(w.Name)),
		ActualPoints:    float64(w.ActualPoints),
		ProjectedPoints: float64(w.ProjectedPoints),
	}
	if w.TeamPoints != nil {
		side.ActualPoints = float64(w.TeamPoints.Total)
	}
	if w.TeamProjectedPoints != nil {
		side.ProjectedPoints = float64(w.TeamProjectedPoints.Total)
	}
	return side
}

type wireMatchup struct {
	Week       flexInt    `json:"week"`
	Status     flexString `json:"status"`
	IsPlayoffs flexBool   `json:"is_playoffs"`
}

// ParseMatchups parses a team-matchups response.
func ParseMatchups(raw []byte) ([]Matchup, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("matchups", err)
	}
	items, err := listSection(body, "matchups")
	if err != nil {
		return nil, parseError("matchups", err)
	}

	matchups := make([]Matchup, 0, len(items))
	for _, item := range items {
		element := unwrap(item, "matchup")

		var w wireMatchup
		if err := json.Unmarshal(element, &w); err != nil {
			return nil, parseError("matchup", err)
		}
		matchup := Matchup{
			Week:       int(w.Week),
			Status:     string(w.Status),
			IsPlayoffs: bool(w.IsPlayoffs),
		}

		teams, err := listSection(element, "teams")
		if err != nil {
			return nil, parseError("matchup teams", err)
		}
		sides := make([]MatchupSide, 0, len(teams))
		for _, team := range teams {
			var wt wireMatchupTeam
			if err := json.Unmarshal(unwrap(team, "team"), &wt); err != nil {
				return nil, parseError("matchup team", err)
			}
			sides = append(sides, wt.toSide())
		}
		if len(sides) > 0 {
			matchup.Home = sides[0]
		}
		if len(sides) > 1 {
			matchup.Away = sides[1]
		}
		matchups = append(matchups, matchup)
	}
	return matchups, nil
}

// wireTransactionData accepts a transaction_data object or a single-element
// list of one.
type wireTransactionData struct {
	Type            flexString `json:"type"`
	Source          flexString `json:"source_team_name"`
	SourceType      flexString `json:"source_type"`
	Destination     flexString `json:"destination_team_name"`
	DestinationType flexString `json:"destination_type"`
}

type transactionData struct {
	wireTransactionData
}

func (d *transactionData) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		var list []wireTransactionData
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			d.wireTransactionData = list[0]
		}
		return nil
	}
	return json.Unmarshal(trimmed, &d.wireTransactionData)
}

type wireTransactionPlayer struct {
	PlayerKey       flexString       `json:"player_key"`
	Name            nameField        `json:"name"`
	TransactionData *transactionData `json:"transaction_data"`
}

func (w wireTransactionPlayer) toTransactionPlayer() TransactionPlayer {
	player := TransactionPlayer{
		PlayerKey: string(w.PlayerKey),
		Name:      string(w.Name),
	}
	if w.TransactionData != nil {
		player.Action = string(w.TransactionData.Type)
		player.Source = firstNonEmpty(string(w.TransactionData.Source), string(w.TransactionData.SourceType))
		player.Destination = firstNonEmpty(string(w.TransactionData.Destination), string(w.TransactionData.DestinationType))
	}
	return player
}

type wireTransaction struct {
	TransactionKey flexString `json:"transaction_key"`
	Type           flexString `json:"type"`
	Status         flexString `json:"status"`
	Timestamp      flexInt    `json:"timestamp"`
}

// ParseTransactions parses a league-transactions response.
func ParseTransactions(raw []byte) ([]Transaction, error) {
	body, err := content(raw)
	if err != nil {
		return nil, parseError("transactions", err)
	}
	items, err := listSection(body, "transactions")
	if err != nil {
		return nil, parseError("transactions", err)
	}

	transactions := make([]Transaction, 0, len(items))
	for _, item := range items {
		element := unwrap(item, "transaction")

		var w wireTransaction
		if err := json.Unmarshal(element, &w); err != nil {
			return nil, parseError("transaction", err)
		}
		transaction := Transaction{
			TransactionKey: string(w.TransactionKey),
			Type:           string(w.Type),
			Status:         string(w.Status),
		}
		if w.Timestamp > 0 {
			transaction.Timestamp = time.Unix(int64(w.Timestamp), 0).UTC()
		}

		if players, err := listSection(element, "players"); err == nil {
			for _, p := range players {
				var wp wireTransactionPlayer
				if err := json.Unmarshal(unwrap(p, "player"), &wp); err != nil {
					return nil, parseError("transaction player", err)
				}
				transaction.Players = append(transaction.Players, wp.toTransactionPlayer())
			}
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}
