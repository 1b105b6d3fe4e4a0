package handlers

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/emersion/go-ical"
	"github.com/gorilla/mux"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
)

const scheduleDateLayout = "2006-01-02"

// HandleLeagueSchedule exports the league's weekly schedule as iCalendar
// @Summary League schedule export
// @Description Renders one all-week event per matchup week as an .ics download
// @Tags leagues
// @Produce text/calendar
// @Param league path string true "League key"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {object} models.APIError "League has no schedule dates"
// @Router /api/leagues/{league}/schedule.ics [get]
func (h *Handlers) HandleLeagueSchedule(w http.ResponseWriter, r *http.Request) {
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

	cal, err := scheduleCalendar(league, time.Now().UTC())
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", leagueKey+"-schedule.ics"))
	if err := ics.NewEncoder(w).Encode(cal); err != nil {
		h.logger.Error("Failed to encode calendar", err,
			logging.Field{Key: "league", Value: leagueKey})
	}
}

// scheduleCalendar renders one VEVENT per matchup week between the league's
// start and end dates. Weeks run seven days from the start date; the final
// week stretches to the league end date when that falls later.
func scheduleCalendar(league *models.League, now time.Time) (*ics.Calendar, error) {
	if league.StartDate == "" || league.StartWeek < 1 || league.EndWeek < league.StartWeek {
		return nil, errors.NotFoundError("league schedule")
	}
	start, err := time.Parse(scheduleDateLayout, league.StartDate)
	if err != nil {
		return nil, errors.InternalError("league start date is unparseable", err)
	}
	var endDate time.Time
	if league.EndDate != "" {
		if parsed, err := time.Parse(scheduleDateLayout, league.EndDate); err == nil {
			endDate = parsed
		}
	}

	cal := ics.NewCalendar()
	cal.Props.SetText(ics.PropVersion, "2.0")
	cal.Props.SetText(ics.PropProductID, "-//fantasy-gateway//league schedule//EN")

	for week := league.StartWeek; week <= league.EndWeek; week++ {
		weekStart := start.AddDate(0, 0, 7*(week-league.StartWeek))
		weekEnd := weekStart.AddDate(0, 0, 7)
		if week == league.EndWeek && !endDate.IsZero() && endDate.After(weekStart) {
			weekEnd = endDate.AddDate(0, 0, 1)
		}

		event := ics.NewEvent()
		event.Props.SetText(ics.PropUID, fmt.Sprintf("%s-week-%d@fantasy-gateway", league.LeagueKey, week))
		event.Props.SetText(ics.PropSummary, fmt.Sprintf("%s: Week %d", league.Name, week))
		event.Props.SetDateTime(ics.PropDateTimeStamp, now)
		event.Props.SetDateTime(ics.PropDateTimeStart, weekStart)
		event.Props.SetDateTime(ics.PropDateTimeEnd, weekEnd)
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}
