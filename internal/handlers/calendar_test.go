package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLeagueSchedule(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(leagueWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/{league}/schedule.ics", h.handlers.HandleLeagueSchedule,
		"GET", "/api/leagues/461.l.12345/schedule.ics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "461.l.12345-schedule.ics")

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "END:VCALENDAR")
	assert.Equal(t, 3, strings.Count(body, "BEGIN:VEVENT"), "one event per week between start and end week")

	assert.Contains(t, body, "SUMMARY:Main Street Legends: Week 1")
	assert.Contains(t, body, "SUMMARY:Main Street Legends: Week 3")
	assert.Contains(t, body, "UID:461.l.12345-week-2@fantasy-gateway")
	assert.Contains(t, body, "DTSTART:20260910T000000Z")
	// The final week stretches to the league end date.
	assert.Contains(t, body, "DTEND:20260929T000000Z")
}

func TestHandleLeagueSchedule_NoDates(t *testing.T) {
	fetcher := &stubFetcher{respond: respondWith(leagueNoDatesWire)}
	h := newHarness(fetcher)

	rec := serve(h, "/api/leagues/{league}/schedule.ics", h.handlers.HandleLeagueSchedule,
		"GET", "/api/leagues/461.l.99/schedule.ics", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
