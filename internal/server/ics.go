package server

import (
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const icsEventDuration = time.Hour

// handleEventsICS renders every stored event as a VCALENDAR feed, one VEVENT
// per event with a fixed one-hour duration.
func (h *httpHandler) handleEventsICS(c *gin.Context) {
	list, err := h.eventsService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to export events", zap.Error(err))
		writeServerError(c, err)
		return
	}

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId("-//Vida Plena//Agenda//PT-BR")

	now := time.Now().UTC()
	for _, event := range list {
		start, parseErr := time.ParseInLocation("2006-01-02 15:04", event.Date+" "+event.Time, time.Local)
		if parseErr != nil {
			h.logger.Warn("skipping event with unparseable schedule",
				zap.String("event_id", event.ID), zap.Error(parseErr))
			continue
		}

		entry := calendar.AddEvent(event.ID)
		entry.SetDtStampTime(now)
		entry.SetStartAt(start)
		entry.SetEndAt(start.Add(icsEventDuration))
		entry.SetSummary(event.Title)
		if event.Location != "" {
			entry.SetLocation(event.Location)
		}
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.Serialize()))
}
