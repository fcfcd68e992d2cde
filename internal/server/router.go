package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vidaplena/agenda/internal/events"
	"github.com/vidaplena/agenda/internal/leaders"
	"go.uber.org/zap"
)

const allowedResourceMethods = "GET,POST,PUT,DELETE"

var (
	errMissingEventsService  = errors.New("events service dependency required")
	errMissingLeadersService = errors.New("leaders service dependency required")
)

type Dependencies struct {
	EventsService  *events.Service
	LeadersService *leaders.Service
	Logger         *zap.Logger
}

func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.EventsService == nil {
		return nil, errMissingEventsService
	}
	if deps.LeadersService == nil {
		return nil, errMissingLeadersService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		eventsService:  deps.EventsService,
		leadersService: deps.LeadersService,
		logger:         logger,
	}

	router.GET("/api/events/ics", handler.handleEventsICS)
	router.Any("/api/events", handler.handleEvents)
	router.Any("/api/leaders", handler.handleLeaders)
	router.Any("/api/reorder", handler.handleReorder)

	return router, nil
}

type httpHandler struct {
	eventsService  *events.Service
	leadersService *leaders.Service
	logger         *zap.Logger
}

type eventPayload struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Location  string   `json:"location"`
	Priority  string   `json:"priority"`
	Attendees []string `json:"attendees"`
	Order     *int     `json:"order"`
}

func (h *httpHandler) handleEvents(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.handleListEvents(c)
	case http.MethodPost:
		h.handleCreateEvent(c)
	case http.MethodPut:
		h.handleUpdateEvent(c)
	case http.MethodDelete:
		h.handleDeleteEvent(c)
	default:
		methodNotAllowed(c, allowedResourceMethods)
	}
}

func (h *httpHandler) handleListEvents(c *gin.Context) {
	list, err := h.eventsService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *httpHandler) handleCreateEvent(c *gin.Context) {
	var payload eventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	request, err := events.NewChangeRequest(payload.ID, payload.Title, payload.Date, payload.Time,
		payload.Location, payload.Priority, payload.Attendees, payload.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.eventsService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) handleUpdateEvent(c *gin.Context) {
	var payload eventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if payload.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	request, err := events.NewChangeRequest(payload.ID, payload.Title, payload.Date, payload.Time,
		payload.Location, payload.Priority, payload.Attendees, payload.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.eventsService.Update(c.Request.Context(), request)
	if errors.Is(err, events.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to update event", zap.Error(err), zap.String("event_id", payload.ID))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *httpHandler) handleDeleteEvent(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}
	id, err := events.NewEventID(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventsService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete event", zap.Error(err), zap.String("event_id", id.String()))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderPayload struct {
	Updates []orderUpdatePayload `json:"updates"`
}

type orderUpdatePayload struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

func (h *httpHandler) handleReorder(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		methodNotAllowed(c, http.MethodPost)
		return
	}

	var payload reorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.Updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
		return
	}

	updates := make([]events.OrderUpdate, 0, len(payload.Updates))
	for _, update := range payload.Updates {
		id, err := events.NewEventID(update.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates = append(updates, events.OrderUpdate{ID: id, Order: update.Order})
	}

	err := h.eventsService.Reorder(c.Request.Context(), updates)
	// An unknown id rejects the whole batch; a partial apply would leave
	// duplicate or missing order slots.
	if errors.Is(err, events.ErrEventNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to reorder events", zap.Error(err), zap.Int("updates", len(updates)))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type leaderPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Ministries []string `json:"ministries"`
	OptIn      *bool    `json:"optIn"`
}

func (h *httpHandler) handleLeaders(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.handleListLeaders(c)
	case http.MethodPost:
		h.handleCreateLeader(c)
	case http.MethodPut:
		h.handleUpdateLeader(c)
	case http.MethodDelete:
		h.handleDeleteLeader(c)
	default:
		methodNotAllowed(c, allowedResourceMethods)
	}
}

func (h *httpHandler) handleListLeaders(c *gin.Context) {
	list, err := h.leadersService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list leaders", zap.Error(err))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *httpHandler) handleCreateLeader(c *gin.Context) {
	var payload leaderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	request, err := leaders.NewChangeRequest(payload.ID, payload.Name, payload.Phone, payload.Ministries, payload.OptIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.leadersService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Error("failed to create leader", zap.Error(err))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) handleUpdateLeader(c *gin.Context) {
	var payload leaderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if payload.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	request, err := leaders.NewChangeRequest(payload.ID, payload.Name, payload.Phone, payload.Ministries, payload.OptIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.leadersService.Update(c.Request.Context(), request)
	if errors.Is(err, leaders.ErrLeaderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to update leader", zap.Error(err), zap.String("leader_id", payload.ID))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *httpHandler) handleDeleteLeader(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}
	id, err := leaders.NewLeaderID(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leadersService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete leader", zap.Error(err), zap.String("leader_id", id.String()))
		writeServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func methodNotAllowed(c *gin.Context, allow string) {
	c.Header("Allow", allow)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

type coder interface {
	Code() string
}

// writeServerError surfaces a persistence failure as 500, attaching the
// service error code when the error carries one.
func writeServerError(c *gin.Context, err error) {
	var withCode coder
	if errors.As(err, &withCode) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": withCode.Code()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
