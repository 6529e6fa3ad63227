package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/MarcoPoloResearchLab/marinemap/internal/auth"
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userIDContextKey         = "marinemap_user_id"
	defaultHeartbeatInterval = 25 * time.Second
)

var errMissingEventsService = errors.New("events service dependency required")

// SessionValidator resolves the session behind a request.
type SessionValidator interface {
	ValidateRequest(r *http.Request) (auth.Session, error)
}

// MetricsRecorder observes requests and serves the metrics endpoint.
type MetricsRecorder interface {
	ObserveRequest(route string, status int, duration time.Duration)
	Handler() http.Handler
}

// Dependencies wires the HTTP handler. Only EventsService is required.
type Dependencies struct {
	EventsService     *events.Service
	SessionValidator  SessionValidator
	Realtime          *RealtimeDispatcher
	Metrics           MetricsRecorder
	Logger            *zap.Logger
	HeartbeatInterval time.Duration
}

func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.EventsService == nil {
		return nil, errMissingEventsService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	heartbeat := deps.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}

	handler := &httpHandler{
		eventsService:     deps.EventsService,
		sessions:          deps.SessionValidator,
		realtime:          deps.Realtime,
		metrics:           deps.Metrics,
		logger:            logger,
		heartbeatInterval: heartbeat,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Metrics != nil {
		router.Use(handler.observeRequest)
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.Use(corsMiddleware())

	router.GET("/events", handler.handleListEvents)
	router.GET("/events/:id", handler.handleGetEvent)
	router.GET("/stream", handler.handleEventStream)
	router.GET("/map", handler.handleMap)
	router.GET("/markers/:pinType/:status", handler.handleMarker)
	router.POST("/map/clicks", handler.handleMapClick)

	mutating := router.Group("/")
	mutating.Use(handler.authorizeRequest)
	mutating.POST("/events", handler.handleCreateEvent)
	mutating.PATCH("/events/:id", handler.handleUpdateEvent)
	mutating.DELETE("/events/:id", handler.handleDeleteEvent)
	mutating.POST("/map/events", handler.handleMapCreate)

	return router, nil
}

type httpHandler struct {
	eventsService     *events.Service
	sessions          SessionValidator
	realtime          *RealtimeDispatcher
	metrics           MetricsRecorder
	logger            *zap.Logger
	heartbeatInterval time.Duration
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Last-Event-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// authorizeRequest attaches the session user id when sessions are configured.
// Without a validator every request passes with an empty user id.
func (h *httpHandler) authorizeRequest(c *gin.Context) {
	if h.sessions == nil {
		c.Next()
		return
	}
	session, err := h.sessions.ValidateRequest(c.Request)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredSessionToken) || errors.Is(err, auth.ErrMissingSessionToken) {
			h.logger.Info("session validation failed", zap.Error(err))
		} else {
			h.logger.Warn("session validation failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(userIDContextKey, session.UserID)
	c.Next()
}

func (h *httpHandler) observeRequest(c *gin.Context) {
	started := time.Now()
	c.Next()
	h.metrics.ObserveRequest(c.FullPath(), c.Writer.Status(), time.Since(started))
}

// respondServiceError maps service failures onto HTTP responses.
func (h *httpHandler) respondServiceError(c *gin.Context, err error) {
	body := gin.H{}
	var serviceErr *events.ServiceError
	if errors.As(err, &serviceErr) {
		body["code"] = serviceErr.Code()
	}
	switch {
	case errors.Is(err, events.ErrInvalidEvent):
		body["error"] = "invalid_event"
		body["message"] = err.Error()
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, events.ErrEventNotFound):
		body["error"] = "not_found"
		c.JSON(http.StatusNotFound, body)
	default:
		h.logger.Error("events request failed", zap.Error(err))
		body["error"] = "internal_error"
		c.JSON(http.StatusInternalServerError, body)
	}
}
