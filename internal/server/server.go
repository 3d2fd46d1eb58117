// Package server exposes the dashboard API over HTTP. Handlers load a
// snapshot from storage, hand it to the analysis engine, and write the
// result back out; they carry no domain logic of their own.
package server

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tapan77777/Transpera/internal/health"
	"github.com/tapan77777/Transpera/internal/notify"
	"github.com/tapan77777/Transpera/internal/report"
	"github.com/tapan77777/Transpera/internal/seed"
	"github.com/tapan77777/Transpera/internal/storage"
	"github.com/tapan77777/Transpera/internal/surveillance"
	"github.com/tapan77777/Transpera/models"
)

// Server wires storage, the analysis engine and the alert notifier
// behind the HTTP API.
type Server struct {
	store    storage.Store
	notifier *notify.Notifier
	limiter  *rate.Limiter
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates a Server. The write endpoints share one rate limiter;
// notifier may be nil.
func New(store storage.Store, notifier *notify.Notifier, writeRPS float64) *Server {
	return &Server{
		store:    store,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(writeRPS), int(writeRPS)+1),
		now:      time.Now,
		logger:   log.With().Str("component", "server").Logger(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	r.GET("/health", s.healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/trades", s.getTrades)
		api.POST("/trades", s.writeLimited, s.postTrade)
		api.GET("/compliance", s.getTasks)
		api.PATCH("/compliance", s.writeLimited, s.patchTask)
		api.GET("/score", s.getScore)
		api.POST("/seed", s.writeLimited, s.postSeed)
		api.GET("/report", s.getReport)
	}
	return r
}

// observe records request metrics and logs each call.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		requestsTotal.WithLabelValues(endpoint, c.Request.Method).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		s.logger.Debug().
			Str("endpoint", endpoint).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Msg("request handled")
	}
}

// writeLimited throttles mutating endpoints.
func (s *Server) writeLimited(c *gin.Context) {
	if !s.limiter.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "transpera"})
}

func (s *Server) getTrades(c *gin.Context) {
	trades, err := s.store.Trades(c.Request.Context())
	if err != nil {
		s.fail(c, "loading trades", err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (s *Server) postTrade(c *gin.Context) {
	var t models.Trade
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade payload"})
		return
	}
	// The engine deliberately does not guard against non-positive
	// quantities or prices; ingestion is where they are rejected.
	if t.Qty <= 0 || t.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qty and price must be positive"})
		return
	}
	if t.Side != models.SideBuy && t.Side != models.SideSell {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be BUY or SELL"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Ts == 0 {
		t.Ts = s.now().UnixMilli()
	}
	if err := s.store.AppendTrade(c.Request.Context(), t); err != nil {
		s.fail(c, "appending trade", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": t.ID})
}

func (s *Server) getTasks(c *gin.Context) {
	tasks, err := s.store.Tasks(c.Request.Context())
	if err != nil {
		s.fail(c, "loading tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type taskStatusUpdate struct {
	ID     string            `json:"id"`
	Status models.TaskStatus `json:"status"`
}

func (s *Server) patchTask(c *gin.Context) {
	var upd taskStatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil || upd.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and status are required"})
		return
	}
	switch upd.Status {
	case models.TaskPending, models.TaskCompleted, models.TaskOverdue:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	err := s.store.UpdateTaskStatus(c.Request.Context(), upd.ID, upd.Status)
	if errors.Is(err, storage.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		s.fail(c, "updating task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// score runs both analysis passes over a fresh snapshot.
func (s *Server) score(c *gin.Context) (models.HealthScore, []models.Flag, error) {
	ctx := c.Request.Context()
	trades, err := s.store.Trades(ctx)
	if err != nil {
		return models.HealthScore{}, nil, err
	}
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		return models.HealthScore{}, nil, err
	}

	flags := surveillance.DetectFlags(trades)
	for _, f := range flags {
		flagsDetected.WithLabelValues(string(f.Type), string(f.Severity)).Inc()
	}
	return health.Compute(trades, flags, tasks, s.now()), flags, nil
}

func (s *Server) getScore(c *gin.Context) {
	hs, flags, err := s.score(c)
	if err != nil {
		s.fail(c, "scoring", err)
		return
	}
	s.notifier.HighSeverity(flags)
	c.JSON(http.StatusOK, gin.H{"health": hs, "flags": flags})
}

func (s *Server) postSeed(c *gin.Context) {
	ctx := c.Request.Context()
	now := s.now()
	rnd := rand.New(rand.NewSource(now.UnixNano()))

	trades := seed.Trades(now, rnd)
	tasks := seed.Tasks(now)

	if err := s.store.ReplaceTrades(ctx, trades); err != nil {
		s.fail(c, "seeding trades", err)
		return
	}
	if err := s.store.ReplaceTasks(ctx, tasks); err != nil {
		s.fail(c, "seeding tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "trades": len(trades), "tasks": len(tasks)})
}

func (s *Server) getReport(c *gin.Context) {
	hs, flags, err := s.score(c)
	if err != nil {
		s.fail(c, "scoring", err)
		return
	}
	tasks, err := s.store.Tasks(c.Request.Context())
	if err != nil {
		s.fail(c, "loading tasks", err)
		return
	}
	c.String(http.StatusOK, report.Build(hs, flags, tasks, s.now()))
}

func (s *Server) fail(c *gin.Context, what string, err error) {
	s.logger.Error().Err(err).Msg(what + " failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": what + " failed"})
}
