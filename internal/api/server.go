package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JOBrien987/ProcessRoaster/internal/history"
	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

// Server exposes the scanner's summary and the alert history over HTTP.
type Server struct {
	scanner *monitor.Scanner
	store   *history.Store
	engine  *gin.Engine
}

// NewServer wires the routes. store may be nil when history is disabled.
func NewServer(scanner *monitor.Scanner, store *history.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		scanner: scanner,
		store:   store,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/summary", s.getSummary)
		v1.GET("/system", s.getSystem)
		v1.GET("/alerts", s.getAlerts)
	}
	s.engine.GET("/health", s.getHealth)

	return s
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"processes": s.scanner.Summary(),
	})
}

func (s *Server) getSystem(c *gin.Context) {
	m := s.scanner.Metrics()
	c.JSON(http.StatusOK, gin.H{
		"cpu_percent":  m.CPUPercent,
		"mem_percent":  m.MemPercent,
		"mem_used_mb":  m.MemUsedMB,
		"mem_total_mb": m.MemTotalMB,
		"cores":        m.Cores,
		"processes":    m.NumProcs,
	})
}

func (s *Server) getAlerts(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert history is disabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	var (
		records []history.AlertRecord
		err     error
	)
	if name := c.Query("name"); name != "" {
		records, err = s.store.ByName(name, limit)
	} else {
		records, err = s.store.Recent(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": records})
}
