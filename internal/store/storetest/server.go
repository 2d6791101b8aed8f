// Package storetest is an in-memory inventory store that speaks the same
// wire protocol as the production store. Tests mount it with httptest and
// cmd/stockstore serves it for local development.
package storetest

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

const DefaultMaxChange = 10000

// Server holds the counts map behind a mutex; updates are serialized per
// process, which is the consistency guarantee the engine expects of the
// real store.
type Server struct {
	mu        sync.Mutex
	items     []string
	counts    map[string]int
	maxChange int
}

// NewServer seeds the same inventory the original service shipped with.
func NewServer() *Server {
	return &Server{
		items:     []string{"tshirts", "pants"},
		counts:    map[string]int{"tshirts": 20, "pants": 15},
		maxChange: DefaultMaxChange,
	}
}

// Seed replaces the tracked items. Order is the declaration order reported
// by the schema endpoint.
func (s *Server) Seed(items []string, counts map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]string(nil), items...)
	s.counts = make(map[string]int, len(items))
	for _, it := range items {
		s.counts[it] = counts[it]
	}
}

func (s *Server) SetMaxChange(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxChange = n
}

// Count returns the current count for one item.
func (s *Server) Count(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[item]
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/inventory/schema", s.handleSchema)
	r.GET("/inventory", s.handleCounts)
	r.POST("/inventory", s.handleUpdate)

	return r
}

func (s *Server) handleSchema(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"items":      s.items,
		"max_change": s.maxChange,
	})
}

func (s *Server) handleCounts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.snapshotLocked())
}

type updateRequest struct {
	Item   string `json:"item"`
	Change *int   `json:"change"`
}

func (s *Server) handleUpdate(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Change == nil {
		c.JSON(http.StatusUnprocessableEntity, errBody("malformed_request", gin.H{}))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.counts[req.Item]
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, errBody("unknown_item", gin.H{"item": req.Item}))
		return
	}

	change := *req.Change
	if change > s.maxChange || change < -s.maxChange {
		c.JSON(http.StatusBadRequest, errBody("change_too_large", gin.H{
			"item":      req.Item,
			"attempted": change,
			"cap":       s.maxChange,
		}))
		return
	}
	if current+change < 0 {
		c.JSON(http.StatusBadRequest, errBody("insufficient_stock", gin.H{
			"item":      req.Item,
			"current":   current,
			"attempted": change,
		}))
		return
	}

	s.counts[req.Item] = current + change
	c.JSON(http.StatusOK, s.snapshotLocked())
}

func (s *Server) snapshotLocked() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

func errBody(code string, fields gin.H) gin.H {
	e := gin.H{"code": code}
	for k, v := range fields {
		e[k] = v
	}
	return gin.H{"error": e}
}
