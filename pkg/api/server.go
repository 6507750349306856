// Package api serves the read-only MGNREGA statistics endpoints over HTTP.
package api

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/lippserd/mgnrega-api/pkg/contracts"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"net/http"
)

// Store is the data source of the API.
type Store interface {
	States(ctx context.Context) ([]contracts.State, error)
	Districts(ctx context.Context, stateID string) ([]contracts.District, error)
	Stats(ctx context.Context, districtID float64) ([]contracts.StatRow, error)
	Ping(ctx context.Context) error
	PoolStats() pool.Stats
}

// ErrorResponse is the body of every 4xx and 5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server routes requests to the handlers.
type Server struct {
	Store  Store
	Logger *zap.SugaredLogger

	engine *gin.Engine
}

// New returns a Server with all routes registered.
func New(store Store, logger *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		Store:  store,
		Logger: logger,
		engine: gin.New(),
	}

	s.engine.Use(s.logRequests(), gin.CustomRecoveryWithWriter(nil, s.recoverPanic))
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})

	s.engine.GET("/states", s.listStates)
	s.engine.GET("/districts", s.listDistricts)
	s.engine.GET("/stats", s.listStats)
	s.engine.GET("/health", s.health)

	return s
}

// Handler returns the router wrapped with permissive cross-origin handling.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.engine)
}
