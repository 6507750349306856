package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lippserd/mgnrega-api/pkg/contracts"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"go.uber.org/zap"
	"math"
	"net/http"
	"strconv"
	"strings"
)

type healthResponse struct {
	Status string     `json:"status"`
	Pool   pool.Stats `json:"pool"`
}

func (s *Server) listStates(c *gin.Context) {
	states, err := s.Store.States(c.Request.Context())
	if err != nil {
		s.internalError(c, err, "Database error while fetching states")
		return
	}

	c.JSON(http.StatusOK, states)
}

func (s *Server) listDistricts(c *gin.Context) {
	// Bound as is, the database coerces it to the column type.
	stateID := strings.TrimSpace(c.Query("state_id"))
	if stateID == "" {
		s.badRequest(c, "state_id is required")
		return
	}

	districts, err := s.Store.Districts(c.Request.Context(), stateID)
	if err != nil {
		s.internalError(c, err, "Database error while fetching districts")
		return
	}

	c.JSON(http.StatusOK, districts)
}

func (s *Server) listStats(c *gin.Context) {
	districtID, ok := parseDistrictID(c.Query("district_id"))
	if !ok {
		s.badRequest(c, "district_id required")
		return
	}

	rows, err := s.Store.Stats(c.Request.Context(), districtID)
	if err != nil {
		s.internalError(c, err, "Database error while fetching stats")
		return
	}

	c.JSON(http.StatusOK, contracts.NewStats(rows))
}

func (s *Server) health(c *gin.Context) {
	if err := s.Store.Ping(c.Request.Context()); err != nil {
		s.Logger.Warnw("Database is unavailable",
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.Error(err))

		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Pool: s.Store.PoolStats()})
		return
	}

	c.JSON(http.StatusOK, healthResponse{Status: "ok", Pool: s.Store.PoolStats()})
}

// parseDistrictID coerces raw to a number the way a loosely typed client would:
// decimal and exponent notation and 0x, 0o and 0b prefixed integers are accepted.
// Zero and anything that is not a number are rejected.
func parseDistrictID(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)

	id, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		base := radix(raw)
		if base == 0 {
			return 0, false
		}

		n, err := strconv.ParseUint(raw[2:], base, 64)
		if err != nil {
			return 0, false
		}
		id = float64(n)
	}

	if math.IsNaN(id) || id == 0 {
		return 0, false
	}

	return id, true
}

func radix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}

	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}

	return 0
}
