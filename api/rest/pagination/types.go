package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Params holds pagination parameters from request
type Params struct {
	Limit int
}

// DefaultParams returns pagination params with the limit clamped to [1, maxLimit]
func DefaultParams(limit, maxLimit int) Params {
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{
		Limit: limit,
	}
}

// FromQuery reads ?limit= from the request; absent means defaultLimit,
// non-numeric values are rejected
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) (Params, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return DefaultParams(defaultLimit, maxLimit), nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return Params{}, fmt.Errorf("limit must be an integer")
	}

	return DefaultParams(limit, maxLimit), nil
}
