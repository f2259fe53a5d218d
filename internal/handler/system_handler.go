package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eximia/exams-backend/internal/response"
)

// SystemHandler reports service health.
type SystemHandler struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client) *SystemHandler {
	return &SystemHandler{pool: pool, rdb: rdb}
}

// Health godoc
// GET /health
// Reports reachability of the backing stores. Returns 503 when either is
// down.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	overall := "ok"

	postgres := "up"
	if err := h.pool.Ping(ctx); err != nil {
		postgres = "down"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	redisStatus := "up"
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	response.Success(c, status, gin.H{
		"status":   overall,
		"postgres": postgres,
		"redis":    redisStatus,
	})
}
