package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/cache"
	"github.com/yukikurage/join-board-api/internal/middleware"
	"gorm.io/gorm"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	StatusDisabled  = "disabled"
	healthPingLimit = 2 * time.Second
)

type HealthServices struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthReport struct {
	Status            string         `json:"status"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Services          HealthServices `json:"services"`
}

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewHealthHandler creates a HealthHandler. cache may be nil when no redis is configured.
func NewHealthHandler(db *gorm.DB, cacheClient *cache.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

// CheckHealth answers 200 while the database is reachable. The cache is reported but never fails the check.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()

	report := HealthReport{
		Status:            StatusOk,
		CurrentSystemTime: time.Now().UTC().Format(time.RFC3339),
		Language:          middleware.GetLang(c),
		Services: HealthServices{
			Database: StatusOk,
			Cache:    h.cacheStatus(ctx),
		},
	}

	statusCode := http.StatusOK
	if !h.databaseReachable(ctx) {
		statusCode = http.StatusServiceUnavailable
		report.Status = StatusDown
		report.Services.Database = StatusDown
	}

	c.JSON(statusCode, report)
}

func (h *HealthHandler) databaseReachable(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthPingLimit)
	defer cancel()
	return sqlDB.PingContext(timeoutCtx) == nil
}

func (h *HealthHandler) cacheStatus(ctx context.Context) string {
	if h.cache == nil {
		return StatusDisabled
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthPingLimit)
	defer cancel()
	if err := h.cache.Ping(timeoutCtx); err != nil {
		return StatusDown
	}
	return StatusOk
}
