package controller

import (
	"net/http"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/web/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports whether the database answers and whether the
// server is shutting down.
type HealthController struct {
	db       *gorm.DB
	draining func() bool
}

func NewHealthController(g *gin.RouterGroup, db *gorm.DB, draining func() bool) *HealthController {
	a := &HealthController{db: db, draining: draining}
	g.GET("/healthz", a.health)
	return a
}

func (a *HealthController) health(c *gin.Context) {
	h := entity.Health{
		Status:       "ok",
		Version:      config.GetVersion(),
		RecentErrors: logger.GetLogs(5, "ERROR"),
	}
	status := http.StatusOK

	if a.draining != nil && a.draining() {
		h.Status = "draining"
		c.JSON(http.StatusServiceUnavailable, h)
		return
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, h)
}
