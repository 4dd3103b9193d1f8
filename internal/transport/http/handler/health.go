package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"univoice/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type problemView struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check reports 200 while the process can serve requests. Disabled features
// show up under problems rather than failing the probe.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{
		"rewriter": dependencyStatus{OK: h.app.RewriterReady},
		"store":    dependencyStatus{OK: h.app.StoreReady, Message: h.app.StoreBackend},
	}
	if h.app.MySQL != nil {
		deps["mysql"] = h.checkMySQL(ctx)
	}
	if h.app.Redis != nil {
		deps["redis"] = h.checkRedis(ctx)
	}
	if h.app.MQConn != nil {
		deps["rabbitmq"] = h.checkRabbitMQ()
	}

	problems := make([]problemView, 0, len(h.app.Problems))
	for _, p := range h.app.Problems {
		problems = append(problems, problemView{Field: p.Field, Reason: p.Reason})
	}

	c.JSON(http.StatusOK, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
		"problems":     problems,
	})
}

func (h *HealthHandler) checkMySQL(ctx context.Context) dependencyStatus {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn.IsClosed() {
		return dependencyStatus{OK: false, Message: "connection closed"}
	}
	return dependencyStatus{OK: true}
}
