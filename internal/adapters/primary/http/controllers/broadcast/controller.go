package broadcast

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/gin-gonic/gin"
)

// Broadcaster запуск рассылки гороскопов
type Broadcaster interface {
	RunBroadcast(ctx context.Context) (domain.BroadcastResult, error)
}

type Controller struct {
	Broadcaster Broadcaster
	Secret      string
	Log         *slog.Logger
}

func New(broadcaster Broadcaster, secret string, log *slog.Logger) *Controller {
	return &Controller{
		Broadcaster: broadcaster,
		Secret:      secret,
		Log:         log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	cron := router.Group("/cron")
	{
		cron.POST("/broadcast", c.authorize, c.runBroadcast)
	}
}

// authorize Authorization: Bearer <secret>
func (c *Controller) authorize(ctx *gin.Context) {
	token, ok := strings.CutPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if !ok || c.Secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(c.Secret)) != 1 {
		c.Log.Warn("unauthorized broadcast request", "client_ip", ctx.ClientIP())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	ctx.Next()
}

// runBroadcast синхронно выполняет рассылку и возвращает итог
func (c *Controller) runBroadcast(ctx *gin.Context) {
	result, err := c.Broadcaster.RunBroadcast(ctx.Request.Context())
	if err != nil {
		c.Log.Error("broadcast failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":  err.Error(),
			"sent":   result.Sent,
			"failed": result.Failed,
		})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
