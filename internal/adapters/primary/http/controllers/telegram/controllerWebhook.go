package telegram

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/pkg/logger"
	"github.com/QuilGrafit/astroX/internal/ports/kafka"
	"github.com/gin-gonic/gin"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler синхронная обработка обновления
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *domain.Update) error
}

type Controller struct {
	Handler   UpdateHandler
	Publisher kafka.IUpdatePublisher // не nil - обновления уходят в очередь
	Secret    string
	Log       *slog.Logger
}

func New(handler UpdateHandler, publisher kafka.IUpdatePublisher, secret string, log *slog.Logger) *Controller {
	return &Controller{
		Handler:   handler,
		Publisher: publisher,
		Secret:    secret,
		Log:       log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhook/", c.handleWebhook)
}

func (c *Controller) handleWebhook(ctx *gin.Context) {
	secretToken := ctx.GetHeader(secretTokenHeader)
	if subtle.ConstantTimeCompare([]byte(secretToken), []byte(c.Secret)) != 1 {
		c.Log.Warn("invalid webhook secret token", "client_ip", ctx.ClientIP())
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
		return
	}

	var update domain.Update
	if err := ctx.ShouldBindJSON(&update); err != nil {
		c.Log.Error("failed to bind webhook request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reqCtx := logger.WithAttrs(ctx.Request.Context(), "update_id", update.UpdateID)
	c.Log.DebugContext(reqCtx, "received webhook update")

	if c.Publisher == nil {
		c.process(reqCtx, &update)
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := c.Publisher.PublishUpdate(reqCtx, &update); err != nil {
		c.Log.ErrorContext(reqCtx, "failed to publish update", "error", err)
		// Telegram повторит доставку
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue update"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// process ошибка обработки уже доведена до пользователя, повтор доставки не нужен
func (c *Controller) process(ctx context.Context, update *domain.Update) {
	if err := c.Handler.HandleUpdate(ctx, update); err != nil {
		c.Log.ErrorContext(ctx, "failed to handle update", "error", err)
	}
}
