package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout      = 15 * time.Second
	deleteWebhookTimeout = 10 * time.Second
)

// runServices HTTP-сервер плюс источник обновлений (polling или kafka) и планировщик; первая ошибка гасит всё
func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", "addr", deps.HTTPServer.Addr)
		if err := deps.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if deps.TelegramPoller != nil {
		g.Go(func() error { return a.runPolling(ctx, deps) })
	}
	if deps.KafkaConsumer != nil {
		g.Go(func() error { return deps.KafkaConsumer.Start(ctx) })
	}
	if deps.JobScheduler != nil {
		g.Go(func() error { return deps.JobScheduler.Start(ctx) })
	}

	g.Go(func() error {
		<-ctx.Done()
		a.Log.Info("shutting down")

		// рассылка по HTTP может идти минутами, ждём не дольше shutdownTimeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("http server shutdown", "error", err)
		}

		a.closeAll(deps)
		return nil
	})

	return g.Wait()
}

// closeAll закрывает зависимости в порядке, обратном созданию
func (a *App) closeAll(deps *Dependencies) {
	type closer struct {
		name string
		c    io.Closer
	}

	var closers []closer
	if deps.KafkaConsumer != nil {
		closers = append(closers, closer{"kafka consumer", deps.KafkaConsumer})
	}
	if deps.KafkaProducer != nil {
		closers = append(closers, closer{"kafka producer", deps.KafkaProducer})
	}
	// cache и блокировки делят один клиент redis
	if deps.Cache != nil {
		closers = append(closers, closer{"redis", deps.Cache})
	}
	if deps.DB != nil {
		closers = append(closers, closer{"postgres", deps.DB})
	}

	for _, cl := range closers {
		if err := cl.c.Close(); err != nil {
			a.Log.Error("failed to close dependency", "name", cl.name, "error", err)
		}
	}
	a.Log.Info("shutdown completed")
}

// runPolling long polling для локального запуска; webhook снимается, иначе getUpdates вернёт 409
func (a *App) runPolling(ctx context.Context, deps *Dependencies) error {
	deleteCtx, cancel := context.WithTimeout(ctx, deleteWebhookTimeout)
	defer cancel()

	if err := deps.TelegramClient.DeleteWebhook(deleteCtx, false); err != nil {
		a.Log.Warn("failed to delete webhook, polling anyway", "error", err)
	}

	return deps.TelegramPoller.Start(ctx)
}
