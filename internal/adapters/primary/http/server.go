package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/QuilGrafit/astroX/internal/adapters/primary/http/middlewares"
)

type Config struct {
	Host              string        `envconfig:"HOST"`
	Port              string        `envconfig:"PORT" default:"8080"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"10m"` // /cron/broadcast отвечает после всей рассылки
	IdleTimeout       time.Duration `envconfig:"IDLE_TIMEOUT" default:"30s"`
	MaxBodyBytes      int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	AccessLog         bool          `envconfig:"ACCESS_LOG" default:"false"`
}

type Controller interface {
	RegisterRoutes(router *gin.Engine)
}

func NewRouter(cfg *Config, log *slog.Logger, controllers ...Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middlewares.RequestID(), middlewares.Recovery(log))
	if cfg.AccessLog {
		router.Use(middlewares.AccessLog(log))
	}
	if cfg.MaxBodyBytes > 0 {
		limit := cfg.MaxBodyBytes
		router.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
			c.Next()
		})
	}

	for _, ctrl := range controllers {
		ctrl.RegisterRoutes(router)
	}
	return router
}

func NewHTTPServer(cfg *Config, log *slog.Logger, controllers ...Controller) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           NewRouter(cfg, log, controllers...),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
}
