package pg

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const connectTimeout = 10 * time.Second

// Config подключение к Postgres; DSN (postgres://...) приоритетнее отдельных полей
type Config struct {
	DSN              string        `envconfig:"DSN"`
	Host             string        `envconfig:"HOST"`
	Port             string        `envconfig:"PORT" default:"5432"`
	Username         string        `envconfig:"USERNAME"`
	Password         string        `envconfig:"PASSWORD"`
	Database         string        `envconfig:"DATABASE"`
	SSLMode          string        `envconfig:"SSL_MODE" default:"disable"`
	StatementTimeout time.Duration `envconfig:"STATEMENT_TIMEOUT" default:"5s"`
	MaxOpenConns     int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns     int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime  time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"5m"`
}

// Enabled false - профили хранятся только в памяти процесса
func (c *Config) Enabled() bool {
	return c != nil && (c.DSN != "" || c.Host != "")
}

// connString URL-форма строки подключения: пароль и имя базы экранируются
func (c *Config) connString() string {
	if c.DSN != "" {
		return c.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Config) pgxConfig() (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(c.connString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	// statement_timeout ставится каждому соединению пула через параметры старта сессии
	if c.StatementTimeout > 0 {
		cfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(c.StatementTimeout.Milliseconds(), 10)
	}
	return cfg, nil
}

// NewConnection пул sqlx поверх драйвера pgx/stdlib
func (c *Config) NewConnection(ctx context.Context) (*sqlx.DB, error) {
	connCfg, err := c.pgxConfig()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", stdlib.RegisterConnConfig(connCfg))
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s: %w", connCfg.Host, err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)

	return db, nil
}
