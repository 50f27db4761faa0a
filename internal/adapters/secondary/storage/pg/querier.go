package pg

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// querier общая реализация запросов поверх *sqlx.DB и *sqlx.Tx
type querier struct {
	ext sqlx.ExtContext
}

func (q querier) Get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q.ext, dest, query, args...)
}

func (q querier) Select(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q.ext, dest, query, args...)
}

func (q querier) Exec(ctx context.Context, query string, args ...any) error {
	_, err := q.ext.ExecContext(ctx, query, args...)
	return err
}

// ExecWithResult возвращает число затронутых строк
func (q querier) ExecWithResult(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
