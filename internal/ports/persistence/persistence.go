package persistence

import "context"

// Persistence доступ к БД вне транзакции
type Persistence interface {
	Querier
	WithTransaction(ctx context.Context, fn func(context.Context, Transaction) error) error
	Ping(ctx context.Context) error
}

// Transaction запросы внутри открытой транзакции; commit/rollback делает WithTransaction
type Transaction interface {
	Querier
}

type Querier interface {
	Get(ctx context.Context, dest any, query string, args ...any) error
	Select(ctx context.Context, dest any, query string, args ...any) error
	Exec(ctx context.Context, query string, args ...any) error
	ExecWithResult(ctx context.Context, query string, args ...any) (int64, error)
}
