package cache

import "context"

// ILocker взаимное исключение по ключу.
// Lock блокируется до получения блокировки или отмены ctx (тогда domain.ErrLockTimeout).
// Возвращённый unlock нужно вызвать ровно один раз.
type ILocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
