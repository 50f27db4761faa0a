package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/cache"
)

// Locker блокировки по ключу в памяти процесса (одна реплика)
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewLocker создаёт in-memory блокировщик
func NewLocker() *Locker {
	return &Locker{
		locks: make(map[string]*keyLock),
	}
}

var _ cache.ILocker = (*Locker)(nil)

// Lock ждёт блокировку по ключу до отмены ctx
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	kl := l.acquireRef(key)

	select {
	case kl.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, kl)
		return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.sem
			l.releaseRef(key, kl)
		})
	}, nil
}

func (l *Locker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

// releaseRef удаляет запись, когда ключ больше никто не ждёт и не держит
func (l *Locker) releaseRef(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}
