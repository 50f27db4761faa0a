package inmemory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_MutualExclusion(t *testing.T) {
	locker := NewLocker()
	ctx := context.Background()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "profile:1")
			require.NoError(t, err)
			defer unlock()

			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Empty(t, locker.locks, "idle keys are released")
}

func TestLocker_Timeout(t *testing.T) {
	locker := NewLocker()

	unlock, err := locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "profile:1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	// другие ключи не блокируются
	unlockOther, err := locker.Lock(context.Background(), "profile:2")
	require.NoError(t, err)
	unlockOther()

	unlock()
	unlock() // повторный вызов безопасен

	unlock, err = locker.Lock(context.Background(), "profile:1")
	require.NoError(t, err)
	unlock()
}
