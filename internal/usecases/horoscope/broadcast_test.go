package horoscope

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/inmemory"
	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// listFailingStore хранилище, у которого не получается выгрузить список профилей
type listFailingStore struct {
	*inmemory.ProfileStore
}

func (listFailingStore) ListAll(context.Context) ([]*domain.Profile, error) {
	return nil, errors.New("connection refused")
}

func TestRunBroadcast_CountsFailures(t *testing.T) {
	env := newTestEnv(t, true)
	for id := int64(1); id <= 3; id++ {
		env.registered(t, id)
	}
	env.messenger.failSend = map[int64]bool{2: true}

	var sleeps int
	env.svc.sleep = func(context.Context, time.Duration) error {
		sleeps++
		return nil
	}

	result, err := env.svc.RunBroadcast(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BroadcastResult{Sent: 2, Failed: 1}, result)
	assert.Equal(t, 2, sleeps)
	require.Len(t, env.messenger.sent, 2)
	assert.Equal(t, int64(1), env.messenger.sent[0].ChatID)
	assert.Equal(t, int64(3), env.messenger.sent[1].ChatID)
	assert.Equal(t, []string{texts.FormatBroadcastAlert(result)}, env.alerter.messages)
}

func TestRunBroadcast_SendsTodaysReading(t *testing.T) {
	env := newTestEnv(t, true)
	p := env.registered(t, 1)

	result, err := env.svc.RunBroadcast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BroadcastResult{Sent: 1}, result)

	reading := env.svc.Generator.Generate(1, p, testNow)
	require.Len(t, env.messenger.sent, 1)
	assert.Equal(t, texts.FormatDailyBroadcast(reading, env.rules, domain.LanguageRU), env.messenger.sent[0].Msg.Text)
	assert.Equal(t, mainMenuKeyboard(), env.messenger.sent[0].Msg.Keyboard)
	// без ошибок алерт не отправляется
	assert.Empty(t, env.alerter.messages)
}

func TestRunBroadcast_EmptyStore(t *testing.T) {
	env := newTestEnv(t, true)

	result, err := env.svc.RunBroadcast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BroadcastResult{}, result)
	assert.Empty(t, env.messenger.sent)
}

func TestRunBroadcast_ListFailure(t *testing.T) {
	env := newTestEnv(t, true)
	env.svc.Profiles = listFailingStore{ProfileStore: env.store}

	_, err := env.svc.RunBroadcast(context.Background())
	require.Error(t, err)

	require.Len(t, env.alerter.messages, 1)
	assert.Contains(t, env.alerter.messages[0], "connection refused")
}

func TestRunBroadcast_InterruptedReturnsPartialResult(t *testing.T) {
	env := newTestEnv(t, true)
	for id := int64(1); id <= 3; id++ {
		env.registered(t, id)
	}

	ctx, cancel := context.WithCancel(context.Background())
	env.svc.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	result, err := env.svc.RunBroadcast(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.BroadcastResult{Sent: 1}, result)
}

func TestRunBroadcast_WithoutAlerter(t *testing.T) {
	env := newTestEnv(t, true)
	env.svc.Alerter = nil
	env.registered(t, 1)
	env.messenger.failSend = map[int64]bool{1: true}

	result, err := env.svc.RunBroadcast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BroadcastResult{Failed: 1}, result)
}

func TestSleepCtx(t *testing.T) {
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
