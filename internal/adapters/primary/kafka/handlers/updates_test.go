package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/domain"
)

type fakeProcessor struct {
	updates []int64
	err     error
}

func (p *fakeProcessor) HandleUpdate(_ context.Context, update *domain.Update) error {
	p.updates = append(p.updates, update.UpdateID)
	return p.err
}

func TestUpdatesHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	processor := &fakeProcessor{}
	handler := NewUpdatesHandler(processor, log)

	require.NoError(t, handler.HandleMessage(context.Background(), "42", []byte(`{"update_id": 7}`)))
	assert.Equal(t, []int64{7}, processor.updates)

	// битое сообщение помечается как бизнес-ошибка и не переобрабатывается
	err := handler.HandleMessage(context.Background(), "42", []byte(`{broken`))
	require.Error(t, err)
	assert.True(t, domain.IsSkip(err))

	processor.err = assert.AnError
	err = handler.HandleMessage(context.Background(), "42", []byte(`{"update_id": 8}`))
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, domain.IsSkip(err))
}
