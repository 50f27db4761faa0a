package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/ports/storage"
)

// Load возвращает набор из хранилища, если там лежит объект key, иначе встроенный.
// Невалидный объект в хранилище - ошибка конфигурации.
func Load(ctx context.Context, objects storage.IObjectStorage, key string, log *slog.Logger) (*Ruleset, error) {
	if objects == nil || key == "" {
		return loadDefault(log)
	}

	data, err := objects.Fetch(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		log.Info("ruleset override not found, using embedded", "key", key)
		return loadDefault(log)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download ruleset %s: %w", key, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info("ruleset loaded from storage", "key", key, "version", r.Version)
	return r, nil
}

func loadDefault(log *slog.Logger) (*Ruleset, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	log.Info("embedded ruleset loaded", "version", r.Version)
	return r, nil
}
