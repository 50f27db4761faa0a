package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/domain"
	ports "github.com/QuilGrafit/astroX/internal/ports/repository"
)

// FallbackStore основное (долговременное) хранилище с подстраховкой в памяти.
// Ошибка основного хранилища логируется, а вызов обслуживает запасное.
type FallbackStore struct {
	primary   ports.IProfileStore
	secondary ports.IProfileStore
	log       *slog.Logger
}

// NewFallbackStore создаёт составное хранилище
func NewFallbackStore(primary, secondary ports.IProfileStore, log *slog.Logger) *FallbackStore {
	return &FallbackStore{
		primary:   primary,
		secondary: secondary,
		log:       log,
	}
}

var _ ports.IProfileStore = (*FallbackStore)(nil)

func (s *FallbackStore) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, err := s.primary.Get(ctx, id)
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, domain.ErrProfileNotFound) {
		// запись могла появиться в запасном хранилище, пока основное было недоступно
		return s.secondary.Get(ctx, id)
	}

	s.log.Warn("primary profile store unavailable, using fallback", "op", "get", "user_id", id, "error", err)
	profile, err = s.secondary.Get(ctx, id)
	if errors.Is(err, domain.ErrProfileNotFound) {
		// профиль может быть в основном хранилище, просто сейчас его не видно
		return nil, fmt.Errorf("%w: %w", err, domain.ErrStoreDegraded)
	}
	return profile, err
}

func (s *FallbackStore) Create(ctx context.Context, profile *domain.Profile) (bool, error) {
	created, err := s.primary.Create(ctx, profile)
	if err == nil {
		return created, nil
	}
	s.log.Warn("primary profile store unavailable, using fallback", "op", "create", "user_id", profile.ID, "error", err)
	return s.secondary.Create(ctx, profile)
}

func (s *FallbackStore) SetField(ctx context.Context, id int64, field domain.ProfileField, value any) error {
	err := s.primary.SetField(ctx, id, field, value)
	if err == nil || isValidationError(err) {
		return err
	}
	s.log.Warn("primary profile store unavailable, using fallback", "op", "set_field", "user_id", id, "field", field, "error", err)
	return s.secondary.SetField(ctx, id, field, value)
}

func (s *FallbackStore) AddToSet(ctx context.Context, id int64, field domain.ProfileField, value any) error {
	err := s.primary.AddToSet(ctx, id, field, value)
	if err == nil || isValidationError(err) {
		return err
	}
	s.log.Warn("primary profile store unavailable, using fallback", "op", "add_to_set", "user_id", id, "field", field, "error", err)
	return s.secondary.AddToSet(ctx, id, field, value)
}

// ListAll объединяет оба хранилища, при совпадении id побеждает основное
func (s *FallbackStore) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	fallback, err := s.secondary.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	primary, err := s.primary.ListAll(ctx)
	if err != nil {
		s.log.Warn("primary profile store unavailable, using fallback", "op", "list_all", "error", err)
		return fallback, nil
	}

	seen := make(map[int64]struct{}, len(primary))
	for _, p := range primary {
		seen[p.ID] = struct{}{}
	}
	for _, p := range fallback {
		if _, ok := seen[p.ID]; !ok {
			primary = append(primary, p)
		}
	}
	return primary, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidField) || errors.Is(err, domain.ErrSelfReferral)
}
