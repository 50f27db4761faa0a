package repository

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// IProfileStore хранилище профилей пользователей.
// Профили никогда не удаляются.
type IProfileStore interface {
	// Get возвращает профиль или domain.ErrProfileNotFound
	Get(ctx context.Context, id int64) (*domain.Profile, error)
	// Create вставляет профиль, только если его ещё нет; существующая запись не меняется
	Create(ctx context.Context, profile *domain.Profile) (created bool, err error)
	// SetField записывает одно поле, создавая профиль по умолчанию при отсутствии
	SetField(ctx context.Context, id int64, field domain.ProfileField, value any) error
	// AddToSet добавляет значение в поле-множество (идемпотентно), создавая профиль при отсутствии
	AddToSet(ctx context.Context, id int64, field domain.ProfileField, value any) error
	// ListAll возвращает все профили
	ListAll(ctx context.Context) ([]*domain.Profile, error)
}
