package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/repository"
)

// ProfileStore хранилище профилей в памяти процесса.
// Наружу отдаются только копии, поэтому вызывающий не может изменить хранимую запись.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[int64]*domain.Profile
	now      func() time.Time
}

// NewProfileStore создаёт пустое in-memory хранилище
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[int64]*domain.Profile),
		now:      time.Now,
	}
}

var _ repository.IProfileStore = (*ProfileStore)(nil)

func (s *ProfileStore) Get(_ context.Context, id int64) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProfileNotFound, id)
	}
	return p.Clone(), nil
}

func (s *ProfileStore) Create(_ context.Context, profile *domain.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return false, nil
	}
	s.profiles[profile.ID] = profile.Clone()
	return true, nil
}

func (s *ProfileStore) SetField(_ context.Context, id int64, field domain.ProfileField, value any) error {
	if field == domain.FieldReferralIDs {
		return fmt.Errorf("%w: %s is a set, use AddToSet", domain.ErrInvalidField, field)
	}
	return s.update(id, field, value)
}

func (s *ProfileStore) AddToSet(_ context.Context, id int64, field domain.ProfileField, value any) error {
	if field != domain.FieldReferralIDs {
		return fmt.Errorf("%w: %s is not a set", domain.ErrInvalidField, field)
	}
	return s.update(id, field, value)
}

// update применяет запись к копии и сохраняет её только при успехе
func (s *ProfileStore) update(id int64, field domain.ProfileField, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p, ok := s.profiles[id]
	if ok {
		p = p.Clone()
	} else {
		p = domain.NewProfile(id, now)
	}

	if err := p.Apply(field, value); err != nil {
		return err
	}
	p.UpdatedAt = now
	s.profiles[id] = p
	return nil
}

func (s *ProfileStore) ListAll(_ context.Context) ([]*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
