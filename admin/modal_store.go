package admin

import (
	"context"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// ModalStore keeps open modals between requests.
type ModalStore interface {
	Create(ctx context.Context, m *Modal) error
	Get(ctx context.Context, id string) (*Modal, error)
	// Update applies fn to the stored modal atomically and saves the result. When fn returns
	// an error nothing is saved.
	Update(ctx context.Context, id string, fn func(*Modal) error) (*Modal, error)
	Delete(ctx context.Context, id string) error
}

// MemoryModalStore is a ModalStore for a single instance.
type MemoryModalStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	modals map[string]*Modal
}

func NewMemoryModalStore(ttl time.Duration) *MemoryModalStore {
	return &MemoryModalStore{
		ttl:    ttl,
		now:    time.Now,
		modals: map[string]*Modal{},
	}
}

func (s *MemoryModalStore) Create(_ context.Context, m *Modal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	m.ExpiresAt = s.now().Add(s.ttl)
	s.modals[m.ID] = m.clone()
	return nil
}

func (s *MemoryModalStore) Get(_ context.Context, id string) (*Modal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.live(id)
	if err != nil {
		return nil, err
	}
	return m.clone(), nil
}

func (s *MemoryModalStore) Update(_ context.Context, id string, fn func(*Modal) error) (*Modal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.live(id)
	if err != nil {
		return nil, err
	}
	next := m.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ExpiresAt = s.now().Add(s.ttl)
	s.modals[id] = next
	return next.clone(), nil
}

func (s *MemoryModalStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modals, id)
	return nil
}

func (s *MemoryModalStore) live(id string) (*Modal, error) {
	m, ok := s.modals[id]
	if !ok || s.now().After(m.ExpiresAt) {
		delete(s.modals, id)
		return nil, errs.NewModalNotFoundError(id)
	}
	return m, nil
}

func (s *MemoryModalStore) sweep() {
	now := s.now()
	for id, m := range s.modals {
		if now.After(m.ExpiresAt) {
			delete(s.modals, id)
		}
	}
}
