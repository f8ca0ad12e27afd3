package appconfig

import (
	"context"
	"sync"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// MemRepository keeps the config document in memory. Paired with the
// in-memory schedule engine for deployments without a database; the
// document is lost on restart.
type MemRepository struct {
	mu  sync.RWMutex
	cfg *domain.AppConfig
}

func NewMemRepository() *MemRepository {
	return &MemRepository{}
}

// Get returns the stored document or ErrConfigNotFound.
func (r *MemRepository) Get(ctx context.Context) (*domain.AppConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cfg == nil {
		return nil, ErrConfigNotFound
	}
	copied := *r.cfg
	return &copied, nil
}

// Save replaces the document.
func (r *MemRepository) Save(ctx context.Context, cfg *domain.AppConfig) (*domain.AppConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	copied.UpdatedAt = time.Now()
	r.cfg = &copied
	result := copied
	return &result, nil
}
