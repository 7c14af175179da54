package memory

import (
	"context"
	"sync"

	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps checkout workflows in process memory.
type Repository struct {
	mu        sync.RWMutex
	workflows map[string]*domain.Workflow
}

func NewRepository() *Repository {
	return &Repository{workflows: map[string]*domain.Workflow{}}
}

func (r *Repository) Load(_ context.Context, sessionID string) (*domain.Workflow, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workflows[sessionID]
	if !ok {
		return nil, false, nil
	}
	return w.Clone(), true, nil
}

func (r *Repository) Save(_ context.Context, sessionID string, workflow *domain.Workflow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[sessionID] = workflow.Clone()
	return nil
}
