package repository

import (
	"context"
	"sync"

	"go-event-hub/internal/model"
	apperrors "go-event-hub/pkg/app_errors"

	"github.com/google/uuid"
)

// MemoryEventRepository 記憶體版 catalog，slice 保留插入順序，index 用於依 id 查找
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
	index  map[string]int
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make([]*model.Event, 0),
		index:  make(map[string]int),
	}
}

// Seed 直接放入完整的活動資料（含 id 與 registered），用於載入預設資料
func (r *MemoryEventRepository) Seed(events ...*model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range events {
		c := e.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if i, ok := r.index[c.ID]; ok {
			r.events[i] = c
			continue
		}
		r.index[c.ID] = len(r.events)
		r.events = append(r.events, c)
	}
}

func (r *MemoryEventRepository) Create(ctx context.Context, fields model.EventFields, ownerID string, ownerName string) (*model.Event, error) {
	event := &model.Event{
		ID:            uuid.NewString(),
		Registered:    0,
		OrganizerID:   ownerID,
		OrganizerName: ownerName,
	}
	event.Apply(fields)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[event.ID] = len(r.events)
	r.events = append(r.events, event)
	return event.Clone(), nil
}

func (r *MemoryEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e.Clone())
	}
	return events, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return r.events[i].Clone(), nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, id string, fields model.EventFields) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	r.events[i].Apply(fields)
	return r.events[i].Clone(), nil
}

func (r *MemoryEventRepository) IncrementRegistered(ctx context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	r.events[i].Registered++
	return r.events[i].Clone(), nil
}
