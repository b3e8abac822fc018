package service

import (
	"context"

	"go-event-hub/internal/model"
	"go-event-hub/internal/query"
	"go-event-hub/internal/repository"
	apperrors "go-event-hub/pkg/app_errors"
)

type EventService interface {
	// List 依查詢條件篩選排序整個 catalog
	List(ctx context.Context, params query.Params) ([]*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// Create 主辦方資訊取自 owner，之後改名也不會同步
	Create(ctx context.Context, owner *model.User, fields model.EventFields) (*model.Event, error)
	Update(ctx context.Context, id string, fields model.EventFields) (*model.Event, error)
	// Stats organizerID 為空時統計全部活動
	Stats(ctx context.Context, organizerID string) (model.DashboardStats, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context, params query.Params) ([]*model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(events, params), nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, owner *model.User, fields model.EventFields) (*model.Event, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, fields, owner.ID, owner.Name)
}

func (s *EventServiceImpl) Update(ctx context.Context, id string, fields model.EventFields) (*model.Event, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

// normalizeFields 未指定狀態時視為 upcoming
func normalizeFields(fields model.EventFields) (model.EventFields, error) {
	if fields.Status == "" {
		fields.Status = model.EventStatusUpcoming
	}
	if fields.Title == "" || fields.Capacity < 1 || fields.Price < 0 {
		return fields, apperrors.ErrInvalidInput
	}
	if !model.IsValidCategory(fields.Category) || !fields.Status.IsValid() {
		return fields, apperrors.ErrInvalidInput
	}
	return fields, nil
}

func (s *EventServiceImpl) Stats(ctx context.Context, organizerID string) (model.DashboardStats, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return model.DashboardStats{}, err
	}
	if organizerID != "" {
		events = query.Apply(events, query.Params{OrganizerID: organizerID})
	}
	return query.OrganizerStats(events), nil
}
