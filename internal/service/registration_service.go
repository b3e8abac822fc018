package service

import (
	"context"
	"time"

	"go-event-hub/internal/model"
	"go-event-hub/internal/queue"
	"go-event-hub/internal/repository"
	"go-event-hub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegistrationService interface {
	// Register registered +1 並回報成功；是否額滿由呼叫端先檢查
	Register(ctx context.Context, eventID string, form model.RegistrationForm) (*model.RegistrationResult, error)
}

type RegistrationServiceImpl struct {
	repo  repository.EventRepository
	queue queue.RegistrationQueue
}

func NewRegistrationService(repo repository.EventRepository, queue queue.RegistrationQueue) RegistrationService {
	return &RegistrationServiceImpl{
		repo:  repo,
		queue: queue,
	}
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, eventID string, form model.RegistrationForm) (*model.RegistrationResult, error) {
	event, err := s.repo.IncrementRegistered(ctx, eventID)
	if err != nil {
		return nil, err
	}

	confirmation := &model.RegistrationConfirmation{
		RequestID:     uuid.New().String(),
		EventID:       event.ID,
		EventTitle:    event.Title,
		AttendeeName:  form.Name,
		AttendeeEmail: form.Email,
		RequestedAt:   time.Now().UTC(),
	}
	// 確認信只是附帶動作，送不出去也不影響報名結果
	if err := s.queue.Publish(ctx, confirmation); err != nil {
		logger.WithComponent("service").Warn("failed to publish registration confirmation",
			zap.String("event_id", event.ID),
			zap.String("request_id", confirmation.RequestID),
			zap.Error(err),
		)
	}

	return &model.RegistrationResult{
		Success: true,
		Message: model.RegistrationSuccessMessage,
		Event:   event,
	}, nil
}
