package mocks

import (
	"context"

	"go-event-hub/internal/model"
	"go-event-hub/internal/queue"

	"github.com/stretchr/testify/mock"
)

type RegistrationQueueMock struct {
	mock.Mock
}

func NewRegistrationQueueMock() *RegistrationQueueMock {
	return &RegistrationQueueMock{}
}

func (m *RegistrationQueueMock) Publish(ctx context.Context, confirmation *model.RegistrationConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

func (m *RegistrationQueueMock) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
