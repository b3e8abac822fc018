package mocks

import (
	"context"

	"go-event-hub/internal/model"

	"github.com/stretchr/testify/mock"
)

type RegistrationServiceMock struct {
	mock.Mock
}

func NewRegistrationServiceMock() *RegistrationServiceMock {
	return &RegistrationServiceMock{}
}

func (m *RegistrationServiceMock) Register(ctx context.Context, eventID string, form model.RegistrationForm) (*model.RegistrationResult, error) {
	args := m.Called(ctx, eventID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationResult), args.Error(1)
}
