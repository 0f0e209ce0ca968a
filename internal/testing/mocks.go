package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/instance-scheduler/internal/inventory"
)

// MockPlatform is a mock implementation of inventory.Platform.
// It can be used across all tests that need a fake cloud provider.
type MockPlatform struct {
	mock.Mock
}

var _ inventory.Platform = (*MockPlatform)(nil)

// Name returns "mock".
func (m *MockPlatform) Name() string {
	return "mock"
}

// ListInstances returns the mocked instance list.
func (m *MockPlatform) ListInstances(ctx context.Context) ([]inventory.Instance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Instance), args.Error(1)
}

// StartInstance records a start request.
func (m *MockPlatform) StartInstance(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// StopInstance records a stop request.
func (m *MockPlatform) StopInstance(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
