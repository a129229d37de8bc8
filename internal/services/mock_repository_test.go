package services

import (
	"context"

	"tempus/internal/repository/sqlite"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of sqlite.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTimeEntry(ctx context.Context, entry *sqlite.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) GetTimeEntry(ctx context.Context, id int64) (*sqlite.TimeEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlite.TimeEntry), args.Error(1)
}

func (m *MockRepository) ListTimeEntries(ctx context.Context) ([]*sqlite.TimeEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sqlite.TimeEntry), args.Error(1)
}

func (m *MockRepository) SumDurations(ctx context.Context, opts sqlite.SearchOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}
