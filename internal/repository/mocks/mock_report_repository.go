package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"relatosapi/internal/model"
	"relatosapi/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) CreateReport(ctx context.Context, r *model.Report) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CreateAttachment(ctx context.Context, reportID int64, a *model.Attachment) (int64, error) {
	args := m.Called(ctx, reportID, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context) ([]model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepository) ListNewest(ctx context.Context, limit int) ([]model.Report, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id int64, withAttachments bool) (*model.Report, error) {
	args := m.Called(ctx, id, withAttachments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) FindAttachment(ctx context.Context, reportID, attachmentID int64) (*model.Attachment, error) {
	args := m.Called(ctx, reportID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

// InTx records the call and, unless an error is configured, runs fn against the mock itself.
func (m *MockReportRepository) InTx(ctx context.Context, fn func(repository.ReportRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}
