package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/completa"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/geocode"
	"github.com/cezarfreitas/completa-hub/internal/infra/queue"
)

type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) FindBySlug(ctx context.Context, slug string) (*entity.Integration, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) FindByID(ctx context.Context, id string) (*entity.Integration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) ListActive(ctx context.Context) ([]*entity.Integration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) ListSlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockIntegrationRepository) Create(ctx context.Context, integration *entity.Integration) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockIntegrationRepository) Update(ctx context.Context, integration *entity.Integration) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockIntegrationRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIntegrationRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockIntegrationRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockVerificationLogRepository struct {
	mock.Mock
}

func (m *MockVerificationLogRepository) Create(ctx context.Context, verificationLog *entity.VerificationLog) error {
	args := m.Called(ctx, verificationLog)
	return args.Error(0)
}

func (m *MockVerificationLogRepository) List(ctx context.Context, slug string, limit int) ([]*entity.VerificationLog, error) {
	args := m.Called(ctx, slug, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.VerificationLog), args.Error(1)
}

func (m *MockVerificationLogRepository) TodayStats(ctx context.Context) (int, int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockVerificationLogRepository) StatsByDay(ctx context.Context, since time.Time) ([]entity.DayStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DayStats), args.Error(1)
}

type MockGeocodeGateway struct {
	mock.Mock
}

func (m *MockGeocodeGateway) Lookup(ctx context.Context, address string) ([]geocode.Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geocode.Result), args.Error(1)
}

type MockSubscriptionGateway struct {
	mock.Mock
}

func (m *MockSubscriptionGateway) Subscribe(ctx context.Context, apiURL, origin string, payload completa.SubscriptionRequest) (*completa.SubscriptionResult, error) {
	args := m.Called(ctx, apiURL, origin, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*completa.SubscriptionResult), args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishForward(ctx context.Context, payload queue.ForwardPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
