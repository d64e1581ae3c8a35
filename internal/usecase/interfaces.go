package usecase

import (
	"context"
	"time"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/completa"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/geocode"
	"github.com/cezarfreitas/completa-hub/internal/infra/queue"
)

type GeocodeGateway interface {
	Lookup(ctx context.Context, address string) ([]geocode.Result, error)
}

type SubscriptionGateway interface {
	Subscribe(ctx context.Context, apiURL, origin string, payload completa.SubscriptionRequest) (*completa.SubscriptionResult, error)
}

type IntegrationRepositoryInterface interface {
	FindBySlug(ctx context.Context, slug string) (*entity.Integration, error)
	FindByID(ctx context.Context, id string) (*entity.Integration, error)
	ListActive(ctx context.Context) ([]*entity.Integration, error)
	ListSlugs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, integration *entity.Integration) error
	Update(ctx context.Context, integration *entity.Integration) error
	Deactivate(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type VerificationLogRepositoryInterface interface {
	Create(ctx context.Context, verificationLog *entity.VerificationLog) error
	List(ctx context.Context, slug string, limit int) ([]*entity.VerificationLog, error)
	TodayStats(ctx context.Context) (total, success, errors int, err error)
	StatsByDay(ctx context.Context, since time.Time) ([]entity.DayStats, error)
}

type QueueProducerInterface interface {
	PublishForward(ctx context.Context, payload queue.ForwardPayload) error
}
