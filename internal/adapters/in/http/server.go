package http

import (
	"context"
	"time"

	"supplyhub/internal/core/application/notifier"
	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/metrics"

	"go.uber.org/zap"
)

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	OrderClaimer interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error)
	}
	ClaimableLister interface {
		Handle(ctx context.Context, query queries.ListClaimableOrdersQuery) ([]queries.OrderSummary, error)
	}
	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetails, error)
	}
	ActorOrdersLister interface {
		Handle(ctx context.Context, query queries.ListActorOrdersQuery) ([]queries.OrderSummary, error)
	}
	VendorStatsReader interface {
		Handle(ctx context.Context, query queries.GetVendorOrderStatsQuery) (queries.VendorOrderStats, error)
	}
	ProfileReader interface {
		Handle(ctx context.Context, query queries.GetProfileStatusQuery) (queries.ProfileStatus, error)
	}
	EventSource interface {
		Subscribe(filter notifier.Filter) *notifier.Subscription
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder      OrderCreator
	TransitionOrder  OrderTransitioner
	ClaimOrder       OrderClaimer
	ListClaimable    ClaimableLister
	GetOrder         OrderReader
	ListActorOrders  ActorOrdersLister
	VendorOrderStats VendorStatsReader
	ProfileStatus    ProfileReader
}

// Server adapts HTTP requests to the order use cases.
type Server struct {
	handlers  Handlers
	events    EventSource
	logger    *zap.Logger
	metrics   *metrics.Metrics
	heartbeat time.Duration
}

type ServerOption func(*Server)

// WithHeartbeat sets the interval of SSE keep-alive comments.
func WithHeartbeat(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.heartbeat = d
		}
	}
}

func NewServer(
	handlers Handlers,
	events EventSource,
	l *zap.Logger,
	m *metrics.Metrics,
	opts ...ServerOption,
) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		handlers:  handlers,
		events:    events,
		logger:    l.With(zap.String("component", "http")),
		metrics:   m,
		heartbeat: 25 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
