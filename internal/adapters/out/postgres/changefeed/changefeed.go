// Package changefeed carries order change events between service instances
// over PostgreSQL LISTEN/NOTIFY.
//
// Every instance publishes through Sink and runs a Listener that pushes
// what arrives on the channel into its local hub, so subscribers see the
// changes made by every instance.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultChannel = "order_changes"

type Sink struct {
	db      *gorm.DB
	channel string
}

var _ ports.ChangeSink = (*Sink)(nil)

func NewSink(db *gorm.DB, channel string) *Sink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Sink{db: db, channel: channel}
}

func (s *Sink) Name() string {
	return "changefeed"
}

func (s *Sink) Send(ctx context.Context, ev order.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := s.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", s.channel, string(payload)).Error; err != nil {
		return fmt.Errorf("pg_notify %s: %w", s.channel, err)
	}
	return nil
}

type Listener struct {
	listener *pq.Listener
	channel  string
	target   ports.ChangeSink
	logger   *zap.Logger
}

// NewListener opens a dedicated connection for LISTEN. pq reconnects on its
// own; notifications sent while disconnected are lost, which subscribers
// tolerate by re-reading state after a gap.
func NewListener(dsn, channel string, target ports.ChangeSink, l *zap.Logger) (*Listener, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	if l == nil {
		l = zap.NewNop()
	}
	l = l.With(zap.String("component", "changefeed"), zap.String("channel", channel))

	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			l.Info("listener connected")
		case pq.ListenerEventDisconnected:
			l.Warn("listener disconnected", zap.Error(err))
		case pq.ListenerEventReconnected:
			l.Info("listener reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			l.Warn("listener connection attempt failed", zap.Error(err))
		}
	})
	if err := listener.Listen(channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}
	return &Listener{listener: listener, channel: channel, target: target, logger: l}, nil
}

// Run forwards notifications until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	Forward(ctx, l.listener.Notify, l.target, l.logger, l.listener.Ping)
}

func (l *Listener) Close() error {
	return l.listener.Close()
}

// Forward decodes notifications into change events and sends them to
// target. A nil notification means the connection was re-established. ping
// is called when the channel stays quiet, to detect dead connections.
func Forward(
	ctx context.Context,
	notifications <-chan *pq.Notification,
	target ports.ChangeSink,
	l *zap.Logger,
	ping func() error,
) {
	idle := time.NewTicker(90 * time.Second)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			if n == nil {
				l.Info("change feed resumed, events during the gap were missed")
				continue
			}
			var ev order.ChangeEvent
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				l.Warn("undecodable change notification", zap.Error(err))
				continue
			}
			if err := target.Send(ctx, ev); err != nil {
				l.Warn("forward change event", zap.String("order_id", ev.OrderID.String()), zap.Error(err))
			}
		case <-idle.C:
			if ping == nil {
				continue
			}
			if err := ping(); err != nil {
				l.Warn("listener ping failed", zap.Error(err))
			}
		}
	}
}
