package changefeed_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"supplyhub/internal/adapters/out/postgres/changefeed"
	"supplyhub/internal/adapters/out/postgres/pgtest"
	"supplyhub/internal/core/application/notifier"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func changeEvent() order.ChangeEvent {
	return order.ChangeEvent{
		OrderID:        kernel.NewUUID(),
		PreviousStatus: order.Confirmed,
		NewStatus:      order.ReadyForPickup,
		Timestamp:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		VendorID:       kernel.NewUUID(),
		SupplierID:     kernel.NewUUID(),
	}
}

type collectingSink struct {
	mu     sync.Mutex
	events []order.ChangeEvent
}

func (s *collectingSink) Name() string { return "collect" }

func (s *collectingSink) Send(_ context.Context, ev order.ChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *collectingSink) received() []order.ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.ChangeEvent(nil), s.events...)
}

func TestSink_SendNotifies(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ev := changeEvent()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	mock.ExpectExec(`SELECT pg_notify\(\$1, \$2\)`).
		WithArgs("order_changes", string(payload)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sink := changefeed.NewSink(db, "")

	require.NoError(t, sink.Send(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "changefeed", sink.Name())
}

func TestForward(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifications := make(chan *pq.Notification, 4)
	target := &collectingSink{}

	ev := changeEvent()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	notifications <- &pq.Notification{Channel: "order_changes", Extra: "not json"}
	notifications <- nil
	notifications <- &pq.Notification{Channel: "order_changes", Extra: string(payload)}
	close(notifications)

	changefeed.Forward(context.Background(), notifications, target, zap.New(core), nil)

	got := target.received()
	require.Len(t, got, 1)
	assert.Equal(t, ev.OrderID, got[0].OrderID)
	assert.Equal(t, order.ReadyForPickup, got[0].NewStatus)
	assert.True(t, ev.Timestamp.Equal(got[0].Timestamp))
	assert.Equal(t, 1, logs.FilterMessage("undecodable change notification").Len())
	assert.Equal(t, 1, logs.FilterMessage("change feed resumed, events during the gap were missed").Len())
}

func TestForward_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		changefeed.Forward(ctx, make(chan *pq.Notification), &collectingSink{}, zap.NewNop(), nil)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward did not return after cancel")
	}
}

type ChangeFeedSuite struct {
	suite.Suite
	db *pgtest.Database
}

func TestChangeFeedSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(ChangeFeedSuite))
}

func (s *ChangeFeedSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	s.Require().NoError(err)
	s.db = db
}

func (s *ChangeFeedSuite) TearDownSuite() {
	s.Require().NoError(s.db.Terminate(context.Background()))
}

func (s *ChangeFeedSuite) TestEventReachesHubOfAnotherInstance() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notifier.NewHub(8, zap.NewNop())
	sub := hub.Subscribe(nil)
	defer sub.Close()

	listener, err := changefeed.NewListener(s.db.DSN, "", hub, zap.NewNop())
	s.Require().NoError(err)
	defer listener.Close()
	go listener.Run(ctx)

	ev := changeEvent()
	s.Require().NoError(changefeed.NewSink(s.db.DB, "").Send(ctx, ev))

	select {
	case got := <-sub.Events():
		s.Equal(ev.OrderID, got.OrderID)
		s.Equal(ev.NewStatus, got.NewStatus)
	case <-time.After(5 * time.Second):
		s.Fail("change event did not arrive")
	}
}
