package ports

import (
	"context"

	"supplyhub/internal/core/domain/model/order"
)

// ChangePublisher is invoked after a status change has been committed.
// Publishing never fails the caller; delivery problems are the publisher's
// to log and retry.
type ChangePublisher interface {
	Publish(ctx context.Context, event order.ChangeEvent)
}

// ChangeSink is one destination of change events, such as the database
// change feed or a message broker topic.
type ChangeSink interface {
	Name() string
	Send(ctx context.Context, event order.ChangeEvent) error
}
