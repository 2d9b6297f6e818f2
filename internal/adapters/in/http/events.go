package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"supplyhub/internal/core/application/notifier"
	"supplyhub/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StreamEvents handles GET /api/v1/events as a server-sent event stream of
// order changes relevant to the caller. Events only name the order; clients
// re-fetch it. A "resync" event means the stream fell behind and the client
// should reload its lists before reconnecting.
func (s *Server) StreamEvents(c echo.Context) error {
	if s.events == nil {
		return c.NoContent(http.StatusNotImplemented)
	}
	who := actorFrom(c)
	sub := s.events.Subscribe(notifier.ForActor(who))
	defer sub.Close()

	ctx := c.Request().Context()
	log := logger.FromCtx(ctx, s.logger).With(zap.String("actor_id", who.ID().String()))

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return nil
	}
	w.Flush()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				_, _ = fmt.Fprint(w, "event: resync\ndata: {}\n\n")
				w.Flush()
				log.Info("event stream closed, subscriber fell behind")
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Warn("encode change event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: order_changed\nid: %s\ndata: %s\n\n", ev.OrderID, data); err != nil {
				return nil
			}
			w.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
