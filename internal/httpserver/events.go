package httpserver

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/logging"
)

const (
	topicUserEvents    = "user_events"
	topicCartEvents    = "cart_events"
	topicOrderEvents   = "order_events"
	topicProductEvents = "product_events"
)

const publishTimeout = 5 * time.Second

// publish emits a domain event best effort: the request already
// succeeded, so a broker failure only logs. A nil producer disables
// events entirely.
func (s *Server) publish(c echo.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()

	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed",
			"topic", topic, "key", key, "error", err)
	}
}
