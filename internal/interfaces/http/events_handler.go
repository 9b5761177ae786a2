package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// heartbeatInterval keeps idle proxies from closing the stream.
const heartbeatInterval = 25 * time.Second

// EventsHandler streams change notifications as Server-Sent Events.
type EventsHandler struct {
	bus *crm.EventBus
	log *logger.Logger
}

// NewEventsHandler builds the handler.
func NewEventsHandler(bus *crm.EventBus, log *logger.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, log: log}
}

// Stream GET /api/events
//
// Each event is sent as "event: <type>" with a JSON body {type, customer_id, at}. Clients
// re-read the named customer (or the list) when one arrives.
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	events, cancel := h.bus.Subscribe()
	username := GetUsername(c)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		h.log.Debug().Str("username", username).Msg("event stream opened")

		if err := writeSSE(w, "ready", fiber.Map{"subscribers": h.bus.Subscribers()}); err != nil {
			return
		}
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				if err := writeSSE(w, string(e.Type), e); err != nil {
					h.log.Debug().Err(err).Str("username", username).Msg("event stream closed")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSE(w *bufio.Writer, event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return err
	}
	return w.Flush()
}
