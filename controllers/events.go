package controllers

import (
	"encoding/json"
	"io"

	"WaDesk/pkg/events"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Events streams store snapshots to the dashboard over server-sent events.
// The current snapshot is pushed on connect so a reloading client renders
// immediately; afterwards every store change arrives as one event.
func Events(st *store.Store, reg *events.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := reg.Subscribe()
		defer reg.Unsubscribe(sub.ID)
		logger.Debug("event stream opened", zap.String("subscriber", sub.ID))

		c.Header("Cache-Control", "no-cache")

		initial, err := json.Marshal(st.Snapshot())
		if err == nil {
			c.SSEvent("message", json.RawMessage(initial))
			c.Writer.Flush()
		}

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case data, ok := <-sub.C:
				if !ok {
					// dropped by the registry for falling behind
					return false
				}
				c.SSEvent("message", json.RawMessage(data))
				return true
			}
		})
		logger.Debug("event stream closed", zap.String("subscriber", sub.ID))
	}
}
