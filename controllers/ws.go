package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"WaDesk/pkg/events"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

// Feed streams store snapshots over a websocket, for dashboard clients that
// prefer it to SSE. The protocol is one-way: the server pushes the full
// snapshot on connect and after every change; inbound frames are read only to
// detect closure and keep the connection alive.
func Feed(st *store.Store, reg *events.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		sub := reg.Subscribe()
		defer reg.Unsubscribe(sub.ID)
		logger.Debug("ws feed opened", zap.String("subscriber", sub.ID))

		conn.SetReadLimit(1 << 10)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})

		// reader goroutine: discards frames, unblocks the loop on close
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if initial, err := json.Marshal(st.Snapshot()); err == nil {
			if err := writeFrame(conn, initial); err != nil {
				return
			}
		}

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case data, ok := <-sub.C:
				if !ok {
					return
				}
				if err := writeFrame(conn, data); err != nil {
					logger.Debug("ws write failed", zap.String("subscriber", sub.ID), zap.Error(err))
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
