package websocket

import (
	"WaDesk/controllers"
	"WaDesk/pkg/events"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(r *gin.Engine, st *store.Store, reg *events.Registry, logger *zap.Logger) {
	r.GET("/ws/feed", controllers.Feed(st, reg, logger))
}
