package api

import (
	"WaDesk/controllers"
	"WaDesk/middleware"
	"WaDesk/pkg/events"
	"WaDesk/pkg/services"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register mounts the dashboard API: the read surface (snapshot + live feed)
// and the rate-limited operator actions.
func Register(g *gin.RouterGroup, st *store.Store, reg *events.Registry, inbox *services.Inbox, logger *zap.Logger) {
	g.GET("/events", controllers.Events(st, reg, logger))
	g.GET("/messages", controllers.ListMessages(st))

	actions := g.Group("/messages")
	actions.Use(middleware.RateLimit())
	actions.POST("/:id/accept", controllers.AcceptMessage(inbox))
	actions.POST("/:id/archive", controllers.ArchiveMessage(inbox))
	actions.POST("/:id/notes", controllers.SendNotes(inbox))
}
