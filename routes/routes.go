package routes

import (
	"net/http"

	"WaDesk/pkg/dedup"
	"WaDesk/pkg/events"
	"WaDesk/pkg/services"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apiRoutes "WaDesk/routes/api"
	webhookRoutes "WaDesk/routes/webhook"
	websocketRoutes "WaDesk/routes/websocket"
)

// Deps carries the process-wide singletons the handlers share.
type Deps struct {
	Store       *store.Store
	Registry    *events.Registry
	Inbox       *services.Inbox
	Guard       *dedup.Guard
	VerifyToken string
	Logger      *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "WaDesk inbox running"})
	})
	r.GET("/dashboard", func(c *gin.Context) {
		c.File("./public/index.html")
	})

	webhookRoutes.Register(r, d.Inbox, d.Guard, d.VerifyToken, d.Logger)
	websocketRoutes.Register(r, d.Store, d.Registry, d.Logger)
	apiRoutes.Register(r.Group("/api"), d.Store, d.Registry, d.Inbox, d.Logger)
}
