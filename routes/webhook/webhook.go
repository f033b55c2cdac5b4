package webhook

import (
	"WaDesk/controllers"
	"WaDesk/pkg/dedup"
	"WaDesk/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(r *gin.Engine, inbox *services.Inbox, guard *dedup.Guard, verifyToken string, logger *zap.Logger) {
	r.POST("/webhook", controllers.ReceiveWebhook(inbox, guard, logger))
	r.GET("/webhook", controllers.VerifyWebhook(verifyToken, logger))
}
