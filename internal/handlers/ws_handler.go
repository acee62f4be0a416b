package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
)

// EventStream subscribes the connection to the notification broadcast.
func EventStream(hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
