package notifier

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the staff event stream.
func RegisterRoutes(r *gin.RouterGroup, handler *WSHandler) {
	r.GET("/notifier/ws", handler.Serve)
}
