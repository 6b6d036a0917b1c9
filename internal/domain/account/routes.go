package account

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public account routes.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/account/from-token", handler.CreateFromToken)
}
