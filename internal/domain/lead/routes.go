package lead

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public submission route alongside the
// wizard's /intake group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/intake/:token/submit", handler.Submit)
}
