package intake

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public wizard routes.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	intake := r.Group("/intake")
	{
		intake.GET("/catalog", handler.GetCatalog)
		intake.POST("/contact", handler.SubmitContact)
		intake.GET("/:token", handler.Resume)
		intake.POST("/:token/service", handler.SelectService)
		intake.POST("/:token/details", handler.SubmitDetails)
		intake.POST("/:token/documents", handler.AcknowledgeDocs)
		intake.POST("/:token/another", handler.RequestAnotherService)
		intake.POST("/:token/back", handler.GoBack)
	}
}

// RegisterAdminRoutes registers the staff-only routes.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/intake/stale", handler.ListStale)
}
