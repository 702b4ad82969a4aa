package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mnogodumalon/kurs40/internal/app/controllers"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
)

// SetupRouter configures all API routes. Every catalog kind gets the
// same four CRUD routes plus the edit view; the kinds differ only in
// their descriptors, never in handler code.
func SetupRouter(
	router *gin.Engine,
	catalog *schema.Catalog,
	resourceController *controllers.ResourceController,
	dashboardController *controllers.DashboardController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/dashboard/stats", dashboardController.GetStats)

	for _, kind := range catalog.Kinds() {
		group := v1.Group("/" + kind.Key)
		{
			group.GET("/records", resourceController.ListRecords(kind.Key))
			group.POST("/records", resourceController.CreateRecord(kind.Key))
			group.GET("/records/:id/edit", resourceController.GetRecordForEdit(kind.Key))
			group.PATCH("/records/:id", resourceController.UpdateRecord(kind.Key))
			group.DELETE("/records/:id", resourceController.DeleteRecord(kind.Key))
		}
	}
}
