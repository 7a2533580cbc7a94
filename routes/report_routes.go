package routes

import (
	"rescue-hub/controllers"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(r *gin.Engine) {
	r.GET("/reports", controllers.GetReports)
	r.GET("/reports/author/:name", controllers.GetReportsByAuthor)
	r.GET("/reports/:id", controllers.GetReportByID)
	r.POST("/reports", controllers.CreateReport)
	r.PUT("/reports/:id", controllers.UpdateReport)
	r.DELETE("/reports/:id", controllers.DeleteReport)

	r.POST("/reports/:id/assign-team", controllers.AssignTeam)
	r.POST("/reports/:id/donate", controllers.Donate)
}
