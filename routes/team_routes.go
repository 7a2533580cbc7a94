package routes

import (
	"rescue-hub/controllers"
	"rescue-hub/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRescueTeamRoutes(r *gin.Engine) {
	r.POST("/rescue-teams/register", controllers.RegisterRescueTeam)
	r.POST("/rescue-teams/login", controllers.LoginRescueTeam)
	r.GET("/rescue-teams", controllers.GetRescueTeams)
	r.GET("/rescue-teams/me", middlewares.TeamAuth(), controllers.GetCurrentRescueTeam)
	r.GET("/rescue-teams/:id", controllers.GetRescueTeamByID)
}
