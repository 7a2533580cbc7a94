package controllers

import (
	"errors"
	"net/http"

	"rescue-hub/models"
	"rescue-hub/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AssignTeam handles POST /reports/:id/assign-team. The two-sided link is
// written by the assignment workflow as one compensated operation.
func AssignTeam(c *gin.Context) {
	var input struct {
		TeamID string `json:"teamId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "teamId is required"})
		return
	}

	result, err := services.AssignTeamToReport(c.Request.Context(), models.Store{}, input.TeamID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ID format"})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report or rescue team not found"})
		default:
			logrus.WithError(err).Error("team assignment failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Team assigned successfully", "data": result})
}
