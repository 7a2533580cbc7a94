package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Asker answers an emergency question. It never fails: degraded paths return
// fixed fallback text.
type Asker interface {
	Ask(ctx context.Context, question string) string
}

var assistant Asker

// InitAssistant wires the assistant used by AskAssistant.
func InitAssistant(a Asker) {
	assistant = a
}

// AskAssistant handles POST /assistant/ask.
func AskAssistant(c *gin.Context) {
	var input struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "question is required"})
		return
	}

	answer := assistant.Ask(c.Request.Context(), input.Question)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"answer": answer}})
}
