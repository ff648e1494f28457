package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/models"
)

type createFeedbackRequest struct {
	Type        string `json:"type" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

var feedbackTypes = map[string]bool{
	models.FeedbackSuggestion:     true,
	models.FeedbackFeatureRequest: true,
	models.FeedbackBugReport:      true,
	models.FeedbackOther:          true,
}

// submitFeedback accepts feedback from anyone, logged in or not. The
// global rate limiter is the only guard on this route.
func (s *Server) submitFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !feedbackTypes[req.Type] {
		respondValidationError(c, fmt.Sprintf("unknown feedback type %q", req.Type))
		return
	}

	feedback := &models.Feedback{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Email:       req.Email,
		Name:        req.Name,
	}
	if err := s.store.CreateFeedback(c.Request.Context(), feedback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (s *Server) listFeedback(c *gin.Context) {
	items, err := s.store.ListFeedback(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": items})
}
