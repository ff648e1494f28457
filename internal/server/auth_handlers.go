package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/middleware"
	"github.com/rdevang/smartsplit/internal/models"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user, err := s.authenticator.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user, err := s.authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.store.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		// Token outlived the account.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return
	}
	c.JSON(http.StatusOK, user)
}
