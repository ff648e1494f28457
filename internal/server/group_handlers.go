package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"

	"github.com/rdevang/smartsplit/internal/middleware"
	"github.com/rdevang/smartsplit/internal/models"
)

type memberRequest struct {
	Name          string `json:"name" binding:"required"`
	UserID        string `json:"user_id"`
	IsPlaceholder bool   `json:"is_placeholder"`
}

type createGroupRequest struct {
	Name     string          `json:"name" binding:"required"`
	Currency string          `json:"currency"`
	Members  []memberRequest `json:"members"`
}

type updateGroupRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// requireMembership loads the group and verifies the authenticated
// user holds a seat in it. All group-scoped handlers go through this.
func (s *Server) requireMembership(c *gin.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		return nil, err
	}

	userID := middleware.UserID(c)
	for _, m := range group.Members {
		if m.UserID == userID {
			return group, nil
		}
	}
	return nil, ErrNotGroupMember
}

func validCurrency(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

func (s *Server) createGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Currency != "" {
		if err := validCurrency(req.Currency); err != nil {
			respondValidationError(c, err.Error())
			return
		}
	}

	userID := middleware.UserID(c)
	user, err := s.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return
	}

	// The creator always gets the first seat.
	members := []models.Member{{UserID: userID, Name: user.DisplayName}}
	for _, m := range req.Members {
		member, err := buildMember(m, userID)
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}
		members = append(members, member)
	}

	group := &models.Group{
		Name:      req.Name,
		Currency:  strings.ToUpper(req.Currency),
		CreatedBy: userID,
		Members:   members,
	}
	if err := s.store.CreateGroup(c.Request.Context(), group); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

func buildMember(req memberRequest, creatorID string) (models.Member, error) {
	if req.IsPlaceholder && req.UserID != "" {
		return models.Member{}, fmt.Errorf("placeholder member %q cannot link to a user", req.Name)
	}
	if !req.IsPlaceholder && req.UserID == "" {
		return models.Member{}, fmt.Errorf("member %q needs a user_id or is_placeholder", req.Name)
	}
	if req.UserID == creatorID {
		return models.Member{}, fmt.Errorf("creator already holds a seat")
	}
	return models.Member{
		UserID:        req.UserID,
		Name:          req.Name,
		IsPlaceholder: req.IsPlaceholder,
	}, nil
}

func (s *Server) listGroups(c *gin.Context) {
	groups, err := s.store.ListGroupsByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) getGroup(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (s *Server) updateGroup(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Name == "" && req.Currency == "" {
		respondValidationError(c, "nothing to update")
		return
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Currency != "" {
		if err := validCurrency(req.Currency); err != nil {
			respondValidationError(c, err.Error())
			return
		}
		group.Currency = strings.ToUpper(req.Currency)
	}

	if err := s.store.UpdateGroup(c.Request.Context(), group); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	c.JSON(http.StatusOK, group)
}

func (s *Server) deleteGroup(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.store.DeleteGroup(c.Request.Context(), group.ID); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	c.Status(http.StatusNoContent)
}

func (s *Server) addMembers(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Members []memberRequest `json:"members" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	members := make([]models.Member, 0, len(req.Members))
	for _, m := range req.Members {
		if m.IsPlaceholder && m.UserID != "" {
			respondValidationError(c, fmt.Sprintf("placeholder member %q cannot link to a user", m.Name))
			return
		}
		if !m.IsPlaceholder && m.UserID == "" {
			respondValidationError(c, fmt.Sprintf("member %q needs a user_id or is_placeholder", m.Name))
			return
		}
		members = append(members, models.Member{
			UserID:        m.UserID,
			Name:          m.Name,
			IsPlaceholder: m.IsPlaceholder,
		})
	}

	if err := s.store.AddMembers(c.Request.Context(), group.ID, members); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	updated, err := s.store.GetGroup(c.Request.Context(), group.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
