package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/middleware"
	"github.com/rdevang/smartsplit/internal/models"
)

type createSettlementRequest struct {
	FromMemberID string  `json:"from_member_id" binding:"required"`
	ToMemberID   string  `json:"to_member_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Note         string  `json:"note"`
}

func (s *Server) createSettlement(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req createSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.FromMemberID == req.ToMemberID {
		respondValidationError(c, "a member cannot settle with themselves")
		return
	}

	roster := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		roster[m.ID] = true
	}
	if !roster[req.FromMemberID] {
		respondValidationError(c, fmt.Sprintf("member %q is not in this group", req.FromMemberID))
		return
	}
	if !roster[req.ToMemberID] {
		respondValidationError(c, fmt.Sprintf("member %q is not in this group", req.ToMemberID))
		return
	}

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: req.FromMemberID,
		ToMemberID:   req.ToMemberID,
		Amount:       req.Amount,
		Note:         req.Note,
		CreatedBy:    middleware.UserID(c),
	}
	if err := s.store.CreateSettlement(c.Request.Context(), settlement); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, settlement)
}

func (s *Server) listSettlements(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	settlements, err := s.store.ListSettlementsByGroup(c.Request.Context(), group.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

// confirmSettlement marks a settlement confirmed. Only the user behind
// the receiving member may confirm; placeholders have no account, so a
// payment to a placeholder can be confirmed by whoever recorded it.
func (s *Server) confirmSettlement(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	settlement, err := s.store.GetSettlement(c.Request.Context(), c.Param("settlementID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if settlement.GroupID != group.ID {
		respondError(c, ErrNotGroupMember)
		return
	}
	if settlement.Status == models.SettlementConfirmed {
		// Confirming twice is a no-op, not an error.
		c.JSON(http.StatusOK, settlement)
		return
	}

	userID := middleware.UserID(c)
	if !canConfirm(group, settlement, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the receiving member can confirm a settlement"})
		return
	}

	now := time.Now().Unix()
	if err := s.store.ConfirmSettlement(c.Request.Context(), settlement.ID, now); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	settlement.Status = models.SettlementConfirmed
	settlement.ConfirmedAt = now
	c.JSON(http.StatusOK, settlement)
}

func canConfirm(group *models.Group, settlement *models.Settlement, userID string) bool {
	for _, m := range group.Members {
		if m.ID != settlement.ToMemberID {
			continue
		}
		if m.IsPlaceholder {
			return settlement.CreatedBy == userID
		}
		return m.UserID == userID
	}
	return false
}

func (s *Server) deleteSettlement(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	settlement, err := s.store.GetSettlement(c.Request.Context(), c.Param("settlementID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if settlement.GroupID != group.ID {
		respondError(c, ErrNotGroupMember)
		return
	}

	if err := s.store.DeleteSettlement(c.Request.Context(), settlement.ID); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	c.Status(http.StatusNoContent)
}
