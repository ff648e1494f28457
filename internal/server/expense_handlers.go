package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/balance"
	"github.com/rdevang/smartsplit/internal/middleware"
	"github.com/rdevang/smartsplit/internal/models"
	"github.com/rdevang/smartsplit/internal/split"
)

type createExpenseRequest struct {
	Description   string        `json:"description" binding:"required"`
	Amount        float64       `json:"amount" binding:"required,gt=0"`
	PayerMemberID string        `json:"payer_member_id" binding:"required"`
	SplitType     split.Type    `json:"split_type"`
	Participants  []split.Input `json:"participants"`
}

func (s *Server) createExpense(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.SplitType == "" {
		req.SplitType = split.TypeEqual
	}

	roster := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		roster[m.ID] = true
	}
	if !roster[req.PayerMemberID] {
		respondValidationError(c, fmt.Sprintf("payer %q is not a group member", req.PayerMemberID))
		return
	}

	// An equal split with no explicit participants covers everyone.
	participants := req.Participants
	if len(participants) == 0 && req.SplitType == split.TypeEqual {
		for _, m := range group.Members {
			participants = append(participants, split.Input{MemberID: m.ID})
		}
	}
	for _, p := range participants {
		if !roster[p.MemberID] {
			respondValidationError(c, fmt.Sprintf("participant %q is not a group member", p.MemberID))
			return
		}
	}

	strategy, err := split.New(req.SplitType)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	shares, err := strategy.Calculate(req.Amount, participants)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	splits := make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.ExpenseSplit{MemberID: share.MemberID, Amount: share.Amount}
	}

	expense := &models.Expense{
		GroupID:       group.ID,
		Description:   req.Description,
		Amount:        req.Amount,
		PayerMemberID: req.PayerMemberID,
		SplitType:     string(req.SplitType),
		Splits:        splits,
		CreatedBy:     middleware.UserID(c),
	}
	if err := s.store.CreateExpense(c.Request.Context(), expense); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	c.JSON(http.StatusCreated, expense)
}

func (s *Server) listExpenses(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	expenses, err := s.store.ListExpensesByGroup(c.Request.Context(), group.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expenses":    expenses,
		"total_spent": balance.TotalSpent(expenses),
	})
}

func (s *Server) deleteExpense(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	expense, err := s.store.GetExpense(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if expense.GroupID != group.ID {
		respondError(c, ErrNotGroupMember)
		return
	}

	if err := s.store.DeleteExpense(c.Request.Context(), expense.ID); err != nil {
		respondError(c, err)
		return
	}
	s.balanceCache.Invalidate(group.ID)

	c.Status(http.StatusNoContent)
}
