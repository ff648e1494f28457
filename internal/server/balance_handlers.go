package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rdevang/smartsplit/internal/balance"
	"github.com/rdevang/smartsplit/internal/simplify"
)

var (
	simplifyRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartsplit",
		Name:      "simplify_runs_total",
		Help:      "Number of debt simplification runs.",
	})
	simplifySavings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartsplit",
		Name:      "simplify_payments_saved_total",
		Help:      "Payments eliminated by simplification, summed over runs.",
	})
	balanceCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartsplit",
		Name:      "balance_cache_requests_total",
		Help:      "Balance summary lookups by cache outcome.",
	}, []string{"outcome"})
)

// BalanceSummary is the full picture of who owes whom in a group.
type BalanceSummary struct {
	Balances    []simplify.Balance `json:"balances"`
	Payments    []simplify.Payment `json:"payments"`
	Suggestions []string           `json:"suggestions"`
	Stats       simplify.Stats     `json:"stats"`
	TotalSpent  float64            `json:"total_spent"`
	Currency    string             `json:"currency"`
}

func (s *Server) getBalances(c *gin.Context) {
	group, err := s.requireMembership(c, c.Param("groupID"))
	if err != nil {
		respondError(c, err)
		return
	}

	if summary, ok := s.balanceCache.Get(group.ID); ok {
		balanceCacheHits.WithLabelValues("hit").Inc()
		c.JSON(http.StatusOK, summary)
		return
	}
	balanceCacheHits.WithLabelValues("miss").Inc()

	expenses, err := s.store.ListExpensesByGroup(c.Request.Context(), group.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	settlements, err := s.store.ListSettlementsByGroup(c.Request.Context(), group.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	balances := balance.Aggregate(group.Members, expenses, settlements)
	payments := simplify.SimplifyDebts(balances)
	stats := simplify.SimplificationStats(balances)

	simplifyRuns.Inc()
	simplifySavings.Add(float64(stats.Savings))

	suggestions := make([]string, 0, len(payments))
	for _, p := range payments {
		line, err := simplify.FormatPayment(p, group.Currency)
		if err != nil {
			respondError(c, err)
			return
		}
		suggestions = append(suggestions, line)
	}

	summary := &BalanceSummary{
		Balances:    balances,
		Payments:    payments,
		Suggestions: suggestions,
		Stats:       stats,
		TotalSpent:  balance.TotalSpent(expenses),
		Currency:    group.Currency,
	}
	s.balanceCache.Set(group.ID, summary)

	c.JSON(http.StatusOK, summary)
}
