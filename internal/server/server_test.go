package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdevang/smartsplit/internal/config"
	"github.com/rdevang/smartsplit/internal/models"
	"github.com/rdevang/smartsplit/internal/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		BalanceCacheTTL: time.Minute,
		RateLimit:       0, // disabled in tests
	}
	return New(cfg, store).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, router *gin.Engine, email, name string) (string, string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":        email,
		"display_name": name,
		"password":     "hunter2hunter2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decode[struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}](t, rec)
	return resp.Token, resp.User.ID
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}

func TestCacheHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cache/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cache health status = %d", rec.Code)
	}
	resp := decode[struct {
		Status  string `json:"status"`
		Entries int    `json:"entries"`
	}](t, rec)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Entries != 0 {
		t.Errorf("entries = %d, want 0 before any balance reads", resp.Entries)
	}
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	token, userID := registerUser(t, router, "alice@example.com", "Alice")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
			"email":        "alice@example.com",
			"display_name": "Imposter",
			"password":     "hunter2hunter2",
		})
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
			"email":        "bob@example.com",
			"display_name": "Bob",
			"password":     "short",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("login", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "hunter2hunter2",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "not-the-password",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("me", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("me status = %d", rec.Code)
		}
		user := decode[models.User](t, rec)
		if user.ID != userID {
			t.Errorf("me returned user %s, want %s", user.ID, userID)
		}
		if user.PasswordHash != "" {
			t.Error("password hash must not appear in responses")
		}
	})

	t.Run("me without token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func createTripGroup(t *testing.T, router *gin.Engine, token string) *models.Group {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/groups", token, gin.H{
		"name": "Road Trip",
		"members": []gin.H{
			{"name": "Bob", "is_placeholder": true},
			{"name": "Carol", "is_placeholder": true},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group status = %d, body = %s", rec.Code, rec.Body.String())
	}
	group := decode[models.Group](t, rec)
	if len(group.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(group.Members))
	}
	if group.Currency != "USD" {
		t.Fatalf("currency = %s, want default USD", group.Currency)
	}
	return &group
}

func memberIDByName(t *testing.T, group *models.Group, name string) string {
	t.Helper()
	for _, m := range group.Members {
		if m.Name == name {
			return m.ID
		}
	}
	t.Fatalf("no member named %s", name)
	return ""
}

func TestExpenseAndBalanceFlow(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "alice@example.com", "Alice")
	group := createTripGroup(t, router, token)

	alice := memberIDByName(t, group, "Alice")
	bob := memberIDByName(t, group, "Bob")
	carol := memberIDByName(t, group, "Carol")

	// Alice fronts dinner for everyone.
	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/expenses", group.ID), token, gin.H{
		"description":     "Dinner",
		"amount":          60.0,
		"payer_member_id": alice,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense status = %d, body = %s", rec.Code, rec.Body.String())
	}
	expense := decode[models.Expense](t, rec)
	if len(expense.Splits) != 3 {
		t.Fatalf("got %d splits, want 3", len(expense.Splits))
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%s/balances", group.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balances status = %d, body = %s", rec.Code, rec.Body.String())
	}
	summary := decode[BalanceSummary](t, rec)

	if summary.TotalSpent != 60 {
		t.Errorf("total_spent = %v, want 60", summary.TotalSpent)
	}
	if len(summary.Payments) != 2 {
		t.Fatalf("got %d payments, want 2: %+v", len(summary.Payments), summary.Payments)
	}
	for _, p := range summary.Payments {
		if p.ToMemberID != alice || p.Amount != 20 {
			t.Errorf("unexpected payment %+v", p)
		}
	}
	if summary.Stats.SimplifiedPaymentCount != 2 || summary.Stats.NaivePaymentCount != 2 {
		t.Errorf("unexpected stats %+v", summary.Stats)
	}
	if len(summary.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(summary.Suggestions))
	}
	if !strings.HasPrefix(summary.Suggestions[0], "Bob pays Alice ") {
		t.Errorf("suggestion = %q", summary.Suggestions[0])
	}

	// The summary is now cached for the group.
	rec = doJSON(t, router, http.MethodGet, "/api/cache/health", "", nil)
	cacheResp := decode[struct {
		Entries int `json:"entries"`
	}](t, rec)
	if cacheResp.Entries != 1 {
		t.Errorf("cache entries = %d, want 1 after a balance read", cacheResp.Entries)
	}

	// Bob settles up; once Alice confirms, only Carol still owes.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/settlements", group.ID), token, gin.H{
		"from_member_id": bob,
		"to_member_id":   alice,
		"amount":         20.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create settlement status = %d, body = %s", rec.Code, rec.Body.String())
	}
	settlement := decode[models.Settlement](t, rec)
	if settlement.Status != models.SettlementPending {
		t.Fatalf("settlement status = %s, want pending", settlement.Status)
	}

	// Pending settlements do not move balances.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%s/balances", group.ID), token, nil)
	summary = decode[BalanceSummary](t, rec)
	if len(summary.Payments) != 2 {
		t.Fatalf("pending settlement changed balances: %+v", summary.Payments)
	}

	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/settlements/%s/confirm", group.ID, settlement.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%s/balances", group.ID), token, nil)
	summary = decode[BalanceSummary](t, rec)
	if len(summary.Payments) != 1 {
		t.Fatalf("got %d payments after settlement, want 1: %+v", len(summary.Payments), summary.Payments)
	}
	p := summary.Payments[0]
	if p.FromMemberID != carol || p.ToMemberID != alice || p.Amount != 20 {
		t.Errorf("unexpected payment %+v", p)
	}
}

func TestExpenseValidation(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "alice@example.com", "Alice")
	group := createTripGroup(t, router, token)
	alice := memberIDByName(t, group, "Alice")
	bob := memberIDByName(t, group, "Bob")

	t.Run("unknown payer", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/expenses", group.ID), token, gin.H{
			"description":     "Gas",
			"amount":          30.0,
			"payer_member_id": "stranger",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("exact shares must sum", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/expenses", group.ID), token, gin.H{
			"description":     "Gas",
			"amount":          30.0,
			"payer_member_id": alice,
			"split_type":      "exact",
			"participants": []gin.H{
				{"member_id": alice, "amount": 10.0},
				{"member_id": bob, "amount": 10.0},
			},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("percentage split", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/expenses", group.ID), token, gin.H{
			"description":     "Hotel",
			"amount":          100.0,
			"payer_member_id": alice,
			"split_type":      "percentage",
			"participants": []gin.H{
				{"member_id": alice, "percentage": 70.0},
				{"member_id": bob, "percentage": 30.0},
			},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		expense := decode[models.Expense](t, rec)
		if len(expense.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(expense.Splits))
		}
	})
}

func TestFeedback(t *testing.T) {
	router := newTestRouter(t)

	t.Run("submit without an account", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/feedback", "", gin.H{
			"type":        "feature_request",
			"title":       "CSV export",
			"description": "Let me export a group's expenses as CSV.",
			"email":       "alice@example.com",
			"name":        "Alice",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		feedback := decode[models.Feedback](t, rec)
		if feedback.ID == "" {
			t.Error("expected feedback ID in response")
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/feedback", "", gin.H{
			"type":        "rant",
			"title":       "Hmph",
			"description": "No.",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/feedback", "", gin.H{
			"type":        "other",
			"description": "Forgot the title.",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("list requires auth", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/feedback", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		token, _ := registerUser(t, router, "admin@example.com", "Admin")
		rec := doJSON(t, router, http.MethodGet, "/api/feedback", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		resp := decode[struct {
			Feedback []*models.Feedback `json:"feedback"`
		}](t, rec)
		if len(resp.Feedback) != 1 {
			t.Errorf("got %d feedback items, want 1", len(resp.Feedback))
		}
	})
}

func TestGroupAccessControl(t *testing.T) {
	router := newTestRouter(t)
	aliceToken, _ := registerUser(t, router, "alice@example.com", "Alice")
	malloryToken, _ := registerUser(t, router, "mallory@example.com", "Mallory")
	group := createTripGroup(t, router, aliceToken)

	t.Run("non-member is forbidden", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/groups/"+group.ID, malloryToken, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}

		rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%s/balances", group.ID), malloryToken, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("balances status = %d, want 403", rec.Code)
		}
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/groups/does-not-exist", aliceToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("member list shows own groups only", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/groups", malloryToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list status = %d", rec.Code)
		}
		resp := decode[struct {
			Groups []*models.Group `json:"groups"`
		}](t, rec)
		if len(resp.Groups) != 0 {
			t.Errorf("got %d groups for non-member, want 0", len(resp.Groups))
		}
	})
}

func TestGroupUpdateAndMembers(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "alice@example.com", "Alice")
	group := createTripGroup(t, router, token)

	t.Run("rename and change currency", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/api/groups/"+group.ID, token, gin.H{
			"name":     "Euro Trip",
			"currency": "EUR",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		updated := decode[models.Group](t, rec)
		if updated.Name != "Euro Trip" || updated.Currency != "EUR" {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("invalid currency rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/api/groups/"+group.ID, token, gin.H{
			"currency": "COINS",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("duplicate member name is a validation error", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/members", group.ID), token, gin.H{
			"members": []gin.H{{"name": "Bob", "is_placeholder": true}},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("add placeholder member", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/groups/%s/members", group.ID), token, gin.H{
			"members": []gin.H{{"name": "Dave", "is_placeholder": true}},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		updated := decode[models.Group](t, rec)
		if len(updated.Members) != 4 {
			t.Errorf("got %d members, want 4", len(updated.Members))
		}
	})

	t.Run("delete group", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/groups/"+group.ID, token, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = doJSON(t, router, http.MethodGet, "/api/groups/"+group.ID, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", rec.Code)
		}
	})
}
