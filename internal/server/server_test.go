package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sobanhassan/hisaabkitaab/internal/auth"
	"github.com/sobanhassan/hisaabkitaab/internal/ledger"
	"github.com/sobanhassan/hisaabkitaab/internal/models"
	"github.com/sobanhassan/hisaabkitaab/internal/storage/sqlite"
)

// setupTestServer spins up the full stack against a temp database and
// returns a registered user's token.
func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	srv := New(ledger.NewService(store), auth.NewPasswordAuthenticator(store), jwtManager)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	token := register(t, ts, "sam@example.com")
	return ts, token
}

func register(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	var session struct {
		Token string `json:"token"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":       email,
		"displayName": "Sam",
		"password":    "correct horse",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("register returned status %d", status)
	}
	if session.Token == "" {
		t.Fatal("register returned empty token")
	}
	return session.Token
}

// doJSON performs a request and decodes the response into out (if non-nil).
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	ts, _ := setupTestServer(t)

	for _, path := range []string{"/api/friends", "/api/me"} {
		if status := doJSON(t, ts, http.MethodGet, path, "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("GET %s without token: got status %d, want 401", path, status)
		}
	}

	if status := doJSON(t, ts, http.MethodGet, "/api/friends", "not-a-token", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("GET /api/friends with bad token: got status %d, want 401", status)
	}
}

func TestAPI_LedgerFlow(t *testing.T) {
	ts, token := setupTestServer(t)

	var sam models.Friend
	if status := doJSON(t, ts, http.MethodPost, "/api/friends", token, map[string]string{"name": "Sam"}, &sam); status != http.StatusCreated {
		t.Fatalf("add friend: got status %d", status)
	}
	if sam.ID == "" || sam.Name != "Sam" || !sam.Balance.IsZero() {
		t.Fatalf("unexpected friend: %+v", sam)
	}

	post := func(amount, desc, direction string, wantStatus int) {
		t.Helper()
		status := doJSON(t, ts, http.MethodPost, "/api/friends/"+sam.ID+"/transactions", token, map[string]any{
			"amount":      amount,
			"description": desc,
			"direction":   direction,
		}, nil)
		if status != wantStatus {
			t.Fatalf("post %s %s: got status %d, want %d", amount, desc, status, wantStatus)
		}
	}

	post("20.00", "lunch", "paid_for_friend", http.StatusCreated)
	post("5.00", "coffee", "paid_by_friend", http.StatusCreated)
	post("-5", "bad", "paid_for_friend", http.StatusBadRequest)
	post("5", "", "paid_by_friend", http.StatusBadRequest)

	var got models.Friend
	if status := doJSON(t, ts, http.MethodGet, "/api/friends/"+sam.ID, token, nil, &got); status != http.StatusOK {
		t.Fatalf("get friend: got status %d", status)
	}
	if want := decimal.RequireFromString("-15.00"); !got.Balance.Equal(want) {
		t.Errorf("balance: got %s, want %s", got.Balance, want)
	}

	var txnList struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/friends/"+sam.ID+"/transactions", token, nil, &txnList); status != http.StatusOK {
		t.Fatalf("list transactions: got status %d", status)
	}
	if len(txnList.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txnList.Transactions))
	}
	if txnList.Transactions[0].Description != "coffee" {
		t.Errorf("expected newest first, got %q", txnList.Transactions[0].Description)
	}

	var rec ledger.ReconcileResult
	if status := doJSON(t, ts, http.MethodPost, "/api/friends/"+sam.ID+"/reconcile", token, nil, &rec); status != http.StatusOK {
		t.Fatalf("reconcile: got status %d", status)
	}
	if rec.Drifted {
		t.Error("unexpected drift on a clean ledger")
	}

	if status := doJSON(t, ts, http.MethodDelete, "/api/friends/"+sam.ID, token, nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete friend: got status %d", status)
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/friends/"+sam.ID, token, nil, nil); status != http.StatusNotFound {
		t.Errorf("get deleted friend: got status %d, want 404", status)
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/friends/"+sam.ID+"/transactions", token, nil, nil); status != http.StatusNotFound {
		t.Errorf("list deleted friend's transactions: got status %d, want 404", status)
	}
}

func TestAPI_OwnersAreIsolated(t *testing.T) {
	ts, samToken := setupTestServer(t)
	anaToken := register(t, ts, "ana@example.com")

	var friend models.Friend
	if status := doJSON(t, ts, http.MethodPost, "/api/friends", samToken, map[string]string{"name": "Riya"}, &friend); status != http.StatusCreated {
		t.Fatalf("add friend: got status %d", status)
	}

	// Ana cannot see or touch Sam's friend.
	if status := doJSON(t, ts, http.MethodGet, "/api/friends/"+friend.ID, anaToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("cross-owner get: got status %d, want 404", status)
	}
	if status := doJSON(t, ts, http.MethodDelete, "/api/friends/"+friend.ID, anaToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("cross-owner delete: got status %d, want 404", status)
	}

	var list struct {
		Friends []models.Friend `json:"friends"`
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/friends", anaToken, nil, &list); status != http.StatusOK {
		t.Fatalf("list friends: got status %d", status)
	}
	if len(list.Friends) != 0 {
		t.Errorf("expected empty ledger for Ana, got %d friends", len(list.Friends))
	}
}

func TestAPI_Login(t *testing.T) {
	ts, _ := setupTestServer(t)

	var session sessionResponse
	status := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "sam@example.com",
		Password: "correct horse",
	}, &session)
	if status != http.StatusOK {
		t.Fatalf("login: got status %d", status)
	}
	if session.Token == "" {
		t.Error("login returned empty token")
	}

	status = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "sam@example.com",
		Password: "wrong password",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad login: got status %d, want 401", status)
	}

	status = doJSON(t, ts, http.MethodPost, "/api/auth/register", "", registerRequest{
		Email:       "sam@example.com",
		DisplayName: "Sam again",
		Password:    "correct horse",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("duplicate register: got status %d, want 409", status)
	}
}

func TestAPI_Healthz(t *testing.T) {
	ts, _ := setupTestServer(t)
	resp, err := http.Get(fmt.Sprintf("%s/healthz", ts.URL))
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz: got status %d", resp.StatusCode)
	}
}
