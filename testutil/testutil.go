// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
)

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema.
// The store is closed when the test finishes.
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "votes.db")
	store, err := db.Open(context.Background(), db.DialectSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  "votes.db",
		DatabaseType: db.DialectSQLite,
		IPHashSalt:   "test-ip-salt",
		SeedTitle:    "Test Poll",
		SeedOptions:  3,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// CreateTestPoll inserts a poll and returns its ID
func CreateTestPoll(t *testing.T, store *db.Store, title string) int64 {
	t.Helper()

	var pollID int64
	err := store.DB().QueryRow(`
		INSERT INTO polls (title) VALUES ($1) RETURNING id
	`, title).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, store *db.Store, pollID int64, label string) int64 {
	t.Helper()

	var optionID int64
	err := store.DB().QueryRow(`
		INSERT INTO options (poll_id, label) VALUES ($1, $2) RETURNING id
	`, pollID, label).Scan(&optionID)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// NewVoter returns a fresh voter token
func NewVoter() string {
	return auth.GenerateVoterToken()
}

// CountVotes counts vote rows for a poll, optionally restricted to one voter
func CountVotes(t *testing.T, store *db.Store, pollID int64, voterToken string) int {
	t.Helper()

	query := `SELECT COUNT(*) FROM votes WHERE poll_id = $1`
	args := []interface{}{pollID}
	if voterToken != "" {
		query += ` AND voter_uuid = $2`
		args = append(args, voterToken)
	}

	var n int
	if err := store.DB().QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// CountVoters counts voter status rows for a poll
func CountVoters(t *testing.T, store *db.Store, pollID int64) int {
	t.Helper()

	var n int
	err := store.DB().QueryRow(`SELECT COUNT(*) FROM voters WHERE poll_id = $1`, pollID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count voters: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithVoterCookie attaches a voter token cookie to the request
func WithVoterCookie(req *http.Request, voterToken string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.VoterCookieName, Value: voterToken})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
