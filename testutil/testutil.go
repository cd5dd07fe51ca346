// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/cliparse"
	"github.com/danielhkuo/approval-bot/db"
	"github.com/danielhkuo/approval-bot/identity"
	"github.com/danielhkuo/approval-bot/roster"
	"github.com/danielhkuo/approval-bot/store"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir, so no external database
// is needed to run the suite.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "approvals.sqlite3")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DriverSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore is SetupTestDB wrapped in the sqlite Store.
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewSQLiteStore(SetupTestDB(t))
}

// SetupTestRoster writes a roster config with the given lists and policy
// and loads it. The file lives under t.TempDir.
func SetupTestRoster(t *testing.T, moderators, admins []string, policy roster.Policy) *roster.Roster {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	ff := struct {
		Moderators            []string `yaml:"moderators"`
		Admins                []string `yaml:"admins"`
		ShowVotes             bool     `yaml:"show_votes"`
		AdminsCanVote         bool     `yaml:"admins_can_vote"`
		MajorityIncludeAdmins bool     `yaml:"majority_include_admins"`
	}{moderators, admins, policy.ShowVotes, policy.AdminsCanVote, policy.MajorityIncludeAdmins}

	data, err := yaml.Marshal(ff)
	if err != nil {
		t.Fatalf("Failed to encode roster config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write roster config: %v", err)
	}

	rst, err := roster.Load(path)
	if err != nil {
		t.Fatalf("Failed to load roster: %v", err)
	}
	return rst
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.DriverSQLite,
		DatabaseURL:   "approvals.sqlite3",
		ConfigFile:    "config.yml",
		ExpireMinutes: 60,
	}
}

// CreateTestApproval inserts an approval ending an hour from now and
// returns it with its assigned ID.
func CreateTestApproval(t *testing.T, st store.Store, requester identity.Identity, totalEligible int) *approval.Approval {
	t.Helper()

	a := approval.New("ban", "https://discord.com/channels/1/2/3", "spamming",
		requester, totalEligible, time.Now().UTC().Add(time.Hour))
	if err := st.Insert(context.Background(), a); err != nil {
		t.Fatalf("Failed to create test approval: %v", err)
	}
	return a
}

// CreateExpiredApproval inserts an approval whose voting window has
// already closed.
func CreateExpiredApproval(t *testing.T, st store.Store, requester identity.Identity, totalEligible int) *approval.Approval {
	t.Helper()

	a := approval.New("ban", "https://discord.com/channels/1/2/4", "spamming",
		requester, totalEligible, time.Now().UTC().Add(-time.Minute))
	if err := st.Insert(context.Background(), a); err != nil {
		t.Fatalf("Failed to create expired approval: %v", err)
	}
	return a
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
