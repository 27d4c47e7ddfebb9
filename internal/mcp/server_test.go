// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers in guest mode.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/pullups/internal/backend"
	"github.com/harperreed/pullups/internal/db"
	"github.com/harperreed/pullups/internal/query"
	"github.com/harperreed/pullups/internal/storage"
	"github.com/harperreed/pullups/internal/tally"
	"github.com/harperreed/pullups/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

// setupTestServer creates a guest-mode server over an in-memory store.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	now := func() time.Time { return testNow }
	tr := tracker.New(tracker.Options{
		Store: tally.New(storage.NewMemory(), now, nil),
		Now:   now,
	})

	server, err := NewServer(tr)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.tracker == nil {
		t.Error("Expected non-nil tracker")
	}
}

func TestHandleLogSet(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		reps      int64
		wantTotal int64
		wantErr   error
	}{
		{name: "first set", reps: 8, wantTotal: 8},
		{name: "second set", reps: 5, wantTotal: 13},
		{name: "zero reps", reps: 0, wantErr: tracker.ErrZeroReps},
		{name: "negative reps", reps: -3, wantErr: tally.ErrInvalidReps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: tt.reps})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", output.Total, tt.wantTotal)
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
		})
	}
}

func TestHandleGoal(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleSetGoal(ctx, &mcp.CallToolRequest{}, setGoalInput{Goal: 20}); err != nil {
		t.Fatalf("set_goal failed: %v", err)
	}
	if _, _, err := server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 10}); err != nil {
		t.Fatalf("log_set failed: %v", err)
	}

	_, m, err := server.handleGetCounter(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("get_counter failed: %v", err)
	}
	if m.Goal == nil || *m.Goal != 20 {
		t.Errorf("Goal = %v, want 20", m.Goal)
	}
	if m.ProgressPercentage == nil || *m.ProgressPercentage != 50 {
		t.Errorf("ProgressPercentage = %v, want 50", m.ProgressPercentage)
	}

	if _, _, err := server.handleClearGoal(ctx, &mcp.CallToolRequest{}, emptyInput{}); err != nil {
		t.Fatalf("clear_goal failed: %v", err)
	}
	_, m, _ = server.handleGetCounter(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if m.Goal != nil {
		t.Errorf("Goal = %v, want nil after clear", *m.Goal)
	}

	_, _, err = server.handleSetGoal(ctx, &mcp.CallToolRequest{}, setGoalInput{Goal: -1})
	if !errors.Is(err, tracker.ErrInvalidGoal) {
		t.Errorf("negative goal error = %v, want %v", err, tracker.ErrInvalidGoal)
	}
}

func TestHandleResetToday(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, _, _ = server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 7})
	if _, _, err := server.handleResetToday(ctx, &mcp.CallToolRequest{}, emptyInput{}); err != nil {
		t.Fatalf("reset_today failed: %v", err)
	}

	_, m, err := server.handleGetCounter(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("get_counter failed: %v", err)
	}
	if m.Reps != 0 || m.Sets != 0 {
		t.Errorf("after reset got %d reps / %d sets, want 0 / 0", m.Reps, m.Sets)
	}
	if !m.NoData {
		t.Error("Expected NoData after reset")
	}
}

func TestHandleGetStats(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, _, _ = server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 6})
	_, _, _ = server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 4})

	tests := []struct {
		name     string
		date     string
		wantReps int64
		wantErr  bool
	}{
		{name: "today by default", date: "", wantReps: 10},
		{name: "today explicit", date: "2025-06-01", wantReps: 10},
		{name: "past day", date: "2025-05-20", wantReps: 0},
		{name: "future day", date: "2025-06-02", wantErr: true},
		{name: "bad date", date: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m, err := server.handleGetStats(ctx, &mcp.CallToolRequest{}, getStatsInput{Date: tt.date})
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m.Reps != tt.wantReps {
				t.Errorf("Reps = %d, want %d", m.Reps, tt.wantReps)
			}
		})
	}
}

func TestTodayResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	_, _, _ = server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 9})

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}
	if result.Contents[0].URI != "pullups://today" {
		t.Errorf("URI = %s, want pullups://today", result.Contents[0].URI)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if data["reps"] != float64(9) {
		t.Errorf("reps = %v, want 9", data["reps"])
	}
	if data["date"] != "2025-06-01" {
		t.Errorf("date = %v, want 2025-06-01", data["date"])
	}
}

func TestHistoryResourceGuest(t *testing.T) {
	server := setupTestServer(t)

	result, err := server.handleHistoryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleHistoryResource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"mode": "guest"`) {
		t.Errorf("Expected guest mode, got %s", result.Contents[0].Text)
	}
}

func TestHistoryResourceAuthenticated(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "backend.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	u, err := db.CreateUser(ctx, conn, "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// East of UTC the local date's midnight falls on the previous UTC day.
	tokyo := time.FixedZone("JST", 9*60*60)
	now := func() time.Time { return testNow.In(tokyo) }
	tr := tracker.New(tracker.Options{
		Store:   tally.New(storage.NewMemory(), now, nil),
		Backend: backend.NewLocal(conn, u.ID, now),
		Now:     now,
	})
	server, _ := NewServer(tr)

	_, _, _ = server.handleLogSet(ctx, &mcp.CallToolRequest{}, logSetInput{Reps: 12})

	result, err := server.handleHistoryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleHistoryResource failed: %v", err)
	}

	var data struct {
		Mode string `json:"mode"`
		Days []struct {
			DayStamp int64 `json:"day_stamp"`
			Reps     int64 `json:"reps"`
		} `json:"days"`
		TodayDayStamp int64 `json:"today_day_stamp"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if data.Mode != "authenticated" {
		t.Errorf("mode = %q, want authenticated", data.Mode)
	}
	if len(data.Days) != 1 || data.Days[0].Reps != 12 {
		t.Errorf("days = %+v, want one day with 12 reps", data.Days)
	} else if data.TodayDayStamp != data.Days[0].DayStamp {
		t.Errorf("today_day_stamp = %d, want the stamp of the day just logged (%d)",
			data.TodayDayStamp, data.Days[0].DayStamp)
	}

	_, _, err = server.handleResetToday(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if !errors.Is(err, tracker.ErrResetUnavailable) {
		t.Errorf("reset_today error = %v, want %v", err, tracker.ErrResetUnavailable)
	}
}

// flakyBackend fails today's total until failTotal is cleared.
type flakyBackend struct {
	backend.Backend
	failTotal bool
}

func (f *flakyBackend) TodayTotal(ctx context.Context) (*int64, error) {
	if f.failTotal {
		return nil, errors.New("backend down")
	}
	return f.Backend.TodayTotal(ctx)
}

func TestGetCounterErrorQueuesRetry(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "backend.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	u, err := db.CreateUser(ctx, conn, "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	now := func() time.Time { return testNow }
	fb := &flakyBackend{Backend: backend.NewLocal(conn, u.ID, now), failTotal: true}
	cache := query.NewCache(0, 0, nil)
	tr := tracker.New(tracker.Options{
		Store:   tally.New(storage.NewMemory(), now, nil),
		Backend: fb,
		Cache:   cache,
		Now:     now,
	})
	server, _ := NewServer(tr)

	if _, err := tr.LogSet(ctx, 7); err != nil {
		t.Fatalf("LogSet failed: %v", err)
	}

	_, _, err = server.handleGetCounter(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err == nil || !strings.Contains(err.Error(), "call the tool again") {
		t.Fatalf("get_counter error = %v, want retry hint", err)
	}

	// The goal query succeeded but is re-issued along with the failed total.
	if !query.Peek[*int64](cache, query.TodayGoalKey()).Stale {
		t.Error("Expected today's goal to be marked for refetch")
	}

	fb.failTotal = false
	_, m, err := server.handleGetCounter(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("get_counter after recovery failed: %v", err)
	}
	if m.Reps != 7 {
		t.Errorf("Reps = %d, want 7", m.Reps)
	}
}
