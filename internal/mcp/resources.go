// ABOUTME: MCP resource implementations for the pullups tracker.
// ABOUTME: Provides pullups://today and pullups://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/pullups/internal/models"
	"github.com/harperreed/pullups/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// pullups://today - Counter view for today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "pullups://today",
		Name:        "Today's Pull-ups",
		Description: "Today's reps, sets, goal, and progress",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// pullups://history - Daily totals, authenticated users only
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "pullups://history",
		Name:        "Pull-up History",
		Description: "Daily rep totals recorded on the server",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	m, err := s.tracker.Stats(ctx, "")
	if err != nil {
		return nil, err
	}
	if err := s.viewError(m); err != nil {
		return nil, err
	}
	return jsonResource("pullups://today", m)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	h, err := s.tracker.History(ctx)
	if errors.Is(err, tracker.ErrGuest) {
		return jsonResource("pullups://history", map[string]any{
			"mode":   "guest",
			"days":   []any{},
			"today":  s.tracker.Today(),
			"notice": "history is kept only for signed-in users",
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	days := h.DailyTrends
	if days == nil {
		days = []models.TrendDay{}
	}

	return jsonResource("pullups://history", map[string]any{
		"mode":            "authenticated",
		"days":            days,
		"today_day_stamp": s.tracker.TodayStamp(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
