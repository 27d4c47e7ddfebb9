// ABOUTME: MCP tool implementations for the pullups tracker.
// ABOUTME: Logs sets, manages the daily goal, and reads counter and stats views.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/pullups/internal/view"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log one set of pull-ups for today",
	}, s.handleLogSet)

	// set_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_goal",
		Description: "Set today's pull-up goal",
	}, s.handleSetGoal)

	// clear_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_goal",
		Description: "Remove today's pull-up goal",
	}, s.handleClearGoal)

	// reset_today
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_today",
		Description: "Zero today's reps and sets (guest mode only)",
	}, s.handleResetToday)

	// get_counter
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_counter",
		Description: "Get today's total, goal, and progress",
	}, s.handleGetCounter)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get reps, sets, and average reps per set for a day",
	}, s.handleGetStats)
}

// Tool input/output types

type logSetInput struct {
	Reps int64 `json:"reps" jsonschema:"Number of reps in the set, must be positive"`
}

type logSetOutput struct {
	Total   int64  `json:"total"`
	Message string `json:"message"`
}

type setGoalInput struct {
	Goal int64 `json:"goal" jsonschema:"Target reps for today, 0 or more"`
}

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type getStatsInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

// Tool handlers

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, logSetOutput, error) {
	total, err := s.tracker.LogSet(ctx, input.Reps)
	if err != nil {
		return nil, logSetOutput{}, err
	}
	return nil, logSetOutput{
		Total:   total,
		Message: fmt.Sprintf("Logged %d reps, %d today", input.Reps, total),
	}, nil
}

func (s *Server) handleSetGoal(ctx context.Context, req *mcp.CallToolRequest, input setGoalInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.SetGoal(ctx, input.Goal); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Goal set to %d", input.Goal)}, nil
}

func (s *Server) handleClearGoal(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.ClearGoal(ctx); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: "Goal cleared"}, nil
}

func (s *Server) handleResetToday(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.ResetToday(ctx); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: "Today's count reset"}, nil
}

func (s *Server) handleGetCounter(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, view.Model, error) {
	m := s.tracker.Counter(ctx)
	if err := s.viewError(m); err != nil {
		return nil, view.Model{}, err
	}
	return nil, m, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, view.Model, error) {
	m, err := s.tracker.Stats(ctx, input.Date)
	if err != nil {
		return nil, view.Model{}, err
	}
	if err := s.viewError(m); err != nil {
		return nil, view.Model{}, err
	}
	return nil, m, nil
}

// viewError turns a failed backend read into a tool error so callers
// never mistake the withheld numbers for real ones. The failed queries are
// marked for refetch, so calling the tool again retries them.
func (s *Server) viewError(m view.Model) error {
	if m.HasError {
		s.tracker.Retry(m.Retry)
	}
	if m.HasValues() {
		return nil
	}
	if m.IsLoading {
		return fmt.Errorf("data is still loading, try again")
	}
	return fmt.Errorf("could not load data from the server, call the tool again to retry")
}
