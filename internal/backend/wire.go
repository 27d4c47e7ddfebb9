// ABOUTME: JSON request and response bodies of the backend HTTP API.
// ABOUTME: Shared by the Client and the server package.
package backend

import "github.com/harperreed/pullups/internal/models"

type RegisterRequest struct {
	Name string `json:"name"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type TotalResponse struct {
	Total *int64 `json:"total"`
}

type StatsResponse struct {
	Stats *models.DayStats `json:"stats"`
}

type GoalRequest struct {
	Goal int64 `json:"goal"`
}

type GoalResponse struct {
	Goal *int64 `json:"goal"`
}

type IncrementRequest struct {
	Reps int64 `json:"reps"`
}

type IncrementResponse struct {
	Total int64 `json:"total"`
}

type HasEntriesResponse struct {
	HasEntries bool `json:"has_entries"`
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
