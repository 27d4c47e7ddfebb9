// ABOUTME: HTTP client for the pullups backend API.
// ABOUTME: Sends the bearer token and maps status codes to sentinel errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/pullups/internal/models"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 10 * time.Second

// Client talks to a backend over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a Client for baseURL. A nil httpClient gets a default
// with DefaultTimeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// Register creates an account on the backend and returns its credentials.
func Register(ctx context.Context, baseURL, name string, httpClient *http.Client) (*RegisterResponse, error) {
	c := NewClient(baseURL, "", httpClient)
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", RegisterRequest{Name: name}, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &resp, nil
}

func (c *Client) TodayTotal(ctx context.Context) (*int64, error) {
	var resp TotalResponse
	if err := c.do(ctx, http.MethodGet, "/api/today/total", nil, &resp); err != nil {
		return nil, fmt.Errorf("get today total: %w", err)
	}
	return resp.Total, nil
}

func (c *Client) TodayStats(ctx context.Context) (*models.DayStats, error) {
	var resp StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/today/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("get today stats: %w", err)
	}
	return resp.Stats, nil
}

func (c *Client) DayStats(ctx context.Context, dayStamp int64) (*models.DayStats, error) {
	var resp StatsResponse
	path := "/api/days/" + strconv.FormatInt(dayStamp, 10) + "/stats"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get day stats: %w", err)
	}
	return resp.Stats, nil
}

func (c *Client) DayTotal(ctx context.Context, dayStamp int64) (*int64, error) {
	var resp TotalResponse
	path := "/api/days/" + strconv.FormatInt(dayStamp, 10) + "/total"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get day total: %w", err)
	}
	return resp.Total, nil
}

func (c *Client) TodayGoal(ctx context.Context) (*int64, error) {
	var resp GoalResponse
	if err := c.do(ctx, http.MethodGet, "/api/today/goal", nil, &resp); err != nil {
		return nil, fmt.Errorf("get today goal: %w", err)
	}
	return resp.Goal, nil
}

func (c *Client) SetTodayGoal(ctx context.Context, goal int64) error {
	if err := c.do(ctx, http.MethodPut, "/api/today/goal", GoalRequest{Goal: goal}, nil); err != nil {
		return fmt.Errorf("set today goal: %w", err)
	}
	return nil
}

func (c *Client) IncrementTodayTotal(ctx context.Context, reps int64) (int64, error) {
	var resp IncrementResponse
	if err := c.do(ctx, http.MethodPost, "/api/today/increment", IncrementRequest{Reps: reps}, &resp); err != nil {
		return 0, fmt.Errorf("increment today total: %w", err)
	}
	return resp.Total, nil
}

func (c *Client) HasEntriesToday(ctx context.Context) (bool, error) {
	var resp HasEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/today/has-entries", nil, &resp); err != nil {
		return false, fmt.Errorf("has entries today: %w", err)
	}
	return resp.HasEntries, nil
}

func (c *Client) UserStats(ctx context.Context) (models.UserStats, error) {
	var resp models.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &resp); err != nil {
		return models.UserStats{}, fmt.Errorf("get user stats: %w", err)
	}
	return resp, nil
}

func (c *Client) CallerProfile(ctx context.Context) (*models.Profile, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return resp.Profile, nil
}

func (c *Client) SaveCallerProfile(ctx context.Context, p models.Profile) error {
	if err := c.do(ctx, http.MethodPut, "/api/profile", p, nil); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// do sends one request. in is encoded as the JSON body when non-nil, and
// out is decoded from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var e ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)
	msg := e.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, msg)
	}
}
