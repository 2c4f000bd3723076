// Package realtimekit is a thin REST client for the Cloudflare RealtimeKit
// API. All actual meeting and media work happens inside that service; this
// client only forwards requests and translates failures into typed errors.
package realtimekit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://rtk.realtime.cloudflare.com/v2"

	userAgent = "Custom-Webinar-Platform/1.0"
)

var (
	ErrTimeout     = errors.New("upstream request timed out")
	ErrNotFound    = errors.New("upstream meeting not found")
	ErrRateLimited = errors.New("upstream rate limit exceeded")
)

// APIError is a non-2xx upstream response outside the dedicated sentinel
// cases. 4xx statuses pass through to the caller with their message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.StatusCode, e.Message)
}

// IsClientError reports whether the upstream rejected the request itself.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

type (
	Client struct {
		// Base API endpoint. Default: DefaultBaseURL.
		baseURL string
		// Full Authorization header value for the upstream account.
		authHeader string
		client     *http.Client

		createTimeout time.Duration
		joinTimeout   time.Duration
		getTimeout    time.Duration
	}

	Options struct {
		// Overrides the API base URL for testing.
		BaseURL string
		// Static credential sent as the Authorization header.
		AuthHeader string
		// Overrides the per-call timeout budgets for testing.
		CreateTimeout time.Duration
		JoinTimeout   time.Duration
		GetTimeout    time.Duration
	}

	CreateMeetingRequest struct {
		Title           string `json:"title"`
		PreferredRegion string `json:"preferred_region"`
	}

	AddParticipantRequest struct {
		Name                string `json:"name"`
		PresetName          string `json:"preset_name"`
		CustomParticipantID string `json:"custom_participant_id"`
		Picture             string `json:"picture,omitempty"`
	}

	// Meeting is the typed view of the upstream meeting object. Only the
	// fields the gateway needs are decoded; the raw body is preserved
	// separately for passthrough.
	Meeting struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		PreferredRegion string `json:"preferred_region"`
		CreatedAt       string `json:"created_at"`
	}

	// Participant carries the session token at data.token used to
	// bootstrap the RealtimeKit SDK on the client.
	Participant struct {
		ID                  string `json:"id"`
		Name                string `json:"name"`
		CustomParticipantID string `json:"custom_participant_id"`
		PresetName          string `json:"preset_name"`
		Token               string `json:"token"`
	}

	// Result is one upstream response: the verbatim decoded body for
	// response shaping plus the parsed data object.
	Result struct {
		Body map[string]any
		Data json.RawMessage
	}
)

func NewClient(o Options) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		authHeader:    o.AuthHeader,
		client:        &http.Client{},
		createTimeout: 30 * time.Second,
		joinTimeout:   20 * time.Second,
		getTimeout:    10 * time.Second,
	}
	if o.BaseURL != "" {
		c.baseURL = o.BaseURL
	}
	if o.CreateTimeout > 0 {
		c.createTimeout = o.CreateTimeout
	}
	if o.JoinTimeout > 0 {
		c.joinTimeout = o.JoinTimeout
	}
	if o.GetTimeout > 0 {
		c.getTimeout = o.GetTimeout
	}
	return c
}

// CreateMeeting registers a new meeting with the upstream service.
func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*Result, Meeting, error) {
	res, err := c.do(ctx, http.MethodPost, "/meetings", req, c.createTimeout)
	if err != nil {
		return nil, Meeting{}, err
	}

	var m Meeting
	if err := json.Unmarshal(res.Data, &m); err != nil {
		return nil, Meeting{}, fmt.Errorf("decode meeting: %w", err)
	}
	return res, m, nil
}

// AddParticipant registers a participant and returns the session token
// minted by the upstream service.
func (c *Client) AddParticipant(ctx context.Context, meetingID string, req AddParticipantRequest) (*Result, Participant, error) {
	path := fmt.Sprintf("/meetings/%s/participants", meetingID)
	res, err := c.do(ctx, http.MethodPost, path, req, c.joinTimeout)
	if err != nil {
		return nil, Participant{}, err
	}

	var p Participant
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, Participant{}, fmt.Errorf("decode participant: %w", err)
	}
	return res, p, nil
}

// GetMeeting fetches the upstream meeting object.
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/meetings/"+meetingID, nil, c.getTimeout)
}

func (c *Client) do(ctx context.Context, method, path string, body any, timeout time.Duration) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("newRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, httpError(resp.StatusCode, raw)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	return &Result{Body: full, Data: envelope.Data}, nil
}

func httpError(status int, raw []byte) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
