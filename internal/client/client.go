// Package client is the Go consumer of the webinar gateway API. It is the
// programmatic counterpart of the browser front-end: it creates and joins
// meetings and hands back the session token that bootstraps the
// RealtimeKit SDK.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx gateway response, carrying the machine-readable
// code the gateway attaches to every error.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway responded %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type (
	Client struct {
		baseURL string
		client  *http.Client
	}

	Options struct {
		// BaseURL of the gateway, e.g. "https://localhost:3001".
		BaseURL string
		// InsecureSkipVerify accepts self-signed development certificates.
		InsecureSkipVerify bool
		Timeout            time.Duration
	}

	Meeting struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	CreateMeetingResponse struct {
		Meeting Meeting
		Body    map[string]any
	}

	JoinRequest struct {
		Name                string `json:"name"`
		PresetName          string `json:"preset_name"`
		CustomParticipantID string `json:"custom_participant_id,omitempty"`
		Picture             string `json:"picture,omitempty"`
	}

	JoinResponse struct {
		// Token is the SDK session token minted upstream (data.token).
		Token string
		Body  map[string]any
	}

	MeetingInfo struct {
		Cached  bool           `json:"cached"`
		Meeting map[string]any `json:"meeting"`
	}

	HealthStatus struct {
		Status         string  `json:"status"`
		Version        string  `json:"version"`
		Uptime         float64 `json:"uptime"`
		CachedMeetings int     `json:"cached_meetings"`
	}
)

func New(o Options) *Client {
	timeout := o.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if o.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL: o.BaseURL,
		client:  &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (c *Client) CreateMeeting(ctx context.Context, title, preferredRegion string) (*CreateMeetingResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/create-meeting", map[string]any{
		"title":            title,
		"preferred_region": preferredRegion,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Data Meeting `json:"data"`
	}
	if err := remarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode meeting: %w", err)
	}
	if parsed.Data.ID == "" {
		return nil, fmt.Errorf("gateway response carries no meeting id")
	}
	return &CreateMeetingResponse{Meeting: parsed.Data, Body: body}, nil
}

func (c *Client) JoinMeeting(ctx context.Context, meetingID string, req JoinRequest) (*JoinResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/meetings/"+meetingID+"/participants", req)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := remarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode participant: %w", err)
	}
	if parsed.Data.Token == "" {
		return nil, fmt.Errorf("gateway response carries no session token")
	}
	return &JoinResponse{Token: parsed.Data.Token, Body: body}, nil
}

func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*MeetingInfo, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/meetings/"+meetingID, nil)
	if err != nil {
		return nil, err
	}

	var info MeetingInfo
	if err := remarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode meeting info: %w", err)
	}
	return &info, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := remarshal(body, &status); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &status, nil
}

// TrackEvent reports a client analytics event. Failures are returned but
// safe to ignore; the gateway treats analytics as fire-and-forget.
func (c *Client) TrackEvent(ctx context.Context, event string, data map[string]any) error {
	_, err := c.do(ctx, http.MethodPost, "/api/analytics", map[string]any{
		"event": event,
		"data":  data,
	})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (map[string]any, error) {
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

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return decoded, nil
}

func remarshal(body map[string]any, dst any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
