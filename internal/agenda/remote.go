package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const remoteRequestTimeout = 30 * time.Second

// RemoteBackend talks JSON over HTTP to the agenda API server.
type RemoteBackend struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRemoteBackend builds a backend for the API rooted at baseURL.
func NewRemoteBackend(baseURL string, logger *zap.Logger) *RemoteBackend {
	if logger == nil {
		logger = noOpLogger
	}
	return &RemoteBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: remoteRequestTimeout},
		logger:     logger,
	}
}

func (b *RemoteBackend) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("agenda: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("agenda: create request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := b.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("agenda: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("agenda: read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("agenda: %s %s: %s", method, path, errorMessage(response.StatusCode, raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("agenda: decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the JSON error field of a failure body, falling back
// to the raw text so a failed mutation is never silently dropped.
func errorMessage(status int, raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fmt.Sprintf("status %d", status)
	}
	return text
}

func (b *RemoteBackend) ListEvents(ctx context.Context) ([]Event, error) {
	events := make([]Event, 0)
	if err := b.doRequest(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (b *RemoteBackend) CreateEvent(ctx context.Context, event Event) (Event, error) {
	var created Event
	if err := b.doRequest(ctx, http.MethodPost, "/api/events", event, &created); err != nil {
		return Event{}, err
	}
	return created, nil
}

func (b *RemoteBackend) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	var updated Event
	if err := b.doRequest(ctx, http.MethodPut, "/api/events", event, &updated); err != nil {
		return Event{}, err
	}
	return updated, nil
}

func (b *RemoteBackend) DeleteEvent(ctx context.Context, id string) error {
	return b.doRequest(ctx, http.MethodDelete, "/api/events?id="+url.QueryEscape(id), nil, nil)
}

func (b *RemoteBackend) ReorderEvents(ctx context.Context, updates []OrderUpdate) error {
	payload := struct {
		Updates []OrderUpdate `json:"updates"`
	}{Updates: updates}
	return b.doRequest(ctx, http.MethodPost, "/api/reorder", payload, nil)
}

func (b *RemoteBackend) ListLeaders(ctx context.Context) ([]Leader, error) {
	leaders := make([]Leader, 0)
	if err := b.doRequest(ctx, http.MethodGet, "/api/leaders", nil, &leaders); err != nil {
		return nil, err
	}
	return leaders, nil
}

func (b *RemoteBackend) CreateLeader(ctx context.Context, leader Leader) (Leader, error) {
	var created Leader
	if err := b.doRequest(ctx, http.MethodPost, "/api/leaders", leader, &created); err != nil {
		return Leader{}, err
	}
	return created, nil
}

func (b *RemoteBackend) UpdateLeader(ctx context.Context, leader Leader) (Leader, error) {
	var updated Leader
	if err := b.doRequest(ctx, http.MethodPut, "/api/leaders", leader, &updated); err != nil {
		return Leader{}, err
	}
	return updated, nil
}

func (b *RemoteBackend) DeleteLeader(ctx context.Context, id string) error {
	return b.doRequest(ctx, http.MethodDelete, "/api/leaders?id="+url.QueryEscape(id), nil, nil)
}
