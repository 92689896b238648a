// Package client talks to the RSVP API on behalf of an attendee-facing
// front end. It validates forms locally before posting them.
package client

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

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/form"
	"github.com/joshua-takyi/rsvp/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	apiPrefix      = "/api/v1"

	// FallbackMessage is used when a rejected request carries no message.
	FallbackMessage = "Error submitting RSVP"
)

// APIError is a response the server answered with a failure envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError means the server could not be reached or its reply could
// not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rsvp api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL. A nil httpClient
// gets a default with a ten second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest || (decodeErr == nil && !env.Success) {
		msg := strings.TrimSpace(env.Error)
		if decodeErr != nil || msg == "" {
			msg = FallbackMessage
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return &TransportError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

func (c *Client) ListEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Fields returns the catalog the server offers for event authoring.
func (c *Client) Fields(ctx context.Context) ([]catalog.Definition, error) {
	var defs []catalog.Definition
	if err := c.do(ctx, http.MethodGet, "/fields", nil, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadForm fetches the event and builds its empty form.
func (c *Client) LoadForm(ctx context.Context, eventID string) (*form.Form, error) {
	event, err := c.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return form.FromEvent(event), nil
}

// SubmitForm validates f and posts its answers once. A form that fails
// validation returns form.Errors and nothing is sent. There is no retry.
func (c *Client) SubmitForm(ctx context.Context, f *form.Form) (*models.Submission, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var sub models.Submission
	if err := c.do(ctx, http.MethodPost, "/submissions", f.Payload(), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
