package mantis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP wrapper for the MantisHub REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new MantisHub HTTP client.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal mantis request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build mantis request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.apiToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call mantis API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mantis API error %d: %s", resp.StatusCode, string(raw))
	}

	return io.ReadAll(resp.Body)
}

// ListProjects lists all projects with their ids and names.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	raw, err := c.request(ctx, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Projects []Project `json:"projects"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode mantis projects response: %w", err)
	}
	return result.Projects, nil
}

// ListCategories lists the categories of a project. Older Mantis deployments
// do not expose the endpoint; those fall back to a single General category.
func (c *Client) ListCategories(ctx context.Context, projectID int) ([]Category, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/categories", projectID), nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Category{{ID: 1, Name: "General"}}, nil
		}
		return nil, err
	}

	var result struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode mantis categories response: %w", err)
	}
	return result.Categories, nil
}

// CreateIssue creates a new issue and returns the canonical created issue.
func (c *Client) CreateIssue(ctx context.Context, req CreateIssueRequest) (*Issue, error) {
	if req.Category.Name == "" && req.Category.ID == 0 {
		req.Category.Name = "General"
	}

	raw, err := c.request(ctx, http.MethodPost, "/issues", req)
	if err != nil {
		return nil, err
	}

	issue, err := unmarshalIssue(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mantis create response: %w", err)
	}
	return issue, nil
}

// GetIssue fetches a single issue by its numeric id.
func (c *Client) GetIssue(ctx context.Context, id int) (*Issue, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/issues/%d", id), nil)
	if err != nil {
		return nil, err
	}

	issue, err := unmarshalIssue(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mantis get response: %w", err)
	}
	return issue, nil
}

// UpdateIssue applies a partial update to an issue.
func (c *Client) UpdateIssue(ctx context.Context, id int, patch IssuePatch) error {
	_, err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/issues/%d", id), patch)
	return err
}

// DeleteIssue deletes an issue by id.
func (c *Client) DeleteIssue(ctx context.Context, id int) error {
	_, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/issues/%d", id), nil)
	return err
}

// AddNote attaches a free-text note to an existing issue.
func (c *Client) AddNote(ctx context.Context, id int, text string) error {
	return c.UpdateIssue(ctx, id, IssuePatch{Note: text})
}
