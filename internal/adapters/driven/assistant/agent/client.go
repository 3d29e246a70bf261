// Package agent provides the Assistant adapter for the remote
// chat/indexing service.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Assistant = (*Client)(nil)

// Default configuration values.
const (
	DefaultAgentID = "reader"
	DefaultTimeout = 120 * time.Second

	// Indexing submissions are throttled so a bulk import cannot
	// hammer the remote service.
	indexRequestsPerSecond = 2.0
	indexBurst             = 4
)

// Config holds configuration for the agent client.
type Config struct {
	// BaseURL is the agent API base URL. Required.
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// AgentID names the agent questions are routed to
	// (default: "reader").
	AgentID string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Client talks to the remote agent over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	agentID string
	limiter *rate.Limiter
}

// NewClient creates a new agent client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("agent base URL required: %w", domain.ErrAssistantUnavailable)
	}
	if cfg.AgentID == "" {
		cfg.AgentID = DefaultAgentID
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		agentID: cfg.AgentID,
		limiter: rate.NewLimiter(rate.Limit(indexRequestsPerSecond), indexBurst),
	}, nil
}

// indexRequest is the document submission format.
type indexRequest struct {
	BookID  string `json:"book_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// askRequest is the question format.
type askRequest struct {
	AgentID  string `json:"agent_id"`
	Question string `json:"question"`
}

// askResponse is the agent's reply format.
type askResponse struct {
	Answer      string   `json:"answer"`
	Sources     []source `json:"sources,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type source struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet,omitempty"`
}

// SubmitForIndexing sends a book's content to the remote service.
// Callers treat this as fire-and-forget; they log and swallow the error.
func (c *Client) SubmitForIndexing(ctx context.Context, book *domain.Book) error {
	if book == nil {
		return domain.ErrInvalidInput
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body := indexRequest{
		BookID:  book.ID,
		Title:   book.Title,
		Content: book.Content,
	}

	var ignored json.RawMessage
	return c.post(ctx, "/api/documents", body, &ignored)
}

// Ask poses a question to the configured agent.
func (c *Client) Ask(ctx context.Context, agentID, question string) (*driven.AssistantReply, error) {
	if agentID == "" {
		agentID = c.agentID
	}

	var resp askResponse
	if err := c.post(ctx, "/api/ask", askRequest{AgentID: agentID, Question: question}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	reply := &driven.AssistantReply{
		Answer:      resp.Answer,
		Suggestions: resp.Suggestions,
	}
	for _, s := range resp.Sources {
		reply.Citations = append(reply.Citations, domain.Citation{
			Source:  s.Source,
			Snippet: s.Snippet,
		})
	}
	return reply, nil
}

// Close releases resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// post sends a JSON request and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("agent returned %d: %s", resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
