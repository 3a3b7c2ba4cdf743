package proposals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kbrewster21/league-office-go/internal/trade"
)

// Client is the remote trade service consumed by the REST-backed store. The
// football and hockey services expose the same verbs under league-specific
// DTO shapes; shape differences are the identity layer's problem, not this
// client's.
type Client interface {
	ListProposals(ctx context.Context, teamID int) ([]trade.Proposal, error)
	CreateProposal(ctx context.Context, p trade.Proposal) (trade.Proposal, error)
	AcceptProposal(ctx context.Context, id string) error
	RejectProposal(ctx context.Context, id string) error
	CancelProposal(ctx context.Context, id string) error
	ConfirmAcceptedTrade(ctx context.Context, id string) error
	VetoAcceptedTrade(ctx context.Context, id string) error
}

// HTTPClient talks JSON to a league's trade service.
type HTTPClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("proposals: encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("proposals: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	// The trade service dedupes retried mutations on this key.
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("proposals: trade service %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("proposals: decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) ListProposals(ctx context.Context, teamID int) ([]trade.Proposal, error) {
	var out []trade.Proposal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trades/team/%d", teamID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProposal(ctx context.Context, p trade.Proposal) (trade.Proposal, error) {
	var out trade.Proposal
	if err := c.do(ctx, http.MethodPost, "/trades", p, &out); err != nil {
		return trade.Proposal{}, err
	}
	return out, nil
}

func (c *HTTPClient) AcceptProposal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/trades/"+id+"/accept", nil, nil)
}

func (c *HTTPClient) RejectProposal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/trades/"+id+"/reject", nil, nil)
}

func (c *HTTPClient) CancelProposal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/trades/"+id+"/cancel", nil, nil)
}

func (c *HTTPClient) ConfirmAcceptedTrade(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/trades/"+id+"/confirm", nil, nil)
}

func (c *HTTPClient) VetoAcceptedTrade(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/trades/"+id+"/veto", nil, nil)
}
