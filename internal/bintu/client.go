// Package bintu talks to the nanoStream Cloud services: stream
// provisioning, organisation lookup, room/invite token issuance and the
// link shortener. One-shot request/response calls, no retries.
package bintu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/config"
	"github.com/nanomeet/nanomeet-go/internal/domain"
)

type Client struct {
	api       string
	tokenAPI  string
	shortener string
	frontend  string
	webPage   string
	httpc     *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		api:       cfg.APIURL,
		tokenAPI:  cfg.TokenURL,
		shortener: cfg.LinkShortener,
		frontend:  cfg.FrontendURL,
		webPage:   cfg.WebPageURL,
		httpc:     http.DefaultClient,
	}
}

// do performs one JSON round trip. A non-200 status is surfaced as a
// remote error carrying the service's message when it provides one.
func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, domain.NewError(domain.KindRemote, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.KindRemote, "read response: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("module", "bintu").Str("url", url).Int("status", resp.StatusCode).Msg("request failed")
		var remote struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &remote) == nil && remote.Message != "" {
			return nil, domain.NewError(domain.KindRemote, remote.Message)
		}
		return nil, domain.NewError(domain.KindRemote, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	return data, nil
}

// ValidateAPIKey checks the key against the organisation endpoint and
// returns the organisation metadata as the service sent it.
func (c *Client) ValidateAPIKey(ctx context.Context, apikey string) (json.RawMessage, error) {
	if apikey == "" {
		return nil, domain.NewError(domain.KindInput, "please provide an api key")
	}
	data, err := c.do(ctx, http.MethodGet, c.api+"/organisation", map[string]string{
		"x-bintu-apikey": apikey,
	}, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
