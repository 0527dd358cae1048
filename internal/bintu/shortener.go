package bintu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/nanomeet/nanomeet-go/internal/domain"
)

type shortenResponse struct {
	Objects []struct {
		ShortLink string `json:"short_link"`
	} `json:"objects"`
}

// ShortenURL turns a meeting URL into a short link. Without an alias a
// random one is generated.
func (c *Client) ShortenURL(ctx context.Context, rawURL, alias string) (string, error) {
	if rawURL == "" {
		return "", domain.NewError(domain.KindInput, "please provide a url to shorten")
	}
	if alias == "" {
		alias = uuid.NewString()[:8]
	}

	query := url.Values{}
	query.Set("url", rawURL)
	query.Set("alias", alias)

	data, err := c.do(ctx, http.MethodGet, c.shortener+"?"+query.Encode(), nil, nil)
	if err != nil {
		return "", err
	}

	var resp shortenResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", domain.NewError(domain.KindRemote, "unexpected shortener response: "+err.Error())
	}
	if len(resp.Objects) == 0 {
		return "", domain.NewError(domain.KindRemote, "could not shorten url")
	}
	return resp.Objects[0].ShortLink, nil
}
