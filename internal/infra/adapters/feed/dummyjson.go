package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quote-quiz/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.QuoteFeed = (*Client)(nil)

// Client reads the external quote catalog over HTTP. The feed returns the
// whole catalog in one response; the timeout bounds the entire call.
type Client struct {
	url  string
	http *http.Client
	log  *zerolog.Logger
}

func NewClient(url string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	compLog := logger.With().Str("component", "QuoteFeed").Logger()
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  &compLog,
	}
}

type feedQuote struct {
	ID     int64  `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type feedResponse struct {
	Quotes []feedQuote `json:"quotes"`
	Total  int         `json:"total"`
}

func (c *Client) FetchAll(ctx context.Context) ([]adapter.CatalogQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]adapter.CatalogQuote, 0, len(body.Quotes))
	for _, q := range body.Quotes {
		out = append(out, adapter.CatalogQuote{ExternalID: q.ID, Text: q.Quote, Author: q.Author})
	}
	c.log.Debug().Int("count", len(out)).Msg("catalog fetched")
	return out, nil
}
