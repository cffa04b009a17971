package adapter

import "context"

// CatalogQuote is one record from the external quote feed.
type CatalogQuote struct {
	ExternalID int64
	Text       string
	Author     string
}

// QuoteFeed fetches the full external catalog in one bounded call.
type QuoteFeed interface {
	FetchAll(ctx context.Context) ([]CatalogQuote, error)
}
