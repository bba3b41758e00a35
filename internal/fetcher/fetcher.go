package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads a remote spreadsheet.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
