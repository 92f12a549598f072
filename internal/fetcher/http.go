package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"ivy-resolve-cli/internal/domain"
)

// HTTPFetcher retrieves artifact bytes over HTTP(S). Retries are disabled by
// default: a failed fetch is terminal for the resolution attempt, and
// cancellation belongs to the caller's context.
type HTTPFetcher struct {
	client *retryablehttp.Client
	logger *zap.Logger
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(logger *zap.Logger) *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	return &HTTPFetcher{
		client: client,
		logger: logger,
	}
}

// Fetch downloads the artifact's URL and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, artifact domain.Artifact) ([]byte, error) {
	f.logger.Debug("Fetching over HTTP", zap.String("url", artifact.URL))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, artifact.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", artifact.URL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", artifact.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, artifact.URL)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body of %s: %w", artifact.URL, err)
	}

	f.logger.Debug("Completed HTTP fetch",
		zap.String("url", artifact.URL),
		zap.Int("content_size_bytes", len(content)))

	return content, nil
}
