package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ivy-resolve-cli/internal/domain"
	"ivy-resolve-cli/internal/fetcher"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.URL.Path != "/com/x/lib/1.0/ivy.xml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<ivy-module version="2.0"/>`))
	}))
	defer server.Close()

	f := fetcher.NewHTTPFetcher(zap.NewNop())

	t.Run("success returns the body", func(t *testing.T) {
		content, err := f.Fetch(context.Background(), domain.Artifact{
			URL: server.URL + "/com/x/lib/1.0/ivy.xml",
		})
		require.NoError(t, err)
		assert.Equal(t, `<ivy-module version="2.0"/>`, string(content))
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), domain.Artifact{
			URL: server.URL + "/missing.jar",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})

	t.Run("invalid URL is an error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), domain.Artifact{URL: "://not-a-url"})
		require.Error(t, err)
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.Fetch(ctx, domain.Artifact{URL: server.URL + "/com/x/lib/1.0/ivy.xml"})
		require.Error(t, err)
	})
}
