package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
)

type httpSource struct {
	url    string
	client *http.Client
}

// HTTP fetches a list with a GET request. A nil client uses http.DefaultClient.
func HTTP(url string, client *http.Client) dictionary.Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpSource{url: url, client: client}
}

func (h *httpSource) Name() string { return h.url }

func (h *httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/plain, */*")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp.Body, nil
}
