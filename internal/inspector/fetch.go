package inspector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher downloads the archive bytes for a resolved source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]byte, error)
}

// HTTPFetcher downloads archives with a plain GET.
type HTTPFetcher struct {
	http     *http.Client
	token    string
	maxBytes int64
}

type HTTPConfig struct {
	Timeout  time.Duration
	Token    string
	MaxBytes int64
	Client   *http.Client
}

func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	cli := cfg.Client
	if cli == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		cli = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{http: cli, token: strings.TrimSpace(cfg.Token), maxBytes: cfg.MaxBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: src.String(), Err: err}
	}
	req.Header.Set("User-Agent", "dockergen")
	if f.token != "" && strings.HasPrefix(src.URL, githubAPIBase) {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, &FetchError{Source: src.String(), Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Source: src.String(), StatusCode: resp.StatusCode}
	}
	return readCapped(resp.Body, f.maxBytes, src)
}

// readCapped reads r fully; maxBytes <= 0 disables the cap.
func readCapped(r io.Reader, maxBytes int64, src Source) ([]byte, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{Source: src.String(), Err: fmt.Errorf("read body: %w", err)}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, &FetchError{Source: src.String(), Err: ErrArchiveTooLarge}
	}
	return data, nil
}
