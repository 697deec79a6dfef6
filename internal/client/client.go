package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// ControllerClient is the single I/O boundary of the acquisition pipeline.
// Each getter performs one blocking GET against a controller page and
// returns the raw body text; tests substitute canned documents.
type ControllerClient interface {
	GetMainPage(ctx context.Context) (string, error)
	GetCellVoltagePage(ctx context.Context) (string, error)
	GetCellTemperaturePage(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	BaseURL() string
}

// ClientConfig holds configuration for DefaultClient. Paths left empty fall
// back to the observed firmware's page layout.
type ClientConfig struct {
	// BaseURL is the controller address: host, host:port, or a full
	// http:// URL. No credentials are embedded.
	BaseURL        string
	RequestTimeout time.Duration

	MainPath            string
	CellVoltagePath     string
	CellTemperaturePath string
}

// ErrBodyDecode marks a response body that was not valid text.
var ErrBodyDecode = errors.New("response body is not valid text")

// TransportError reports a failed controller request: connection, DNS,
// HTTP status, or an unreadable body. It is terminal for that fetch; the
// surrounding poller decides when to try again.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("controller request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DefaultClient implements ControllerClient using the standard net/http
// package.
type DefaultClient struct {
	http   *http.Client
	config ClientConfig
}

// NewDefaultClient constructs a DefaultClient from the given config. A bare
// host address gains an http:// scheme. Returns an error if BaseURL is
// empty.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if !strings.Contains(cfg.BaseURL, "://") {
		cfg.BaseURL = "http://" + cfg.BaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.MainPath == "" {
		cfg.MainPath = defaultMainPath
	}
	if cfg.CellVoltagePath == "" {
		cfg.CellVoltagePath = defaultCellVoltagePath
	}
	if cfg.CellTemperaturePath == "" {
		cfg.CellTemperaturePath = defaultCellTemperaturePath
	}

	return &DefaultClient{
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		config: cfg,
	}, nil
}

// BaseURL returns the normalized base URL of the controller.
func (c *DefaultClient) BaseURL() string {
	return c.config.BaseURL
}

// doGet performs a GET request to the given path (relative to BaseURL) and
// returns the body as text. No retry; an unresponsive controller is bounded
// only by the client timeout.
func (c *DefaultClient) doGet(ctx context.Context, path string) (string, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	// The controller pages are a few KB; the limit only guards against a
	// misdirected address streaming garbage.
	const maxResponseBytes = 4 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{URL: url, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))}
	}

	if !utf8.Valid(body) {
		return "", &TransportError{URL: url, Err: ErrBodyDecode}
	}

	return string(body), nil
}

// Ping checks connectivity by requesting the main panel page with a 1s
// timeout.
func (c *DefaultClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := c.doGet(pingCtx, c.config.MainPath)
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
