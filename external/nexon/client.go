package nexon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
	"github.com/riskibarqy/fconline-tracker/internal/platform/resilience"
	"github.com/riskibarqy/fconline-tracker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://static.api.nexon.co.kr/fifaonline4/latest"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 32 << 20
)

var errNexonTransient = crerr.New("nexon metadata transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches static metadata tables. Requests are never retried: a
// timeout or error status fails the call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("nexon metadata circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		breaker:    breaker,
	}
}

func (c *Client) TableURL(name metadata.TableName) string {
	return c.baseURL + "/" + name.FileName()
}

func (c *Client) FetchTable(ctx context.Context, name metadata.TableName) (metadata.Table, error) {
	if !name.Valid() {
		return nil, crerr.Wrapf(usecase.ErrInvalidArgument, "unknown metadata table %q", name)
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var getErr error
		raw, getErr = c.get(ctx, c.TableURL(name))
		return getErr
	}, isTransient)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "nexon metadata circuit breaker rejected request", "table", name, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: metadata api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch metadata table=%s: %w", name, err)
	}

	var table metadata.Table
	if err := sonic.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode metadata table=%s: %w", name, err)
	}
	return table, nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errNexonTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errNexonTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status=%d body=%s", errNexonTransient, resp.StatusCode, abbreviateBody(raw))
		}
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}

	return raw, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errNexonTransient)
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
