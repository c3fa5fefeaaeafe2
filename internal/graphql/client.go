package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

type Options struct {
	Endpoint string
	Timeout  time.Duration

	// the breaker opens after MaxFailures consecutive transport failures
	// and lets a probe through after OpenTimeout
	MaxFailures uint32
	OpenTimeout time.Duration

	HTTPClient *http.Client
}

// Client posts GraphQL documents to a single endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[*response]
	log      *zap.Logger
}

// RemoteError carries the errors[] entries of a GraphQL response. Its
// message is the first entry's message, unchanged.
type RemoteError struct {
	Messages []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql: unknown error"
	}
	return e.Messages[0]
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewClient(opts Options, log *zap.Logger) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "graphql",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// a GraphQL error means the server is up and answered
		IsSuccessful: func(err error) bool {
			var remote *RemoteError
			return err == nil || errors.As(err, &remote)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return &Client{
		endpoint: opts.Endpoint,
		http:     httpClient,
		breaker:  breaker,
		log:      log,
	}, nil
}

// Do sends query with vars and decodes the data object into out.
func (c *Client) Do(ctx context.Context, query string, vars map[string]any, out any) error {
	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.post(ctx, query, vars)
	})
	if err != nil {
		return err
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("json.Unmarshal data: %w", err)
	}

	return nil
}

func (c *Client) post(ctx context.Context, query string, vars map[string]any) (*response, error) {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With(zap.String("request_id", requestID))
	started := time.Now()

	httpResp, err := c.http.Do(req)
	if err != nil {
		log.Warn("graphql request failed", zap.Error(err))
		return nil, err
	}
	defer httpResp.Body.Close()

	log.Debug("graphql response",
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	var resp response
	decodeErr := json.Unmarshal(raw, &resp)

	if len(resp.Errors) > 0 {
		remote := &RemoteError{}
		for _, e := range resp.Errors {
			remote.Messages = append(remote.Messages, e.Message)
		}
		return nil, remote
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Body: truncate(raw, maxErrorBody)}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", decodeErr)
	}

	return &resp, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(bytes.TrimSpace(b))
}
