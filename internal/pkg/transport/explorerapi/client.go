// Package explorerapi provides a client for block-explorer style REST APIs,
// where every call is a GET with query parameters and every answer is wrapped
// in a {status, message, result} envelope.
package explorerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	transporthttp "github.com/gabapcia/walletwatch/internal/pkg/transport/http"
)

var (
	// ErrProviderReturnedError indicates the envelope status was not successful.
	ErrProviderReturnedError = errors.New("provider error")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrMalformedResponse indicates the body could not be decoded as an envelope.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoRecordsFound is reported when the provider answers a list query with
	// an empty, unsuccessful envelope. Callers usually treat it as an empty list.
	ErrNoRecordsFound = errors.New("no records found")
)

// statusOK is the envelope status of a successful call.
const statusOK = "1"

// noRecordsMessages are the envelope messages used for empty list answers.
var noRecordsMessages = []string{
	"No transactions found",
	"No records found",
	"No token transfers found",
}

// response is the envelope every explorer endpoint answers with.
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Err returns an error if the envelope does not carry a successful status.
func (r response) Err() error {
	if r.Status == statusOK {
		return nil
	}

	for _, msg := range noRecordsMessages {
		if strings.HasPrefix(r.Message, msg) {
			return ErrNoRecordsFound
		}
	}

	// failed calls usually carry a human readable reason in result
	var detail string
	if err := json.Unmarshal(r.Result, &detail); err == nil && detail != "" {
		return fmt.Errorf("%w: [%s] %s - %s", ErrProviderReturnedError, r.Status, r.Message, detail)
	}

	return fmt.Errorf("%w: [%s] %s", ErrProviderReturnedError, r.Status, r.Message)
}

// Client sends queries to a block-explorer API.
type Client interface {
	// Fetch issues a GET with the given query parameters and returns the
	// envelope's raw result on success.
	//
	// Returns ErrNoRecordsFound for empty list answers, ErrProviderReturnedError
	// for any other unsuccessful status, ErrUnexpectedStatus for non-2xx HTTP
	// responses and ErrMalformedResponse if the body is not an envelope.
	Fetch(ctx context.Context, params url.Values) (json.RawMessage, error)
}

// config holds optional client settings.
type config struct {
	apiKey     string
	httpClient *retryablehttp.Client
}

// Option configures the client.
type Option func(*config)

// client is the default implementation of the Client interface.
type client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Fetch implements Client.
func (c *client) Fetch(ctx context.Context, params url.Values) (json.RawMessage, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}

	endpoint := c.baseURL
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if err := data.Err(); err != nil {
		return nil, err
	}

	return data.Result, nil
}

// NewClient constructs a Client for the explorer API at baseURL.
//
// Without WithHTTPClient the client uses the shared transport defaults: a
// 10 second timeout and no retries.
func NewClient(baseURL string, opts ...Option) *client {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = transporthttp.NewClient()
	}

	return &client{
		baseURL:    strings.TrimRight(baseURL, "?"),
		apiKey:     cfg.apiKey,
		httpClient: cfg.httpClient,
	}
}

// WithAPIKey appends apikey=key to every request.
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// WithHTTPClient overrides the HTTP client used to send requests.
func WithHTTPClient(hc *retryablehttp.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}
