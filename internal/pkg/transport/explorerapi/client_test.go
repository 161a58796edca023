package explorerapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	transporthttp "github.com/gabapcia/walletwatch/internal/pkg/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Err(t *testing.T) {
	t.Run("returns nil when status is 1", func(t *testing.T) {
		resp := response{Status: "1", Message: "OK", Result: json.RawMessage(`"100"`)}
		assert.NoError(t, resp.Err())
	})

	t.Run("returns ErrNoRecordsFound for empty list answers", func(t *testing.T) {
		resp := response{Status: "0", Message: "No transactions found", Result: json.RawMessage(`[]`)}
		assert.ErrorIs(t, resp.Err(), ErrNoRecordsFound)
	})

	t.Run("includes the result detail in provider errors", func(t *testing.T) {
		resp := response{Status: "0", Message: "NOTOK", Result: json.RawMessage(`"Max rate limit reached"`)}

		err := resp.Err()
		assert.ErrorIs(t, err, ErrProviderReturnedError)
		assert.Contains(t, err.Error(), "NOTOK")
		assert.Contains(t, err.Error(), "Max rate limit reached")
	})

	t.Run("returns a provider error without detail when result is not a string", func(t *testing.T) {
		resp := response{Status: "0", Message: "NOTOK", Result: json.RawMessage(`null`)}

		err := resp.Err()
		assert.ErrorIs(t, err, ErrProviderReturnedError)
		assert.Contains(t, err.Error(), "NOTOK")
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("successful response with result", func(t *testing.T) {
		var query url.Values
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "1",
				"message": "OK",
				"result":  "1000000000000000000",
			})
		}))
		defer mockServer.Close()

		c := NewClient(mockServer.URL, WithAPIKey("secret"))

		result, err := c.Fetch(t.Context(), url.Values{
			"module":  {"account"},
			"action":  {"balance"},
			"address": {"0xabc"},
		})
		require.NoError(t, err)

		var balance string
		require.NoError(t, json.Unmarshal(result, &balance))
		assert.Equal(t, "1000000000000000000", balance)

		assert.Equal(t, "account", query.Get("module"))
		assert.Equal(t, "balance", query.Get("action"))
		assert.Equal(t, "0xabc", query.Get("address"))
		assert.Equal(t, "secret", query.Get("apikey"))
	})

	t.Run("omits apikey when not configured", func(t *testing.T) {
		var query url.Values
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			json.NewEncoder(w).Encode(map[string]any{"status": "1", "message": "OK", "result": "0"})
		}))
		defer mockServer.Close()

		_, err := NewClient(mockServer.URL).Fetch(t.Context(), url.Values{"module": {"account"}})
		require.NoError(t, err)
		assert.False(t, query.Has("apikey"))
	})

	t.Run("does not mutate the caller's parameters", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "1", "message": "OK", "result": "0"})
		}))
		defer mockServer.Close()

		params := url.Values{"module": {"account"}}
		_, err := NewClient(mockServer.URL, WithAPIKey("secret")).Fetch(t.Context(), params)
		require.NoError(t, err)
		assert.False(t, params.Has("apikey"))
	})

	t.Run("response with provider error", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "0",
				"message": "NOTOK",
				"result":  "Invalid API Key",
			})
		}))
		defer mockServer.Close()

		result, err := NewClient(mockServer.URL).Fetch(t.Context(), url.Values{})
		assert.ErrorIs(t, err, ErrProviderReturnedError)
		assert.Nil(t, result)
	})

	t.Run("non-2xx response", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer mockServer.Close()

		result, err := NewClient(mockServer.URL).Fetch(t.Context(), url.Values{})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "502")
		assert.Nil(t, result)
	})

	t.Run("malformed JSON response", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not json"))
		}))
		defer mockServer.Close()

		result, err := NewClient(mockServer.URL).Fetch(t.Context(), url.Values{})
		assert.ErrorIs(t, err, ErrMalformedResponse)
		assert.Nil(t, result)
	})

	t.Run("network error when server is down", func(t *testing.T) {
		mockServer := httptest.NewServer(nil)
		mockServer.Close()

		c := NewClient(mockServer.URL, WithHTTPClient(transporthttp.NewClient(transporthttp.WithTimeout(time.Second))))

		result, err := c.Fetch(t.Context(), url.Values{})
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("timeout when the provider is slow", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer mockServer.Close()

		c := NewClient(mockServer.URL, WithHTTPClient(transporthttp.NewClient(transporthttp.WithTimeout(50*time.Millisecond))))

		_, err := c.Fetch(t.Context(), url.Values{})
		assert.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("uses the shared transport defaults", func(t *testing.T) {
		c := NewClient("https://api.etherscan.io/api")

		assert.Equal(t, "https://api.etherscan.io/api", c.baseURL)
		assert.Empty(t, c.apiKey)
		require.NotNil(t, c.httpClient)
		assert.Equal(t, 10*time.Second, c.httpClient.HTTPClient.Timeout)
		assert.Equal(t, 0, c.httpClient.RetryMax)
	})

	t.Run("applies options", func(t *testing.T) {
		hc := transporthttp.NewClient(transporthttp.WithTimeout(time.Second))
		c := NewClient("https://api.etherscan.io/api?", WithAPIKey("k"), WithHTTPClient(hc))

		assert.Equal(t, "https://api.etherscan.io/api", c.baseURL)
		assert.Equal(t, "k", c.apiKey)
		assert.Same(t, hc, c.httpClient)
	})
}
