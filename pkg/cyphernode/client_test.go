package cyphernode

import (
	"context"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

const (
	testClientID = "003"
	testSecret   = "2df1eeea370eacdc5cf7e96c2d82140d1568079a5d4d87006ec8718a98883b36"
)

// newTestClient starts a TLS gateway stub serving handler and returns a
// client pinned to its certificate.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...func(*Config)) *Client {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	cert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	cfg := Config{
		Host:     strings.TrimPrefix(srv.URL, "https://"),
		ClientID: testClientID,
		Secret:   testSecret,
		TLS:      PinnedCert(cert),
		Timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)
	return client
}

// respond writes body as a JSON response.
func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// capture records every request on seen and answers with body.
func capture(seen chan<- capturedRequest, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen <- capturedRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			header: r.Header.Clone(),
			body:   raw,
		}
		respond(body)(w, r)
	}
}

func withNetwork(params *chaincfg.Params) func(*Config) {
	return func(cfg *Config) {
		cfg.Network = params
	}
}

func TestNew(t *testing.T) {
	valid := Config{
		Host:     "cyphernode.local:2009",
		ClientID: testClientID,
		Secret:   testSecret,
		TLS:      SystemTrust(),
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid
		cfg.Host = "https://cyphernode.local:2009/"
		client, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, "https://cyphernode.local:2009/v0/", client.BaseURL())
		require.Equal(t, DefaultTimeout, client.http.Timeout)
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name   string
			mutate func(*Config)
		}{
			{"missing host", func(c *Config) { c.Host = "" }},
			{"missing client id", func(c *Config) { c.ClientID = "" }},
			{"missing secret", func(c *Config) { c.Secret = "" }},
			{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
			{"plain http", func(c *Config) { c.Host = "http://cyphernode.local:8888" }},
			{"unset tls policy", func(c *Config) { c.TLS = TLSPolicy{} }},
			{"garbage pinned cert", func(c *Config) { c.TLS = PinnedCert([]byte("not a certificate")) }},
			{"empty pinned cert", func(c *Config) { c.TLS = PinnedCert(nil) }},
		}
		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				cfg := valid
				f.mutate(&cfg)
				client, err := New(cfg)
				require.Error(t, err)
				require.Nil(t, client)
				require.True(t, IsKind(err, KindInput), err.Error())
			})
		}
	})

	t.Run("unset tls policy sentinel", func(t *testing.T) {
		cfg := valid
		cfg.TLS = TLSPolicy{}
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrTLSPolicyUnset)
	})
}

func TestTransport(t *testing.T) {
	t.Run("request shape", func(t *testing.T) {
		seen := make(chan capturedRequest, 1)
		client := newTestClient(t, capture(seen, `{"result":{"address":"bcrt1qxyz"},"error":null}`))

		addr, err := client.GetNewAddress(context.Background(), NewAddressRequest{
			AddressType: AddressTypeBech32,
			Label:       "deposit",
		})
		require.NoError(t, err)
		require.Equal(t, "bcrt1qxyz", addr.Address)

		req := <-seen
		require.Equal(t, http.MethodPost, req.method)
		require.Equal(t, "/v0/getnewaddress", req.path)
		require.True(t, strings.HasPrefix(req.header.Get("Authorization"), "Bearer "))
		require.Equal(t, "application/json", req.header.Get("Content-Type"))
		require.Equal(t, "application/json", req.header.Get("Accept"))
		require.JSONEq(t, `{"addressType":"bech32","label":"deposit"}`, string(req.body))
	})

	t.Run("get has no body", func(t *testing.T) {
		seen := make(chan capturedRequest, 1)
		client := newTestClient(t, capture(seen, `{"result":{"balance":1.5},"error":null}`))

		balance, err := client.GetBalance(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1.5, balance.Balance)

		req := <-seen
		require.Equal(t, http.MethodGet, req.method)
		require.Equal(t, "/v0/getbalance", req.path)
		require.Empty(t, req.header.Get("Content-Type"))
		require.Empty(t, req.body)
	})

	t.Run("status mapping", func(t *testing.T) {
		fixtures := []struct {
			status int
			kind   Kind
		}{
			{http.StatusBadRequest, KindInput},
			{http.StatusConflict, KindInput},
			{http.StatusUnauthorized, KindAuth},
			{http.StatusForbidden, KindAuth},
			{http.StatusNotFound, KindNoResource},
			{http.StatusInternalServerError, KindHTTP},
			{http.StatusBadGateway, KindHTTP},
		}
		for _, f := range fixtures {
			t.Run(http.StatusText(f.status), func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "nope", f.status)
				})

				_, err := client.GetBalance(context.Background())
				require.Error(t, err)
				require.True(t, IsKind(err, f.kind), err.Error())

				var httpErr *HTTPError
				require.True(t, errors.As(err, &httpErr))
				require.Equal(t, f.status, httpErr.StatusCode)
				require.Equal(t, http.MethodGet, httpErr.Method)
				require.Equal(t, "nope", httpErr.Body)
				require.True(t, strings.HasSuffix(httpErr.URL, "/v0/getbalance"))
			})
		}
	})

	t.Run("long error body is truncated", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, strings.Repeat("x", 5000), http.StatusInternalServerError)
		})

		_, err := client.GetBalance(context.Background())
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Less(t, len(httpErr.Body), 2100)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newTestClient(t, respond(`{"result":{"balance":1},"error":null}`))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.GetBalance(ctx)
		require.Error(t, err)
		require.True(t, IsKind(err, KindNetwork), err.Error())
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		client, err := New(Config{
			Host:     "127.0.0.1:1",
			ClientID: testClientID,
			Secret:   testSecret,
			TLS:      SystemTrust(),
			Timeout:  2 * time.Second,
		})
		require.NoError(t, err)

		_, err = client.GetBalance(context.Background())
		require.Error(t, err)
		require.True(t, IsKind(err, KindNetwork), err.Error())
	})
}

func TestTLSPolicy(t *testing.T) {
	t.Run("system trust rejects self-signed gateway", func(t *testing.T) {
		client := newTestClient(t, respond(`{"result":{"balance":1},"error":null}`), func(cfg *Config) {
			cfg.TLS = SystemTrust()
		})

		_, err := client.GetBalance(context.Background())
		require.Error(t, err)
		require.True(t, IsKind(err, KindTLS), err.Error())
	})

	t.Run("pinned cert checks hostname", func(t *testing.T) {
		client := newTestClient(t, respond(`{"result":{"balance":1},"error":null}`), func(cfg *Config) {
			cfg.ServerName = "gateway.invalid"
		})

		_, err := client.GetBalance(context.Background())
		require.Error(t, err)
		require.True(t, IsKind(err, KindTLS), err.Error())
	})

	t.Run("pinned cert accepts DER", func(t *testing.T) {
		srv := httptest.NewTLSServer(respond(`{"result":{"balance":2},"error":null}`))
		defer srv.Close()

		client, err := New(Config{
			Host:     strings.TrimPrefix(srv.URL, "https://"),
			ClientID: testClientID,
			Secret:   testSecret,
			TLS:      PinnedCert(srv.Certificate().Raw),
		})
		require.NoError(t, err)

		balance, err := client.GetBalance(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2.0, balance.Balance)
	})

	t.Run("insecure skips verification", func(t *testing.T) {
		client := newTestClient(t, respond(`{"result":{"balance":3},"error":null}`), func(cfg *Config) {
			cfg.TLS = InsecureSkipVerify()
		})

		balance, err := client.GetBalance(context.Background())
		require.NoError(t, err)
		require.Equal(t, 3.0, balance.Balance)
	})

	t.Run("mode names", func(t *testing.T) {
		require.Equal(t, "pinned", PinnedCert(nil).Mode().String())
		require.Equal(t, "system", SystemTrust().Mode().String())
		require.Equal(t, "insecure", InsecureSkipVerify().Mode().String())
		require.Equal(t, "unset", TLSPolicy{}.Mode().String())
	})
}
