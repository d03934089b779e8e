// Package cyphernode is a client for the cyphernode gateway API (v0).
//
// Every call mints a fresh HS256 bearer token, sends one HTTPS request to
// https://{host}/v0/{endpoint} and decodes the {"result", "error"} envelope
// into a typed response. Calls are never retried: addtobatch, batchspend,
// ln_connectfund and friends are not idempotent on the gateway side.
package cyphernode

import (
	"net/http"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single gateway call when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Config holds everything needed to talk to a gateway.
type Config struct {
	// Host is the gatekeeper address, e.g. "cyphernode.local:2009". A
	// leading "https://" is accepted and stripped.
	Host     string
	ClientID string
	Secret   string
	TLS      TLSPolicy
	// ServerName overrides the name checked against the gateway
	// certificate, useful when Host is an IP address.
	ServerName string
	Timeout    time.Duration
	// Network, if set, enables local validation of addresses and BOLT11
	// invoices before they are sent.
	Network *chaincfg.Params
	Logger  *log.Entry
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.Secret, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Client is safe for concurrent use. It holds no mutable state.
type Client struct {
	baseURL  string
	clientID string
	secret   []byte
	network  *chaincfg.Params
	http     *http.Client
	log      *log.Entry
	now      func() time.Time
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newError(KindInput, "config", "invalid config", err)
	}

	host := cfg.Host
	if strings.HasPrefix(host, "http://") {
		return nil, newError(KindInput, "config", "plain http gateways are not supported", nil)
	}
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimRight(host, "/")

	tlsCfg, err := cfg.TLS.tlsConfig(cfg.ServerName)
	if err != nil {
		return nil, newError(KindInput, "config", "invalid tls policy", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	logger = logger.WithField("component", "cyphernode")

	if cfg.TLS.Mode() == TLSInsecure {
		logger.WithField("host", host).Warn("tls certificate verification is disabled")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg

	return &Client{
		baseURL:  "https://" + host + "/v0/",
		clientID: cfg.ClientID,
		secret:   []byte(cfg.Secret),
		network:  cfg.Network,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		log: logger,
		now: time.Now,
	}, nil
}

// BaseURL returns the URL every endpoint path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
