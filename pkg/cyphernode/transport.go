package cyphernode

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
)

const maxErrorBody = 2000

// decodeFunc turns a raw 2xx body into the endpoint response type.
type decodeFunc[T any] func(op string, raw []byte) (*T, error)

func get[T any](ctx context.Context, c *Client, path string, decode decodeFunc[T]) (*T, error) {
	raw, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode(opName(path), raw)
}

func post[T any](ctx context.Context, c *Client, path string, body any, decode decodeFunc[T]) (*T, error) {
	if v, ok := body.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, newError(KindInput, opName(path), "invalid request", err)
		}
	}

	raw, err := c.send(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return decode(opName(path), raw)
}

// endpoint joins an endpoint name with escaped path parameters.
func endpoint(name string, params ...string) string {
	segments := make([]string, 0, len(params)+1)
	segments = append(segments, name)
	for _, p := range params {
		segments = append(segments, url.PathEscape(p))
	}
	return strings.Join(segments, "/")
}

func opName(path string) string {
	op, _, _ := strings.Cut(path, "/")
	return op
}

func (c *Client) send(ctx context.Context, method, path string, reqBody any) ([]byte, error) {
	op := opName(path)

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, newError(KindInternal, op, "failed to encode request", err)
		}
		body = bytes.NewReader(b)
	}

	authorization, err := c.bearer()
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, newError(KindInput, op, fmt.Sprintf("new %s %s", method, path), err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(log.Fields{
			"method": method,
			"path":   op,
		}).Debug("gateway request failed")
		return nil, transportError(op, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, newError(KindInternal, op, "failed to read response body", err)
	}

	c.log.WithFields(log.Fields{
		"method":   method,
		"path":     op,
		"status":   res.StatusCode,
		"duration": time.Since(start),
	}).Debug("gateway call")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "...(truncated)"
		}
		httpErr := &HTTPError{
			Method:     method,
			URL:        reqURL,
			StatusCode: res.StatusCode,
			Body:       msg,
		}
		return nil, newError(kindForStatus(res.StatusCode), op, "", httpErr)
	}

	return raw, nil
}

func transportError(op string, err error) *Error {
	var (
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidErr  x509.CertificateInvalidError
		recordErr   tls.RecordHeaderError
	)
	switch {
	case errors.As(err, &verifyErr),
		errors.As(err, &unknownAuth),
		errors.As(err, &hostErr),
		errors.As(err, &invalidErr),
		errors.As(err, &recordErr):
		return newError(KindTLS, op, "tls handshake failed", err)
	default:
		return newError(KindNetwork, op, "request failed", err)
	}
}
