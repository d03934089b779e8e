package cyphernode

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// TLSMode selects how the gateway certificate is verified.
type TLSMode int

const (
	tlsModeUnset TLSMode = iota
	// TLSPinned trusts exactly one CA certificate and nothing from the
	// system store. This is what self-signed gateway deployments need.
	TLSPinned
	// TLSSystemTrust verifies the gateway against the system roots.
	TLSSystemTrust
	// TLSInsecure disables certificate verification altogether.
	TLSInsecure
)

func (m TLSMode) String() string {
	switch m {
	case TLSPinned:
		return "pinned"
	case TLSSystemTrust:
		return "system"
	case TLSInsecure:
		return "insecure"
	default:
		return "unset"
	}
}

// TLSPolicy is the TLS verification policy of a Client. The zero value is
// rejected by New: callers must pick one of PinnedCert, SystemTrust or
// InsecureSkipVerify.
type TLSPolicy struct {
	mode   TLSMode
	caCert []byte
}

// PinnedCert trusts only the given certificate, PEM or DER encoded.
func PinnedCert(cert []byte) TLSPolicy {
	return TLSPolicy{mode: TLSPinned, caCert: append([]byte(nil), cert...)}
}

// SystemTrust verifies the gateway against the system trust store.
func SystemTrust() TLSPolicy {
	return TLSPolicy{mode: TLSSystemTrust}
}

// InsecureSkipVerify disables certificate verification.
func InsecureSkipVerify() TLSPolicy {
	return TLSPolicy{mode: TLSInsecure}
}

func (p TLSPolicy) Mode() TLSMode {
	return p.mode
}

func (p TLSPolicy) tlsConfig(serverName string) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: serverName,
	}

	switch p.mode {
	case TLSPinned:
		pool, err := certPool(p.caCert)
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	case TLSSystemTrust:
	case TLSInsecure:
		cfg.InsecureSkipVerify = true // #nosec
	default:
		return nil, ErrTLSPolicyUnset
	}

	return cfg, nil
}

func certPool(cert []byte) (*x509.CertPool, error) {
	if len(cert) == 0 {
		return nil, fmt.Errorf("pinned certificate is empty")
	}

	pool := x509.NewCertPool()
	if block, _ := pem.Decode(cert); block != nil {
		if !pool.AppendCertsFromPEM(cert) {
			return nil, fmt.Errorf("could not parse pinned certificate")
		}
		return pool, nil
	}

	parsed, err := x509.ParseCertificate(cert)
	if err != nil {
		return nil, fmt.Errorf("could not parse pinned certificate: %w", err)
	}
	pool.AddCert(parsed)
	return pool, nil
}
