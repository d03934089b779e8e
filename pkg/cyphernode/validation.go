package cyphernode

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/btcsuite/btcd/btcutil"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/tyler-smith/go-bip32"
)

var (
	// xpubPathRegexp matches the gateway's derivation templates, e.g. 0/n
	// or 0/1/n.
	xpubPathRegexp = regexp.MustCompile(`^(\d+/)*n$`)

	// peerRegexp matches <pubkey>@<host>[:port].
	peerRegexp = regexp.MustCompile(`^(02|03)[0-9a-fA-F]{64}@.+$`)

	nodeIDRegexp = regexp.MustCompile(`^(02|03)[0-9a-fA-F]{64}$`)
)

// extendedPubKey checks the base58 checksum and layout of an extended
// public key. The version bytes are not checked, so xpub, tpub, upub and
// vpub are all accepted.
var extendedPubKey = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	key, err := bip32.B58Deserialize(s)
	if err != nil {
		return fmt.Errorf("invalid extended public key: %w", err)
	}
	if key.IsPrivate {
		return errors.New("extended private keys must never be sent to the gateway")
	}
	return nil
})

// checkAddress validates address against the configured network. It is a
// no-op when the client has no network.
func (c *Client) checkAddress(op, address string) error {
	if address == "" {
		return newError(KindInput, op, "address is required", nil)
	}
	if c.network == nil {
		return nil
	}

	addr, err := btcutil.DecodeAddress(address, c.network)
	if err != nil {
		return newError(KindInput, op, "invalid address", err)
	}
	if !addr.IsForNet(c.network) {
		return newError(KindInput, op,
			fmt.Sprintf("address %s is not valid on %s", address, c.network.Name), nil)
	}
	return nil
}

// checkInvoice decodes a BOLT11 invoice against the configured network. It
// is a no-op when the client has no network.
func (c *Client) checkInvoice(op, invoice string) error {
	if invoice == "" {
		return newError(KindInput, op, "invoice is required", nil)
	}
	if c.network == nil {
		return nil
	}

	if _, err := zpay32.Decode(invoice, c.network); err != nil {
		return newError(KindInput, op, "invalid bolt11 invoice", err)
	}
	return nil
}
