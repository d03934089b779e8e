package cyphernode

import "context"

// GetNewAddress returns a new address from the gateway's spending wallet.
func (c *Client) GetNewAddress(ctx context.Context, req NewAddressRequest) (*Address, error) {
	return post(ctx, c, "getnewaddress", req, decodeEnvelope[Address])
}

// GetBalance returns the balance of the spending wallet, in BTC.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	return get(ctx, c, "getbalance", decodeEnvelope[Balance])
}

func (c *Client) GetMempoolInfo(ctx context.Context) (*MempoolInfo, error) {
	return get(ctx, c, "getmempoolinfo", decodeEnvelope[MempoolInfo])
}

func (c *Client) GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error) {
	return get(ctx, c, "getblockchaininfo", decodeEnvelope[BlockchainInfo])
}

// ValidateAddress asks the gateway's bitcoind whether address is valid.
// Unlike the other calls, the address is not checked locally first: an
// invalid address is an answer here, not an input error.
func (c *Client) ValidateAddress(ctx context.Context, address string) (*AddressValidation, error) {
	if address == "" {
		return nil, newError(KindInput, "validateaddress", "address is required", nil)
	}
	return get(ctx, c, endpoint("validateaddress", address), decodeEnvelope[AddressValidation])
}

func (c *Client) EstimateSmartFee(ctx context.Context, req EstimateSmartFeeRequest) (*SmartFee, error) {
	return post(ctx, c, "bitcoin_estimatesmartfee", req, decodeEnvelope[SmartFee])
}
