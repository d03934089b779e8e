package cyphernode

import (
	"context"
	"encoding/json"
	"strconv"
)

func (c *Client) LnGetInfo(ctx context.Context) (*LnInfo, error) {
	return get(ctx, c, "ln_getinfo", decodeEnvelope[LnInfo])
}

// LnNewAddr returns a bech32 address funding the lightning wallet.
func (c *Client) LnNewAddr(ctx context.Context) (*LnFundAddress, error) {
	return get(ctx, c, "ln_newaddr", decodeEnvelope[LnFundAddress])
}

// LnGetConnectionString returns the id@host:port string peers use to
// connect to the gateway's node.
func (c *Client) LnGetConnectionString(ctx context.Context) (*LnConnString, error) {
	return get(ctx, c, "ln_getconnectionstring", decodeEnvelope[LnConnString])
}

func (c *Client) LnDecodeBolt11(ctx context.Context, invoice string) (*LnBolt11, error) {
	if err := c.checkInvoice("ln_decodebolt11", invoice); err != nil {
		return nil, err
	}
	return get(ctx, c, endpoint("ln_decodebolt11", invoice), decodeEnvelope[LnBolt11])
}

// LnConnectFund connects to a peer and opens a channel with it. The
// gateway calls req.CallbackURL once the channel is usable.
func (c *Client) LnConnectFund(ctx context.Context, req LnConnectFundRequest) (*LnConnectFund, error) {
	return post(ctx, c, "ln_connectfund", req, decodeConnectFund)
}

func (c *Client) LnListFunds(ctx context.Context) (*LnListFunds, error) {
	return get(ctx, c, "ln_listfunds", decodeEnvelope[LnListFunds])
}

func (c *Client) LnListPays(ctx context.Context) (*LnListPays, error) {
	return get(ctx, c, "ln_listpays", decodeEnvelope[LnListPays])
}

// LnListPeers returns the peers of the gateway's node and the channels
// opened with them, offline peers included.
func (c *Client) LnListPeers(ctx context.Context) (*LnListPeers, error) {
	return get(ctx, c, "ln_listpeers", decodeEnvelope[LnListPeers])
}

// LnGetRoute asks lightningd for a route paying msat to nodeID.
func (c *Client) LnGetRoute(ctx context.Context, nodeID string, msat uint64, riskFactor float64) (*LnRoutes, error) {
	const op = "ln_getroute"
	switch {
	case !nodeIDRegexp.MatchString(nodeID):
		return nil, newError(KindInput, op, "invalid node id", nil)
	case msat == 0:
		return nil, newError(KindInput, op, "amount must be positive", nil)
	case riskFactor < 0:
		return nil, newError(KindInput, op, "risk factor must not be negative", nil)
	}

	path := endpoint(op,
		nodeID,
		strconv.FormatUint(msat, 10),
		strconv.FormatFloat(riskFactor, 'f', -1, 64),
	)
	return get(ctx, c, path, decodeEnvelope[LnRoutes])
}

// LnWithdraw is not idempotent.
func (c *Client) LnWithdraw(ctx context.Context, req LnWithdrawRequest) (*LnWithdraw, error) {
	if err := c.checkAddress("ln_withdraw", req.Destination); err != nil {
		return nil, err
	}
	return post(ctx, c, "ln_withdraw", req, decodeEnvelope[LnWithdraw])
}

// decodeConnectFund decodes the bare ln_connectfund answer, which reports
// failures as {"result": "failed", "message": "..."}.
func decodeConnectFund(op string, raw []byte) (*LnConnectFund, error) {
	var status struct {
		Result  string `json:"result"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, newError(KindInternal, op, "malformed response", err)
	}
	if status.Result == "failed" {
		return nil, newError(KindGateway, op, status.Message, nil)
	}
	return decodeBare[LnConnectFund](op, raw)
}
