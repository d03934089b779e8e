package cyphernode

import "context"

// Watch registers callbacks on address. The gateway imports the address
// into its watching wallet and calls back on 0-conf and 1-conf.
func (c *Client) Watch(ctx context.Context, req WatchRequest) (*WatchedAddress, error) {
	if err := c.checkAddress("watch", req.Address); err != nil {
		return nil, err
	}
	return post(ctx, c, "watch", req, decodeEnvelope[WatchedAddress])
}

func (c *Client) Unwatch(ctx context.Context, address string) (*UnwatchedAddress, error) {
	if err := c.checkAddress("unwatch", address); err != nil {
		return nil, err
	}
	return get(ctx, c, endpoint("unwatch", address), decodeEnvelope[UnwatchedAddress])
}

func (c *Client) GetActiveWatches(ctx context.Context) (*ActiveWatches, error) {
	return get(ctx, c, "getactivewatches", decodeEnvelope[ActiveWatches])
}

// WatchXpub watches the addresses derived from an extended public key.
// The key is checked locally and an extended private key is refused
// before anything is sent.
func (c *Client) WatchXpub(ctx context.Context, req WatchXpubRequest) (*WatchedXpub, error) {
	return post(ctx, c, "watchxpub", req, decodeEnvelope[WatchedXpub])
}

func (c *Client) UnwatchXpubByXpub(ctx context.Context, xpub string) (*UnwatchedXpub, error) {
	const op = "unwatchxpubbyxpub"
	if xpub == "" {
		return nil, newError(KindInput, op, "xpub is required", nil)
	}
	if err := extendedPubKey.Validate(xpub); err != nil {
		return nil, newError(KindInput, op, "invalid xpub", err)
	}
	return get(ctx, c, endpoint(op, xpub), decodeEnvelope[UnwatchedXpub])
}

func (c *Client) UnwatchXpubByLabel(ctx context.Context, label string) (*UnwatchedXpub, error) {
	const op = "unwatchxpubbylabel"
	if label == "" {
		return nil, newError(KindInput, op, "label is required", nil)
	}
	return get(ctx, c, endpoint(op, label), decodeEnvelope[UnwatchedXpub])
}

func (c *Client) GetActiveXpubWatches(ctx context.Context) (*ActiveXpubWatches, error) {
	return get(ctx, c, "getactivexpubwatches", decodeEnvelope[ActiveXpubWatches])
}
