package cyphernode

import "context"

// CreateBatcher creates a batching template with a label and a default
// confirmation target.
func (c *Client) CreateBatcher(ctx context.Context, req CreateBatcherRequest) (*CreateBatcherResponse, error) {
	return post(ctx, c, "createbatcher", req, decodeEnvelope[CreateBatcherResponse])
}

// UpdateBatcher changes the settings of a batching template.
func (c *Client) UpdateBatcher(ctx context.Context, req UpdateBatcherRequest) (*UpdateBatcherResponse, error) {
	return post(ctx, c, "updatebatcher", req, decodeEnvelope[UpdateBatcherResponse])
}

// AddToBatch queues an output for the next batchspend. Not idempotent: a
// retried call queues the output twice.
func (c *Client) AddToBatch(ctx context.Context, req AddToBatchRequest) (*BatchInfo, error) {
	if err := c.checkAddress("addtobatch", req.Address); err != nil {
		return nil, err
	}
	return post(ctx, c, "addtobatch", req, decodeEnvelope[BatchInfo])
}

// RemoveFromBatch removes a previously queued output.
func (c *Client) RemoveFromBatch(ctx context.Context, req RemoveFromBatchRequest) (*BatchInfo, error) {
	return post(ctx, c, "removefrombatch", req, decodeEnvelope[BatchInfo])
}

// GetBatcher returns the summary of a batching template.
func (c *Client) GetBatcher(ctx context.Context, req GetBatcherRequest) (*BatcherSummary, error) {
	return post(ctx, c, "getbatcher", req, decodeEnvelope[BatcherSummary])
}

// GetBatchDetails returns a batch with all of its outputs.
func (c *Client) GetBatchDetails(ctx context.Context, req GetBatchDetailsRequest) (*BatchDetails, error) {
	return post(ctx, c, "getbatchdetails", req, decodeEnvelope[BatchDetails])
}

// ListBatchers returns every batching template. Batcher 1 is the default
// one created at installation time.
func (c *Client) ListBatchers(ctx context.Context) ([]BatcherSummary, error) {
	batchers, err := get(ctx, c, "listbatchers", decodeEnvelope[[]BatcherSummary])
	if err != nil {
		return nil, err
	}
	return *batchers, nil
}

// BatchSpend calls sendmany over every queued output of the selected
// batcher. The gateway answers this one without the envelope.
func (c *Client) BatchSpend(ctx context.Context, req BatchSpendRequest) (*BatchSpendResult, error) {
	return post(ctx, c, "batchspend", req, decodeBare[BatchSpendResult])
}
