package cyphernode

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// minAmount is one satoshi expressed in BTC.
const minAmount = 0.00000001

type CreateBatcherRequest struct {
	BatcherLabel string `json:"batcherLabel"`
	ConfTarget   int64  `json:"confTarget"`
}

func (r CreateBatcherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BatcherLabel, validation.Required),
		validation.Field(&r.ConfTarget, validation.Required, validation.Min(int64(1))),
	)
}

type CreateBatcherResponse struct {
	BatcherID int64 `json:"batcherId"`
}

// UpdateBatcherRequest selects the batcher by id or by label.
type UpdateBatcherRequest struct {
	BatcherID    *int64 `json:"batcherId,omitempty"`
	BatcherLabel string `json:"batcherLabel,omitempty"`
	ConfTarget   int64  `json:"confTarget"`
}

func (r UpdateBatcherRequest) Validate() error {
	if r.BatcherID == nil && r.BatcherLabel == "" {
		return errors.New("either batcherId or batcherLabel is required")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfTarget, validation.Required, validation.Min(int64(1))),
	)
}

type UpdateBatcherResponse struct {
	BatcherID    int64  `json:"batcherId"`
	BatcherLabel string `json:"batcherLabel"`
	ConfTarget   int64  `json:"confTarget"`
}

// AddToBatchRequest queues one output for the next batchspend of the
// selected batcher, or of the default batcher when none is selected.
type AddToBatchRequest struct {
	Address      string  `json:"address"`
	Amount       float64 `json:"amount"`
	BatcherID    *int64  `json:"batcherId,omitempty"`
	BatcherLabel string  `json:"batcherLabel,omitempty"`
	OutputLabel  string  `json:"outputLabel,omitempty"`
	WebhookURL   string  `json:"webhookUrl,omitempty"`
}

func (r AddToBatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Amount, validation.Required, validation.Min(minAmount)),
	)
}

type RemoveFromBatchRequest struct {
	OutputID int64 `json:"outputId"`
}

func (r RemoveFromBatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OutputID, validation.Required, validation.Min(int64(1))),
	)
}

// BatchInfo is returned by addtobatch and removefrombatch.
type BatchInfo struct {
	BatcherID int64     `json:"batcherId"`
	OutputID  int64     `json:"outputId"`
	NbOutputs int64     `json:"nbOutputs"`
	Oldest    Timestamp `json:"oldest,omitempty"`
	Total     float64   `json:"total"`
}

type GetBatcherRequest struct {
	BatcherID    *int64 `json:"batcherId,omitempty"`
	BatcherLabel string `json:"batcherLabel,omitempty"`
}

type BatcherSummary struct {
	BatcherID    int64     `json:"batcherId"`
	BatcherLabel string    `json:"batcherLabel"`
	ConfTarget   int64     `json:"confTarget"`
	NbOutputs    int64     `json:"nbOutputs"`
	Oldest       Timestamp `json:"oldest,omitempty"`
	Total        float64   `json:"total"`
}

// GetBatchDetailsRequest selects a batch: a batcher plus an optional txid.
// Without txid the pending, not yet spent batch is returned.
type GetBatchDetailsRequest struct {
	BatcherID    *int64 `json:"batcherId,omitempty"`
	BatcherLabel string `json:"batcherLabel,omitempty"`
	TxID         string `json:"txid,omitempty"`
}

type BatchTxDetails struct {
	FirstSeen   int64   `json:"firstseen"`
	Size        int64   `json:"size"`
	VSize       int64   `json:"vsize"`
	Replaceable bool    `json:"replaceable"`
	Fee         float64 `json:"fee"`
}

type BatchDetails struct {
	BatcherID    int64     `json:"batcherId"`
	BatcherLabel string    `json:"batcherLabel"`
	ConfTarget   int64     `json:"confTarget"`
	NbOutputs    int64     `json:"nbOutputs"`
	Oldest       Timestamp `json:"oldest,omitempty"`
	Total        float64   `json:"total"`
	// TxID, Hash and Details are only set once the batch has been spent.
	TxID    string          `json:"txid,omitempty"`
	Hash    string          `json:"hash,omitempty"`
	Details *BatchTxDetails `json:"details,omitempty"`
	// Outputs maps destination address to amount in BTC.
	Outputs map[string]float64 `json:"outputs"`
}

type BatchSpendRequest struct {
	BatcherID    *int64 `json:"batcherId,omitempty"`
	BatcherLabel string `json:"batcherLabel,omitempty"`
	ConfTarget   *int64 `json:"confTarget,omitempty"`
}

func (r BatchSpendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfTarget, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}

// BatchSpendResult is sent by the gateway without the result/error
// envelope.
type BatchSpendResult struct {
	Status string `json:"status"`
	Hash   string `json:"hash"`
}
