package cyphernode

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddressType string

const (
	AddressTypeBech32     AddressType = "bech32"
	AddressTypeBech32m    AddressType = "bech32m"
	AddressTypeP2SHSegwit AddressType = "p2sh-segwit"
	AddressTypeLegacy     AddressType = "legacy"
)

type NewAddressRequest struct {
	// AddressType defaults to bech32 on the gateway when empty.
	AddressType AddressType `json:"addressType,omitempty"`
	Label       string      `json:"label,omitempty"`
}

func (r NewAddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AddressType, validation.In(
			AddressTypeBech32, AddressTypeBech32m, AddressTypeP2SHSegwit, AddressTypeLegacy,
		)),
	)
}

type Address struct {
	Address string `json:"address"`
}

type Balance struct {
	Balance float64 `json:"balance"`
}

type MempoolInfo struct {
	Size          int64   `json:"size"`
	Bytes         int64   `json:"bytes"`
	Usage         int64   `json:"usage"`
	MaxMempool    int64   `json:"maxmempool"`
	MempoolMinFee float64 `json:"mempoolminfee"`
	MinRelayTxFee float64 `json:"minrelaytxfee"`
}

type AddressValidation struct {
	IsValid        bool   `json:"isvalid"`
	Address        string `json:"address,omitempty"`
	ScriptPubKey   string `json:"scriptPubKey,omitempty"`
	IsScript       *bool  `json:"isscript,omitempty"`
	IsWitness      *bool  `json:"iswitness,omitempty"`
	WitnessVersion *int64 `json:"witness_version,omitempty"`
	WitnessProgram string `json:"witness_program,omitempty"`
}

type EstimateSmartFeeRequest struct {
	ConfTarget int64 `json:"confTarget"`
}

func (r EstimateSmartFeeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfTarget, validation.Required, validation.Min(int64(1))),
	)
}

// SmartFee is bitcoind's estimatesmartfee answer. FeeRate is nil when the
// node could not produce an estimate, in which case Errors says why.
type SmartFee struct {
	FeeRate *float64 `json:"feerate,omitempty"`
	Blocks  int64    `json:"blocks"`
	Errors  []string `json:"errors,omitempty"`
}

type BlockchainInfo struct {
	Chain                string  `json:"chain"`
	Blocks               int64   `json:"blocks"`
	Headers              int64   `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	Difficulty           float64 `json:"difficulty"`
	MedianTime           int64   `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	InitialBlockDownload bool    `json:"initialblockdownload"`
	ChainWork            string  `json:"chainwork"`
	SizeOnDisk           int64   `json:"size_on_disk"`
	Pruned               bool    `json:"pruned"`
	// Warnings is a string on older bitcoind and an array on newer ones.
	Warnings json.RawMessage `json:"warnings,omitempty"`
}
