package cyphernode

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
)

type LnInfo struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
	Color string `json:"color"`
	// Address holds the announced addresses as sent by lightningd. Use
	// Addresses for a typed view.
	Address     []any     `json:"address"`
	Binding     []Binding `json:"binding"`
	Version     string    `json:"version"`
	BlockHeight int64     `json:"blockheight"`
	Network     string    `json:"network"`
}

type Binding struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Port    int64  `json:"port"`
}

// NodeAddress is an announced node address. Type is one of ipv4, ipv6,
// torv2, torv3 or dns depending on the lightningd version.
type NodeAddress struct {
	Type    string `mapstructure:"type"`
	Address string `mapstructure:"address"`
	Port    int64  `mapstructure:"port"`
}

// Addresses decodes the announced addresses.
func (i LnInfo) Addresses() ([]NodeAddress, error) {
	addrs := make([]NodeAddress, 0, len(i.Address))
	for n, raw := range i.Address {
		var addr NodeAddress
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &addr,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("address[%d]: %w", n, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// URI returns the id@host:port form peers connect to.
func (a NodeAddress) URI(nodeID string) string {
	host := a.Address
	if a.Type == "ipv6" {
		host = "[" + host + "]"
	}
	return fmt.Sprintf("%s@%s:%d", nodeID, host, a.Port)
}

type LnFundAddress struct {
	Bech32 string `json:"bech32"`
}

type LnConnString struct {
	ConnectString string `json:"connectstring"`
}

type LnBolt11 struct {
	Currency           string `json:"currency"`
	CreatedAt          int64  `json:"created_at"`
	Expiry             int64  `json:"expiry"`
	Payee              string `json:"payee"`
	Description        string `json:"description,omitempty"`
	DescriptionHash    string `json:"description_hash,omitempty"`
	MinFinalCLTVExpiry int64  `json:"min_final_cltv_expiry"`
	PaymentHash        string `json:"payment_hash"`
	Signature          string `json:"signature"`
	// Amountless invoices carry neither field.
	MilliSatoshis *uint64 `json:"msatoshi,omitempty"`
	AmountMsat    *Msat   `json:"amount_msat,omitempty"`
}

// LnConnectFundRequest connects to Peer, given as <pubkey>@<host>[:port],
// and opens a channel of MilliSatoshis with it.
type LnConnectFundRequest struct {
	Peer          string `json:"peer"`
	MilliSatoshis uint64 `json:"msatoshi"`
	CallbackURL   string `json:"callbackUrl"`
}

func (r LnConnectFundRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Peer, validation.Required, validation.Match(peerRegexp)),
		validation.Field(&r.MilliSatoshis, validation.Required),
		validation.Field(&r.CallbackURL, validation.Required),
	)
}

type LnConnectFund struct {
	Result    string `json:"result"`
	TxID      string `json:"txid"`
	ChannelID string `json:"channel_id"`
}

type LnListFunds struct {
	Outputs  []FundOutput  `json:"outputs"`
	Channels []FundChannel `json:"channels"`
}

type FundOutput struct {
	TxID       string `json:"txid"`
	Output     int64  `json:"output"`
	Value      int64  `json:"value"`
	AmountMsat Msat   `json:"amount_msat"`
	Address    string `json:"address,omitempty"`
	Status     string `json:"status"`
	// BlockHeight is unset for unconfirmed outputs.
	BlockHeight *int64 `json:"blockheight,omitempty"`
}

type FundChannel struct {
	PeerID          string `json:"peer_id"`
	Connected       bool   `json:"connected"`
	State           string `json:"state"`
	ShortChannelID  string `json:"short_channel_id,omitempty"`
	ChannelSat      int64  `json:"channel_sat"`
	OurAmountMsat   Msat   `json:"our_amount_msat"`
	ChannelTotalSat int64  `json:"channel_total_sat"`
	AmountMsat      Msat   `json:"amount_msat"`
	FundingTxID     string `json:"funding_txid"`
	FundingOutput   int64  `json:"funding_output"`
}

// LnListPays lists outgoing payments. lightningd omits most fields
// depending on the payment state.
type LnListPays struct {
	Pays []Pay `json:"pays"`
}

type Pay struct {
	Bolt11         string `json:"bolt11,omitempty"`
	PaymentHash    string `json:"payment_hash,omitempty"`
	Status         string `json:"status,omitempty"`
	Preimage       string `json:"preimage,omitempty"`
	AmountMsat     *Msat  `json:"amount_msat,omitempty"`
	AmountSentMsat *Msat  `json:"amount_sent_msat,omitempty"`
	CreatedAt      int64  `json:"created_at,omitempty"`
}

type LnListPeers struct {
	Peers []Peer `json:"peers"`
}

type Peer struct {
	ID        string        `json:"id"`
	Connected bool          `json:"connected"`
	NetAddr   []string      `json:"netaddr,omitempty"`
	Features  string        `json:"features,omitempty"`
	Channels  []PeerChannel `json:"channels,omitempty"`
}

type PeerChannel struct {
	State          string   `json:"state"`
	ShortChannelID string   `json:"short_channel_id,omitempty"`
	Direction      *int64   `json:"direction,omitempty"`
	ChannelID      string   `json:"channel_id"`
	FundingTxID    string   `json:"funding_txid"`
	Private        bool     `json:"private"`
	ToUsMsat       Msat     `json:"to_us_msat,omitempty"`
	TotalMsat      Msat     `json:"total_msat,omitempty"`
	SpendableMsat  Msat     `json:"spendable_msat,omitempty"`
	Status         []string `json:"status,omitempty"`
}

type LnRoutes struct {
	Route []Route `json:"route"`
}

// Route is one hop of a route returned by getroute.
type Route struct {
	ID            string `json:"id"`
	Channel       string `json:"channel"`
	Direction     int64  `json:"direction"`
	MilliSatoshis uint64 `json:"msatoshi"`
	AmountMsat    Msat   `json:"amount_msat"`
	Delay         int64  `json:"delay"`
	Style         string `json:"style,omitempty"`
}

type WithdrawFeeRate string

const (
	WithdrawFeeRateNormal WithdrawFeeRate = "normal"
	WithdrawFeeRateUrgent WithdrawFeeRate = "urgent"
	WithdrawFeeRateSlow   WithdrawFeeRate = "slow"
)

// LnWithdrawRequest sends on-chain funds from the lightning wallet.
// Satoshi is an integer amount of satoshis or an 8 decimals BTC amount,
// and is ignored when All is set.
type LnWithdrawRequest struct {
	Destination string          `json:"destination"`
	Satoshi     string          `json:"satoshi"`
	FeeRate     WithdrawFeeRate `json:"feerate,omitempty"`
	All         bool            `json:"all"`
}

// NewLnWithdrawRequest builds a withdrawal of amount to destination.
func NewLnWithdrawRequest(destination string, amount btcutil.Amount, feeRate WithdrawFeeRate) LnWithdrawRequest {
	return LnWithdrawRequest{
		Destination: destination,
		Satoshi:     strconv.FormatInt(int64(amount), 10),
		FeeRate:     feeRate,
	}
}

func (r LnWithdrawRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Destination, validation.Required),
		validation.Field(&r.Satoshi, validation.When(!r.All, validation.Required)),
		validation.Field(&r.FeeRate, validation.In(
			WithdrawFeeRateNormal, WithdrawFeeRateUrgent, WithdrawFeeRateSlow,
		)),
	)
}

type LnWithdraw struct {
	Tx   string `json:"tx"`
	TxID string `json:"txid"`
}
