package main

import (
	"context"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/urfave/cli/v2"
)

var coreCommands = []*cli.Command{
	{
		Name:  "getnewaddress",
		Usage: "get a new address from the spending wallet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Value: string(cyphernode.AddressTypeBech32),
				Usage: "address type: bech32 | bech32m | p2sh-segwit | legacy",
			},
			&cli.StringFlag{Name: "label", Usage: "wallet label"},
			qrFlag,
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			addr, err := client.GetNewAddress(c.Context, cyphernode.NewAddressRequest{
				AddressType: cyphernode.AddressType(c.String("type")),
				Label:       c.String("label"),
			})
			if err != nil {
				return err
			}
			if err := printJSON(addr); err != nil {
				return err
			}
			return printQR(c, "bitcoin:"+addr.Address)
		},
	},
	{
		Name:  "getbalance",
		Usage: "spending wallet balance in BTC",
		Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.Balance, error) {
			return client.GetBalance(ctx)
		}),
	},
	{
		Name:  "getmempoolinfo",
		Usage: "bitcoind mempool statistics",
		Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.MempoolInfo, error) {
			return client.GetMempoolInfo(ctx)
		}),
	},
	{
		Name:  "getblockchaininfo",
		Usage: "bitcoind chain state",
		Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.BlockchainInfo, error) {
			return client.GetBlockchainInfo(ctx)
		}),
	},
	{
		Name:      "validateaddress",
		Usage:     "ask bitcoind whether an address is valid",
		ArgsUsage: "<address>",
		Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.AddressValidation, error) {
			return client.ValidateAddress(ctx, c.Args().First())
		}),
	},
	{
		Name:  "estimatesmartfee",
		Usage: "fee rate estimate in BTC/kvB",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "conf-target", Value: 6, Usage: "confirmation target in blocks"},
		},
		Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.SmartFee, error) {
			return client.EstimateSmartFee(ctx, cyphernode.EstimateSmartFeeRequest{
				ConfTarget: c.Int64("conf-target"),
			})
		}),
	},
}
