package main

import (
	"context"
	"fmt"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var lnCommand = &cli.Command{
	Name:  "ln",
	Usage: "drive the gateway's lightning node",
	Subcommands: []*cli.Command{
		{
			Name:  "getinfo",
			Usage: "node identity and announced addresses",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "uris", Usage: "print only the id@host:port connection URIs"},
			},
			Action: func(c *cli.Context) error {
				client, err := newClient(c)
				if err != nil {
					return err
				}
				info, err := client.LnGetInfo(c.Context)
				if err != nil {
					return err
				}
				if !c.Bool("uris") {
					return printJSON(info)
				}
				addrs, err := info.Addresses()
				if err != nil {
					return err
				}
				for _, a := range addrs {
					fmt.Println(a.URI(info.ID))
				}
				return nil
			},
		},
		{
			Name:  "newaddr",
			Usage: "address funding the lightning wallet",
			Flags: []cli.Flag{qrFlag},
			Action: func(c *cli.Context) error {
				client, err := newClient(c)
				if err != nil {
					return err
				}
				addr, err := client.LnNewAddr(c.Context)
				if err != nil {
					return err
				}
				if err := printJSON(addr); err != nil {
					return err
				}
				return printQR(c, "bitcoin:"+addr.Bech32)
			},
		},
		{
			Name:  "connectionstring",
			Usage: "id@host:port of the node",
			Flags: []cli.Flag{qrFlag},
			Action: func(c *cli.Context) error {
				client, err := newClient(c)
				if err != nil {
					return err
				}
				conn, err := client.LnGetConnectionString(c.Context)
				if err != nil {
					return err
				}
				if err := printJSON(conn); err != nil {
					return err
				}
				return printQR(c, conn.ConnectString)
			},
		},
		{
			Name:      "decode",
			Usage:     "decode a bolt11 invoice",
			ArgsUsage: "<bolt11>",
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.LnBolt11, error) {
				return client.LnDecodeBolt11(ctx, c.Args().First())
			}),
		},
		{
			Name:  "connectfund",
			Usage: "connect to a peer and open a channel",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "peer", Required: true, Usage: "<pubkey>@<host>[:port]"},
				&cli.Uint64Flag{Name: "msat", Required: true, Usage: "channel size in millisatoshis"},
				&cli.StringFlag{Name: "callback", Required: true, Usage: "URL called once the channel is ready"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.LnConnectFund, error) {
				return client.LnConnectFund(ctx, cyphernode.LnConnectFundRequest{
					Peer:          c.String("peer"),
					MilliSatoshis: c.Uint64("msat"),
					CallbackURL:   c.String("callback"),
				})
			}),
		},
		{
			Name:  "listfunds",
			Usage: "on-chain outputs and channel balances",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.LnListFunds, error) {
				return client.LnListFunds(ctx)
			}),
		},
		{
			Name:  "listpays",
			Usage: "outgoing payments",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.LnListPays, error) {
				return client.LnListPays(ctx)
			}),
		},
		{
			Name:  "listpeers",
			Usage: "peers and their channels",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.LnListPeers, error) {
				return client.LnListPeers(ctx)
			}),
		},
		{
			Name:  "getroute",
			Usage: "find a route to a node",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "node-id", Required: true},
				&cli.Uint64Flag{Name: "msat", Required: true},
				&cli.Float64Flag{Name: "risk", Value: 0, Usage: "risk factor"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.LnRoutes, error) {
				return client.LnGetRoute(ctx, c.String("node-id"), c.Uint64("msat"), c.Float64("risk"))
			}),
		},
		{
			Name:  "withdraw",
			Usage: "send on-chain funds out of the lightning wallet",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "destination", Required: true},
				&cli.Int64Flag{Name: "sat", Usage: "amount in satoshis"},
				&cli.StringFlag{
					Name:  "feerate",
					Value: string(cyphernode.WithdrawFeeRateNormal),
					Usage: "normal | urgent | slow",
				},
				&cli.BoolFlag{Name: "all", Usage: "withdraw everything"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.LnWithdraw, error) {
				req := cyphernode.NewLnWithdrawRequest(
					c.String("destination"),
					btcutil.Amount(c.Int64("sat")),
					cyphernode.WithdrawFeeRate(c.String("feerate")),
				)
				if c.Bool("all") {
					req.Satoshi = ""
					req.All = true
				}
				return client.LnWithdraw(ctx, req)
			}),
		},
	},
}
