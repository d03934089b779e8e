package main

import (
	"context"
	"errors"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/urfave/cli/v2"
)

var callbackFlags = []cli.Flag{
	&cli.StringFlag{Name: "unconfirmed-url", Required: true, Usage: "called on 0-conf"},
	&cli.StringFlag{Name: "confirmed-url", Required: true, Usage: "called on 1-conf"},
}

func callbacks(c *cli.Context) cyphernode.Callbacks {
	return cyphernode.Callbacks{
		UnconfirmedCallbackURL: c.String("unconfirmed-url"),
		ConfirmedCallbackURL:   c.String("confirmed-url"),
	}
}

var watchCommand = &cli.Command{
	Name:  "watch",
	Usage: "manage address and xpub watches",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "watch an address",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "address", Required: true},
				&cli.StringFlag{Name: "event-message", Usage: "base64 payload echoed in callbacks"},
				&cli.StringFlag{Name: "label"},
			}, callbackFlags...),
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.WatchedAddress, error) {
				return client.Watch(ctx, cyphernode.WatchRequest{
					Address:      c.String("address"),
					Callbacks:    callbacks(c),
					EventMessage: c.String("event-message"),
					Label:        c.String("label"),
				})
			}),
		},
		{
			Name:      "remove",
			Usage:     "stop watching an address",
			ArgsUsage: "<address>",
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.UnwatchedAddress, error) {
				return client.Unwatch(ctx, c.Args().First())
			}),
		},
		{
			Name:  "list",
			Usage: "list watched addresses",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.ActiveWatches, error) {
				return client.GetActiveWatches(ctx)
			}),
		},
		{
			Name:  "xpub-add",
			Usage: "watch the addresses derived from an xpub",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "label", Required: true},
				&cli.StringFlag{Name: "pub32", Required: true, Usage: "extended public key"},
				&cli.StringFlag{Name: "path", Value: "0/n", Usage: "derivation template ending with n"},
				&cli.Int64Flag{Name: "nstart", Usage: "first index to watch"},
			}, callbackFlags...),
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.WatchedXpub, error) {
				return client.WatchXpub(ctx, cyphernode.WatchXpubRequest{
					Label:     c.String("label"),
					Pub32:     c.String("pub32"),
					Path:      c.String("path"),
					NStart:    c.Int64("nstart"),
					Callbacks: callbacks(c),
				})
			}),
		},
		{
			Name:  "xpub-remove",
			Usage: "stop watching an xpub, selected by key or by label",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "pub32"},
				&cli.StringFlag{Name: "label"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.UnwatchedXpub, error) {
				switch {
				case c.IsSet("pub32"):
					return client.UnwatchXpubByXpub(ctx, c.String("pub32"))
				case c.IsSet("label"):
					return client.UnwatchXpubByLabel(ctx, c.String("label"))
				default:
					return nil, errors.New("one of --pub32 or --label is required")
				}
			}),
		},
		{
			Name:  "xpub-list",
			Usage: "list watched xpubs",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) (*cyphernode.ActiveXpubWatches, error) {
				return client.GetActiveXpubWatches(ctx)
			}),
		},
	},
}
