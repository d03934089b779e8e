package main

import (
	"context"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/urfave/cli/v2"
)

var (
	batcherIDFlag = &cli.Int64Flag{
		Name:  "id",
		Usage: "batcher id",
	}
	batcherLabelFlag = &cli.StringFlag{
		Name:  "label",
		Usage: "batcher label",
	}
	confTargetFlag = &cli.Int64Flag{
		Name:  "conf-target",
		Usage: "confirmation target in blocks",
	}
)

var batcherCommand = &cli.Command{
	Name:  "batcher",
	Usage: "manage payment batching",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a batcher",
			Flags: []cli.Flag{requiredFlag(batcherLabelFlag), confTargetFlag},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.CreateBatcherResponse, error) {
				return client.CreateBatcher(ctx, cyphernode.CreateBatcherRequest{
					BatcherLabel: c.String("label"),
					ConfTarget:   c.Int64("conf-target"),
				})
			}),
		},
		{
			Name:  "update",
			Usage: "change the confirmation target of a batcher",
			Flags: []cli.Flag{batcherIDFlag, batcherLabelFlag, confTargetFlag},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.UpdateBatcherResponse, error) {
				return client.UpdateBatcher(ctx, cyphernode.UpdateBatcherRequest{
					BatcherID:    optionalID(c, "id"),
					BatcherLabel: c.String("label"),
					ConfTarget:   c.Int64("conf-target"),
				})
			}),
		},
		{
			Name:  "add",
			Usage: "queue an output for the next batch",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address", Required: true, Usage: "destination address"},
				&cli.Float64Flag{Name: "amount", Required: true, Usage: "amount in BTC"},
				batcherIDFlag,
				batcherLabelFlag,
				&cli.StringFlag{Name: "output-label", Usage: "label of the output"},
				&cli.StringFlag{Name: "webhook", Usage: "URL called once the batch is sent"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.BatchInfo, error) {
				return client.AddToBatch(ctx, cyphernode.AddToBatchRequest{
					Address:      c.String("address"),
					Amount:       c.Float64("amount"),
					BatcherID:    optionalID(c, "id"),
					BatcherLabel: c.String("label"),
					OutputLabel:  c.String("output-label"),
					WebhookURL:   c.String("webhook"),
				})
			}),
		},
		{
			Name:  "remove",
			Usage: "remove a queued output",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "output-id", Required: true, Usage: "output id returned by add"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.BatchInfo, error) {
				return client.RemoveFromBatch(ctx, cyphernode.RemoveFromBatchRequest{
					OutputID: c.Int64("output-id"),
				})
			}),
		},
		{
			Name:  "get",
			Usage: "show a batcher",
			Flags: []cli.Flag{batcherIDFlag, batcherLabelFlag},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.BatcherSummary, error) {
				return client.GetBatcher(ctx, cyphernode.GetBatcherRequest{
					BatcherID:    optionalID(c, "id"),
					BatcherLabel: c.String("label"),
				})
			}),
		},
		{
			Name:  "details",
			Usage: "show a batch and its outputs",
			Flags: []cli.Flag{
				batcherIDFlag,
				batcherLabelFlag,
				&cli.StringFlag{Name: "txid", Usage: "a past batch, the pending one if unset"},
			},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.BatchDetails, error) {
				return client.GetBatchDetails(ctx, cyphernode.GetBatchDetailsRequest{
					BatcherID:    optionalID(c, "id"),
					BatcherLabel: c.String("label"),
					TxID:         c.String("txid"),
				})
			}),
		},
		{
			Name:  "list",
			Usage: "list batchers",
			Action: run(func(ctx context.Context, client *cyphernode.Client, _ *cli.Context) ([]cyphernode.BatcherSummary, error) {
				return client.ListBatchers(ctx)
			}),
		},
		{
			Name:  "spend",
			Usage: "send the pending batch",
			Flags: []cli.Flag{batcherIDFlag, batcherLabelFlag, confTargetFlag},
			Action: run(func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (*cyphernode.BatchSpendResult, error) {
				return client.BatchSpend(ctx, cyphernode.BatchSpendRequest{
					BatcherID:    optionalID(c, "id"),
					BatcherLabel: c.String("label"),
					ConfTarget:   optionalID(c, "conf-target"),
				})
			}),
		},
	},
}

func requiredFlag(f *cli.StringFlag) *cli.StringFlag {
	required := *f
	required.Required = true
	return &required
}
