package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ArkLabsHQ/cyphernode/internal/config"
	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"

	// cfg is loaded once in app.Before.
	cfg *config.Config

	qrFlag = &cli.BoolFlag{
		Name:  "qr",
		Usage: "also print the result as a QR code",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "cnctl"
	app.Usage = "talk to a cyphernode gateway"
	app.Version = version
	app.Description = "Every command reads its connection settings from CYPHERNODE_* environment variables."

	app.Before = func(*cli.Context) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		log.SetLevel(log.Level(loaded.LogLevel))
		cfg = loaded
		return nil
	}

	app.Commands = append(coreCommands, batcherCommand, watchCommand, lnCommand, listenCommand)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(_ *cli.Context) (*cyphernode.Client, error) {
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	return cyphernode.New(clientCfg)
}

// run builds a client and prints whatever fn returns as indented JSON.
func run[T any](fn func(ctx context.Context, client *cyphernode.Client, c *cli.Context) (T, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		res, err := fn(c.Context, client, c)
		if err != nil {
			return err
		}
		return printJSON(res)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printQR(c *cli.Context, content string) error {
	if !c.Bool(qrFlag.Name) || content == "" {
		return nil
	}
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to render qr code: %w", err)
	}
	fmt.Println(qr.ToString(false))
	return nil
}

// optionalID returns a pointer to the value of an int64 flag, or nil when
// the flag was not given.
func optionalID(c *cli.Context, name string) *int64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int64(name)
	return &v
}
