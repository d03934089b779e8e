package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode/callback"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var listenCommand = &cli.Command{
	Name:  "listen",
	Usage: "receive watch callbacks and print them",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "public-url",
			Usage: "URL the gateway reaches this receiver at, used to print the callback URLs",
		},
	},
	Action: listen,
}

func listen(c *cli.Context) error {
	printNotification := func(_ context.Context, n callback.Notification) error {
		return printJSON(n)
	}
	cbCfg := callback.Config{
		OnUnconfirmed: printNotification,
		OnConfirmed:   printNotification,
		Logger:        log.WithField("cmd", "listen"),
	}
	if publicURL := c.String("public-url"); publicURL != "" {
		urls := cbCfg.Callbacks(publicURL)
		log.Infof("unconfirmed callback url: %s", urls.UnconfirmedCallbackURL)
		log.Infof("confirmed callback url: %s", urls.ConfirmedCallbackURL)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.CallbackPort),
		Handler:      callback.NewRouter(cbCfg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening for callbacks on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
