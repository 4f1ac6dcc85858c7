package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yaklang/memfit-dl/internal/site"
)

func runServe(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	var listen string

	flagSet := newFlagSet("serve", stderr)
	common.register(flagSet)
	flagSet.StringVar(&listen, "listen", "", "address to listen on, overrides the config file")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	env, err := common.load(stderr, isTerminal(stderr))
	if err != nil {
		return err
	}
	if listen == "" {
		listen = env.config.Listen
	}

	srv := site.New(env.logger, env.resolver, env.config.Locale(), listen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	select {
	case err := <-errCh:
		return err
	default:
	}

	env.logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
