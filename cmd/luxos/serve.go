package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"luxos/internal/logger"
	"luxos/internal/sshserver"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := sshserver.New(sshserver.Config{
		Addr:        cfg.SSHAddr,
		HostKeyPath: cfg.SSHHostKey,
		Console:     consoleOptions(cfg),
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}
	logger.Info("Serving LuxOS", "address", srv.Address())
	cmd.Printf("LuxOS listening on %s\n", srv.Address())

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-srv.Err():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	return serveErr
}
