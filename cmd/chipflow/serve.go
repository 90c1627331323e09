package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/chipflow/cmd/chipflow/shared"
	"github.com/lox/chipflow/internal/inventory"
	"github.com/lox/chipflow/internal/server"
)

// ServeCmd runs the distribution API server
type ServeCmd struct {
	Config string `kong:"default='chipflow.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := inventory.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	level := cfg.Server.LogLevel
	if c.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	store := inventory.NewStore(cfg.Inventory)
	s := server.NewServer(logger, store)

	logger.Info("Starting chipflow server",
		"addr", addr,
		"denominations", len(cfg.Inventory),
		"inventory_value", store.TotalValue())

	ctx := shared.SetupSignalHandler(logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
