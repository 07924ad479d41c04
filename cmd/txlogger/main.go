// Command txlogger runs the cross-chain transfer logger: it scrapes a set
// of configured minters, reconciles their events into the transfer store,
// persists the store in a badger-backed cell, and serves the read-only
// query API over HTTP. Its App/flags/Action shape follows cmd/kcn/main.go.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	elog "github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/Appic-Solutions/trsansaction-logger/api"
	"github.com/Appic-Solutions/trsansaction-logger/config"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi"
	"github.com/Appic-Solutions/trsansaction-logger/persist"
	"github.com/Appic-Solutions/trsansaction-logger/scheduler"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

var logger = elog.New("module", "cmd/txlogger")

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "path to the logger's TOML configuration file",
	Value: "./txlogger.toml",
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "txlogger",
		Usage: "cross-chain minter event reconciliation service",
		Flags: []cli.Flag{configFlag},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.String(configFlag.Name))
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Crit("fatal error", "err", err)
	}
}

func run(ctx context.Context, configPath string) error {
	args, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("txlogger: loading config: %w", err)
	}

	cell, err := persist.Open(args.DataDir)
	if err != nil {
		return fmt.Errorf("txlogger: opening persistence cell: %w", err)
	}
	defer cell.Close()

	if err := initializeState(cell, args); err != nil {
		return fmt.Errorf("txlogger: initializing state: %w", err)
	}

	clients, err := buildMinterClients(args)
	if err != nil {
		return fmt.Errorf("txlogger: building minter clients: %w", err)
	}

	sched := scheduler.New(cell, clients)
	if err := sched.Start(args.ScrapeSchedule, args.ReapSchedule); err != nil {
		return fmt.Errorf("txlogger: starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{Addr: args.HTTPAddr, Handler: api.New(cell).Handler()}
	go func() {
		logger.Info("serving query api", "addr", args.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server stopped", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case <-sigCh:
	}

	logger.Info("shutting down")
	return srv.Shutdown(context.Background())
}

func initializeState(cell *persist.Cell, args config.InitArgs) error {
	initialized, err := cell.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}

	s := store.NewState()
	for _, minterArgs := range args.Minters {
		m, err := minterArgs.Minter()
		if err != nil {
			return err
		}
		s.RecordMinter(m)
	}
	for _, pairArgs := range args.TokenPairs {
		id, ledgerID, oprator, err := pairArgs.TokenPair()
		if err != nil {
			return err
		}
		s.RecordErc20TwinPair(id, ledgerID, oprator)
	}
	return cell.Init(s)
}

func buildMinterClients(args config.InitArgs) ([]scheduler.MinterClient, error) {
	var clients []scheduler.MinterClient
	for _, minterArgs := range args.Minters {
		m, err := minterArgs.Minter()
		if err != nil {
			return nil, err
		}

		key := store.MinterKeyOf(m)
		label := fmt.Sprintf("%s-%d", m.Oprator, m.ChainID)

		switch m.Oprator {
		case store.OpratorAppicMinter:
			clients = append(clients, scheduler.MinterClient{
				Key:   key,
				Label: label,
				Appic: minterapi.NewHTTPAppicClient(minterArgs.Endpoint, http.DefaultClient),
			})
		case store.OpratorDfinityCkEthMinter:
			clients = append(clients, scheduler.MinterClient{
				Key:     key,
				Label:   label,
				Dfinity: minterapi.NewHTTPDfinityClient(minterArgs.Endpoint, http.DefaultClient),
			})
		}
	}
	return clients, nil
}
