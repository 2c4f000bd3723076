package main

import (
	"fmt"
	"os"

	"github.com/appifylab/webinar-platform/internal/cli"
	"github.com/appifylab/webinar-platform/internal/client"
	"github.com/appifylab/webinar-platform/internal/session"
)

func main() {
	if err := run(); err != nil {
		cli.NewFormatter(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sessions, err := session.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	deps := &cli.Dependencies{
		Client: client.New(client.Options{
			BaseURL:            cfg.GatewayURL,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}),
		Sessions: sessions,
		Config:   cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
