package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"restaurant/cmd"
	"restaurant/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Server startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := cmd.NewBuilder(cfg).Build(context.Background())
	if err != nil {
		return err
	}
	return app.Run()
}
