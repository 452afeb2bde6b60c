package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"restaurant/cmd"
	"restaurant/config"
	"restaurant/migrations"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// 用法: migrate [-config path] up|down|status|version|redo|reset
func main() {
	if err := run(); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	db, err := cmd.NewMySQLConfig(cfg).Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.Info("Running migrations", zap.String("command", command))
	return migrations.Run(context.Background(), sqlDB, command, args...)
}
