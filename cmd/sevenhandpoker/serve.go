package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Jyouping/sevenhandpoker/internal/config"
	"github.com/Jyouping/sevenhandpoker/internal/server"
	"github.com/Jyouping/sevenhandpoker/internal/statistics"
)

// ServeCmd runs the WebSocket game server
type ServeCmd struct {
	Config string `help:"Path to HCL config file" default:"sevenhandpoker.hcl"`
	Addr   string `help:"Override the configured listen address"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	// Optional .env for deploy-time overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := cfg.ListenAddr()
	if env := os.Getenv("SEVENHANDPOKER_ADDR"); env != "" {
		addr = env
	}
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)
	ctx := setupSignalHandler(logger)

	srv := server.NewServer(server.Options{
		Addr:      addr,
		AILevel:   cfg.AILevel(),
		AITuning:  cfg.AITuning(),
		StepDelay: time.Duration(cfg.Server.AIStepDelayMS) * time.Millisecond,
		Stats:     statistics.NewFileStore(cfg.Stats.Path),
	}, logger)

	return srv.Run(ctx)
}
