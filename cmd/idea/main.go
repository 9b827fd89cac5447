package main

import (
	"fmt"
	"io"
	"os"

	"idea-go/pkg/config"
	"idea-go/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Version information - will be set at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// cfg is loaded by the app's Before hook and read by every command.
var cfg *config.Config

func newApp() *cli.App {
	return &cli.App{
		Name:    "idea",
		Usage:   "IDEA block cipher and CTR mode file encryption",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration `FILE` (default: idea.yaml in ., /etc/idea-go, ~/.idea-go)",
			},
			&cli.StringFlag{
				Name:  "log-db",
				Usage: "SQLite log database `PATH`, relative paths live in ~/.idea-go",
			},
			&cli.BoolFlag{
				Name:  "no-log-db",
				Usage: "Log to stderr only, without the SQLite database",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Also print log events to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: setup,
		After: func(*cli.Context) error {
			return log.Close()
		},
		Commands: []*cli.Command{
			ctrCommand,
			encryptCommand,
			decryptCommand,
			scheduleCommand,
			sealCommand,
			openCommand,
			benchCommand,
			logsCommand,
		},
	}
}

func setup(c *cli.Context) error {
	var err error
	cfg, err = config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load configuration: %v", err), 1)
	}
	if c.IsSet("log-db") {
		cfg.LogDB = c.String("log-db")
	}
	if c.IsSet("verbose") {
		cfg.ConsoleLog = c.Bool("verbose")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Bool("no-log-db") || cfg.LogDB == "" {
		log.SetStd(level)
		return nil
	}
	var console io.Writer
	if cfg.ConsoleLog {
		console = os.Stderr
	}
	if err := log.Init(cfg.LogDB, console); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize logger: %v", err), 1)
	}
	log.Debug().Str("config", cfg.ConfigFile).Str("log_db", cfg.LogDB).Msg("configuration loaded")
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
