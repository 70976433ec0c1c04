// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

// Package main implements the weather-aggregator service and its command line client.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/wneessen/weather-aggregator/internal/config"
	"github.com/wneessen/weather-aggregator/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI describes the command line interface.
type CLI struct {
	Config  string           `help:"Path to the config file." type:"path" short:"c"`
	EnvFile string           `help:"Path to a dotenv file that is loaded before the config." name:"env-file" default:".env"`
	Version kong.VersionFlag `help:"Print version information and quit."`

	Serve     ServeCmd     `cmd:"" default:"1" help:"Run the HTTP API server."`
	Weather   WeatherCmd   `cmd:"" help:"Print the current weather for a location."`
	Providers ProvidersCmd `cmd:"" help:"List the weather providers and their availability."`
	Lunar     LunarCmd     `cmd:"" help:"Print the current moon phase."`
	Solar     SolarCmd     `cmd:"" help:"Print sunrise, sunset and daylight information."`
}

// runtime is bound to every command.
type runtime struct {
	ctx  context.Context
	conf *config.Config
	log  *logger.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("weather-aggregator"),
		kong.Description("Aggregated weather data from multiple upstream providers."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " (commit: " + commit + ", built: " + date + ")"},
	)

	// Environment variables from a dotenv file take part in the config lookup
	if err := godotenv.Load(cli.EnvFile); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load dotenv file", slog.String("file", cli.EnvFile), logger.Err(err))
	}

	conf, err := loadConfig(cli.Config)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	if err = kctx.Run(&runtime{ctx: ctx, conf: conf, log: log}); err != nil {
		log.Error("command failed", slog.String("command", kctx.Command()), logger.Err(err))
		os.Exit(1)
	}
}

// loadConfig reads the config file given on the command line, the config file in the default
// location or, if neither exists, the defaults and the environment.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-aggregator", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
