// FILE: cmd/appconf-demo/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lixenwraith/appconf"
)

// serverComponent exposes the settings of a small demo server.
type serverComponent struct{}

func (s *serverComponent) ComponentName() string { return "Server" }

func (s *serverComponent) Traits() []appconf.Trait {
	return []appconf.Trait{
		{
			Name:         "host",
			Default:      "localhost",
			Help:         "Address the server binds to.",
			Configurable: true,
		},
		{
			Name:         "port",
			Default:      8080,
			Help:         "Port the server listens on.",
			Configurable: true,
		},
		{
			Name:         "compress",
			Default:      false,
			Help:         "Enable response compression.",
			Configurable: true,
		},
	}
}

func main() {
	server := &serverComponent{}

	app, err := appconf.NewBuilder().
		WithName("appconf-demo").
		WithDescription("Demonstrates declarative configuration with aliases and flags.").
		WithVersion("1.0.0").
		WithComponents(server).
		WithAliases(appconf.AliasTable{
			"host": "Server.host",
			"port": "Server.port",
		}).
		WithFlags(appconf.MergeFlagTables(
			appconf.BoolFlag("compress", "Server.compress", "", ""),
			appconf.FlagTable{
				"debug": {
					Patch: map[string]any{"Application": map[string]any{"log_level": 10}},
					Help:  "Set the log level to debug.",
				},
			},
		)).
		WithConfigFile("appconf-demo.toml").
		WithSearchPath(appconf.SearchPath("appconf-demo")...).
		WithArgs(os.Args[1:]).
		Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.LogLevel(),
	}))

	app.Subscribe(func(ch appconf.Change) {
		logger.Debug("config changed",
			"component", ch.Component,
			"setting", ch.Setting,
			"old", ch.Old,
			"new", ch.New)
	})

	if err := app.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host, _ := app.String("Server.host")
	port, _ := app.Int64("Server.port")
	compress, _ := app.Bool("Server.compress")

	logger.Info("resolved configuration",
		"host", host,
		"port", port,
		"compress", compress)
}
