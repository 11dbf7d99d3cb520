// Reactor-demo is a small showcase application for the reactor runtime:
// a tick-driven counter with key handling, mouse tracking, and a styled
// status line. It doubles as a manual smoke test for the render loop.
//
// Usage:
//
//	reactor-demo [flags]
//
// See 'reactor-demo --help' for available flags.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/reactor"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "reactor-demo",
	Short: "Reactor runtime showcase",
	Long: `A tick-driven demo application built on the reactor runtime.

Shows decoded key and mouse events, a counter advanced by the tick
scheduler, and terminal resize handling. Press q or ctrl+c to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "reactor-demo.yaml", "path to config file")
}

func runDemo(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := reactor.LogFromEnv(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := []reactor.Option{
		reactor.WithFPS(cfg.FPS),
		reactor.WithLogger(logger),
	}
	if cfg.AltScreen {
		opts = append(opts, reactor.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, reactor.WithMouse())
	}

	if ctx == nil {
		ctx = context.Background()
	}
	p := reactor.NewProgram(newDemo(cfg), opts...)
	return p.Run(ctx)
}
