package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/dmalab/blogforge/internal"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/mcpserver"
	"github.com/dmalab/blogforge/internal/quill"
	pkgconfig "github.com/dmalab/blogforge/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.Bool("mcp") {
		return runMCP(cfg)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// runMCP serves the MCP tools over stdio instead of starting the HTTP server.
func runMCP(cfg *internal.Config) error {
	drafts, err := draftstore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init draft store: %w", err)
	}
	defer drafts.Close()

	conv := quill.NewConverter(cfg.Editor.BaseURL)
	conv.StaticPrefix = cfg.Editor.StaticPrefix
	conv.ImageBasePath = cfg.Editor.ImageBasePath

	return mcpserver.New(conv, drafts).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "blogforge",
		Usage:  "Blog draft workbench: converts generated blog documents to and from rich-text editor state, with draft persistence and publish-ready HTML export",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio instead of the HTTP server",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
