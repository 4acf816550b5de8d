// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/finanswer"
	"github.com/poiesic/finanswer/ai"
	"github.com/poiesic/finanswer/api"
	"github.com/poiesic/finanswer/config"
	"github.com/poiesic/finanswer/corpus"
	"github.com/poiesic/finanswer/delivery"
	"github.com/poiesic/finanswer/session"
)

func main() {
	app := &cli.App{
		Name:  "finanswer",
		Usage: "Financial question answering over a curated knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP question answering service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML configuration file",
						Value:   "config.yaml",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question from the command line",
				Action:    askCommand,
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "Path to the knowledge base JSON file",
						Value: "data/knowledge_base.json",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of candidates to retrieve",
						Value: 3,
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Rebuild the similarity index and persist its snapshot",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "Path to the knowledge base JSON file",
						Value: "data/knowledge_base.json",
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the index snapshot directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	assistant, err := finanswer.NewAssistant(ctx, cfg.Knowledge.CorpusPath,
		finanswer.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(cfg.Embedding.Host),
			ai.WithEmbeddingModel(cfg.Embedding.Model),
		)),
		finanswer.WithIndexPath(cfg.Knowledge.IndexPath),
		finanswer.WithTopK(cfg.Retrieval.TopK),
		finanswer.WithDistanceThreshold(cfg.Retrieval.DistanceThreshold),
	)
	if err != nil {
		return fmt.Errorf("starting assistant: %w", err)
	}
	defer assistant.Close()

	if cfg.Knowledge.Watch {
		watcher, err := corpus.NewWatcher(assistant.Corpus(), func() {
			if err := assistant.Reindex(ctx); err != nil {
				slog.Error("index rebuild after corpus change failed", "err", err)
			}
		})
		if err != nil {
			return fmt.Errorf("watching corpus file: %w", err)
		}
		defer watcher.Close()
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go watcher.Run(watchCtx)
	}

	dispatcherOpts := []delivery.Option{}
	if cfg.Integrations.Email.Enabled {
		dispatcherOpts = append(dispatcherOpts, delivery.WithEmail(cfg.Integrations.Email.DefaultRecipient))
	}
	if cfg.Integrations.WhatsApp.Enabled {
		dispatcherOpts = append(dispatcherOpts, delivery.WithWhatsApp(cfg.Integrations.WhatsApp.DefaultRecipient))
	}

	server, err := api.NewServer(api.ServerConfig{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	}, assistant, session.NewStore(), delivery.NewDispatcher(dispatcherOpts...))
	if err != nil {
		return fmt.Errorf("creating HTTP server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	}
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	assistant, err := finanswer.NewAssistant(ctx, c.String("corpus"),
		finanswer.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)),
		finanswer.WithTopK(c.Int("top-k")),
	)
	if err != nil {
		return fmt.Errorf("starting assistant: %w", err)
	}
	defer assistant.Close()

	fmt.Println(assistant.Answer(ctx, question, nil))
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := finanswer.NewAssistant(ctx, c.String("corpus"),
		finanswer.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)),
		finanswer.WithIndexPath(c.String("db")),
	)
	if err != nil {
		return fmt.Errorf("starting assistant: %w", err)
	}
	defer assistant.Close()

	store := assistant.Corpus()
	if err := assistant.Reload(ctx); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Corpus: %s (%d items)\n", store.Path(), store.Len())
	fmt.Fprintf(os.Stderr, "Index snapshot: %s\n", c.String("db"))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
