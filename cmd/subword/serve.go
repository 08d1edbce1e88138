package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/api"
	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/tokenizer"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		corpus      []string
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tokenizer REST API",
		Flags: []cli.Flag{
			modelFlag("model to load on start and to write on POST /v1/model/save"),
			strategyFlag(),
			&cli.StringSliceFlag{
				Name:        "corpus",
				Aliases:     []string{"c"},
				Usage:       "corpus file or directory to preload (repeatable)",
				Destination: &corpus,
			},
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, LoadConfig(), &addr)

			path, _ := resolveModelPath(modelPath)
			tok, err := loadOrCreate(log, path, cmd.IsSet("strategy"))
			if err != nil {
				return err
			}
			if len(corpus) > 0 {
				files, err := resolveCorpusFiles(corpus, "")
				if err != nil {
					return err
				}
				texts, err := readCorpus(ctx, files)
				if err != nil {
					return fmt.Errorf("read corpus: %w", err)
				}
				tok.Add(texts...)
				log.Info("corpus preloaded", "files", len(files), "texts", len(texts))
			}

			server := api.NewServer(tok, api.Config{Logger: log, ModelPath: path})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "strategy", tok.Strategy().Name(), "trained", tok.Trained())
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

// loadOrCreate loads the model at path when it exists and otherwise starts
// an empty tokenizer with the selected strategy. A loaded model keeps its own
// strategy; explicitStrategy reports whether --strategy was given.
func loadOrCreate(log logger.Logger, path string, explicitStrategy bool) (*tokenizer.Tokenizer, error) {
	opts := tokenizer.Options{Logger: log}
	if path != "" {
		tok, f, err := modelstore.LoadTokenizer(path, opts)
		switch {
		case err == nil:
			log.Info("model loaded", "path", path, "id", f.ID, "vocab_size", len(f.Tokens))
			if explicitStrategy && !strings.EqualFold(strings.TrimSpace(strategyName), f.Strategy) {
				log.Warn("ignoring --strategy, using the loaded model's strategy",
					"requested", strategyName,
					"model_strategy", f.Strategy,
					"path", path,
				)
			}
			return tok, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("load model: %w", err)
		}
	}
	strategy, err := tokenizer.NewStrategy(strategyName, opts)
	if err != nil {
		return nil, err
	}
	return tokenizer.New(strategy, opts), nil
}
