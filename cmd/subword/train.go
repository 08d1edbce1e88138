package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/normalize"
	"github.com/samcharles93/subword/internal/tokenizer"
)

func trainCmd() *cli.Command {
	var (
		corpus     []string
		texts      []string
		corpusDir  string
		iterations int64
		outPath    string
	)

	return &cli.Command{
		Name:  "train",
		Usage: "Build a vocabulary from a corpus and save it",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "corpus",
				Aliases:     []string{"c"},
				Usage:       "corpus file or directory of .txt files (repeatable)",
				Destination: &corpus,
			},
			&cli.StringSliceFlag{
				Name:        "text",
				Aliases:     []string{"t"},
				Usage:       "inline corpus text (repeatable), added after files",
				Destination: &texts,
			},
			&cli.StringFlag{
				Name:        "corpus-dir",
				Usage:       "directory of .txt files used when --corpus is not given",
				Destination: &corpusDir,
			},
			strategyFlag(),
			&cli.Int64Flag{
				Name:        "iterations",
				Aliases:     []string{"n"},
				Usage:       "number of merge iterations",
				Value:       1000,
				Destination: &iterations,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output model path (.json or .cbor)",
				Destination: &outPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyTrainConfig(cmd, LoadConfig(), &iterations, &corpusDir)
			if outPath == "" {
				outPath = modelPath
			}
			outPath = resolveModelOut(outPath)
			if _, err := modelstore.FormatForPath(outPath); err != nil {
				return err
			}

			var corpusTexts []string
			if len(corpus) > 0 || len(texts) == 0 {
				files, err := resolveCorpusFiles(corpus, corpusDir)
				if err != nil {
					return err
				}
				log.Info("reading corpus", "files", len(files))
				if corpusTexts, err = readCorpus(ctx, files); err != nil {
					return fmt.Errorf("read corpus: %w", err)
				}
			}
			corpusTexts = append(corpusTexts, texts...)

			opts := tokenizer.Options{
				Logger:     log,
				Normalizer: normalize.New(normalize.Options{Logger: log}),
			}
			strategy, err := tokenizer.NewStrategy(strategyName, opts)
			if err != nil {
				return err
			}
			tok := tokenizer.New(strategy, opts, corpusTexts...)

			start := time.Now()
			if err := tok.Train(int(iterations)); err != nil {
				return err
			}
			f, err := modelstore.FromTokenizer(tok, time.Now())
			if err != nil {
				return err
			}
			if err := modelstore.Save(outPath, f); err != nil {
				return fmt.Errorf("save model: %w", err)
			}
			log.Info("model saved",
				"path", outPath,
				"id", f.ID,
				"texts", len(corpusTexts),
				"vocab_size", tok.Vocabulary().Len(),
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
			return nil
		},
	}
}
