package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/tokenizer"
)

func vocabCmd() *cli.Command {
	var limit int64

	return &cli.Command{
		Name:  "vocab",
		Usage: "List the vocabulary of a trained model",
		Flags: []cli.Flag{
			modelFlag("path to a trained model (.json or .cbor)"),
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"l"},
				Usage:       "show at most this many entries (0 = all)",
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyModelConfig(cmd, LoadConfig())
			path, err := resolveModelPath(modelPath)
			if err != nil {
				return err
			}
			tok, f, err := modelstore.LoadTokenizer(path, tokenizer.Options{Logger: logger.FromContext(ctx)})
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			fmt.Printf("model %s  strategy %s  iterations %d  size %d\n\n",
				f.ID, f.Strategy, f.Iterations, tok.Vocabulary().Len())
			renderVocab(os.Stdout, tok.Vocabulary(), int(limit))
			return nil
		},
	}
}

func renderVocab(w io.Writer, v *tokenizer.Vocabulary, limit int) {
	tokens := v.Tokens()
	if limit > 0 && limit < len(tokens) {
		tokens = tokens[:limit]
	}
	data := make([][]string, 0, len(tokens))
	for id, tok := range tokens {
		data = append(data, []string{strconv.Itoa(id), tok, strconv.Itoa(utf8.RuneCountInString(tok))})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "TOKEN", "LENGTH"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}
