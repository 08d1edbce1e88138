package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/tokenizer"
)

type encodeOutput struct {
	Model  string     `json:"model"`
	IDs    [][]int    `json:"ids"`
	Tokens [][]string `json:"tokens,omitempty"`
}

func encodeCmd() *cli.Command {
	var (
		texts      []string
		padding    bool
		maxLength  int64
		showTokens bool
	)

	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode texts with a trained model and print JSON",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			modelFlag("path to a trained model (.json or .cbor)"),
			&cli.StringSliceFlag{
				Name:        "text",
				Aliases:     []string{"t"},
				Usage:       "text to encode (repeatable); stdin lines are used when no text is given",
				Destination: &texts,
			},
			&cli.BoolFlag{
				Name:        "padding",
				Usage:       "pad every sequence to the longest one",
				Destination: &padding,
			},
			&cli.Int64Flag{
				Name:        "max-length",
				Usage:       "truncate each text to this many tokens (0 = no limit)",
				Destination: &maxLength,
			},
			&cli.BoolFlag{
				Name:        "tokens",
				Usage:       "include token strings in the output",
				Destination: &showTokens,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyEncodeConfig(cmd, LoadConfig(), &maxLength, &padding)
			if maxLength < 0 {
				return fmt.Errorf("--max-length must not be negative")
			}
			path, err := resolveModelPath(modelPath)
			if err != nil {
				return err
			}
			tok, f, err := modelstore.LoadTokenizer(path, tokenizer.Options{Logger: log})
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			log.Debug("model loaded", "path", path, "id", f.ID, "vocab_size", len(f.Tokens))

			inputs := append(append([]string(nil), texts...), cmd.Args().Slice()...)
			if len(inputs) == 0 {
				if inputs, err = readStdinTexts(os.Stdin); err != nil {
					return err
				}
			}
			out, err := encodeTexts(tok, f.ID, inputs, tokenizer.EncodeOptions{
				Padding:   padding,
				MaxLength: int(maxLength),
			}, showTokens)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func encodeTexts(tok *tokenizer.Tokenizer, modelID string, texts []string, opts tokenizer.EncodeOptions, withTokens bool) (encodeOutput, error) {
	ids, err := tok.EncodeBatch(texts, opts)
	if err != nil {
		return encodeOutput{}, err
	}
	out := encodeOutput{Model: modelID, IDs: ids}
	if withTokens {
		if out.Tokens, err = tok.TokenizeBatch(texts, opts); err != nil {
			return encodeOutput{}, err
		}
	}
	return out, nil
}

func readStdinTexts(r io.Reader) ([]string, error) {
	if stdinIsTTY() {
		return nil, fmt.Errorf("no input: pass --text or pipe text on stdin")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	texts := splitTexts(data)
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input: stdin was empty")
	}
	return texts, nil
}

// joinTokens renders a token sequence for humans; IDs are printed alongside.
func joinTokens(tokens []string, ids []int) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s[%d]", t, ids[i])
	}
	return b.String()
}
