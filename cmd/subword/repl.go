package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/logger"
	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/tokenizer"
)

func replCmd() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Encode lines interactively",
		Flags: []cli.Flag{
			modelFlag("path to a trained model (.json or .cbor)"),
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
			if stdinIsTTY() {
				fmt.Printf("subword %s (%s, %d tokens). Ctrl+D to exit.\n", f.ID, f.Strategy, tok.Vocabulary().Len())
			}

			le := newLineEditor(">>> ")
			for {
				if err := ctx.Err(); err != nil {
					return nil
				}
				line, err := le.ReadLine()
				if errors.Is(err, io.EOF) {
					if strings.TrimSpace(line) != "" {
						printEncoding(os.Stdout, tok, line)
					}
					return nil
				}
				if err != nil {
					return err
				}
				switch strings.TrimSpace(line) {
				case "":
					continue
				case ":q", ":quit", ":exit":
					return nil
				}
				printEncoding(os.Stdout, tok, line)
			}
		},
	}
}

// printEncoding writes line as token[id] pairs.
func printEncoding(w io.Writer, tok *tokenizer.Tokenizer, line string) {
	out, err := encodeTexts(tok, "", []string{line}, tokenizer.EncodeOptions{}, true)
	if err != nil {
		_, _ = fmt.Fprintln(w, "error:", err)
		return
	}
	_, _ = fmt.Fprintln(w, joinTokens(out.Tokens[0], out.IDs[0]))
}

func readPlainLine(r *bufio.Reader) (string, error) {
	s, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	return trimTrailingNewline(s), err
}

func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// decodeRune reports whether buf holds one complete UTF-8 encoded rune.
// Invalid sequences decode to utf8.RuneError so input never stalls.
func decodeRune(buf []byte) (rune, bool) {
	if !utf8.FullRune(buf) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(buf)
	return r, true
}
