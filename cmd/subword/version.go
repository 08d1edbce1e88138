package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/subword/internal/modelstore"
	"github.com/samcharles93/subword/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the trainer version and supported model format",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			writeVersion(os.Stdout, version.Resolve())
			return nil
		},
	}
}

// writeVersion prints the same trainer string that Save stamps into model
// files, followed by the model format this binary reads and writes.
func writeVersion(w io.Writer, info version.Info) {
	_, _ = fmt.Fprintf(w, "subword %s\n", version.String())
	_, _ = fmt.Fprintf(w, "model format: v%d (.json, .cbor)\n", modelstore.FormatVersion)
	if info.BuildTime != "" {
		_, _ = fmt.Fprintf(w, "built:        %s\n", info.BuildTime)
	}
}
