package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `strategy: word
iterations: 250
max_length: 64
padding: true
model_path: /models/tok.cbor
corpus_dir: /data/corpus
log_level: debug
log_format: json
server_address: 0.0.0.0:9000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile returned error: %v", err)
	}
	if cfg.Strategy != "word" || cfg.ModelPath != "/models/tok.cbor" || cfg.CorpusDir != "/data/corpus" {
		t.Fatalf("unexpected string fields: %+v", cfg)
	}
	if cfg.Iterations == nil || *cfg.Iterations != 250 {
		t.Fatalf("unexpected iterations: %v", cfg.Iterations)
	}
	if cfg.MaxLength == nil || *cfg.MaxLength != 64 {
		t.Fatalf("unexpected max_length: %v", cfg.MaxLength)
	}
	if cfg.Padding == nil || !*cfg.Padding {
		t.Fatalf("unexpected padding: %v", cfg.Padding)
	}
	if cfg.ServerAddress != "0.0.0.0:9000" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected output fields: %+v", cfg)
	}
}

func TestLoadConfigMissingOrInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if cfg := LoadConfig(); cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(dir, "subword"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "subword", "config.yaml"), []byte("iterations: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if cfg := LoadConfig(); cfg != (Config{}) {
		t.Fatalf("expected zero config for invalid yaml, got %+v", cfg)
	}
}

// runFlags parses args against flags and calls fn inside the action so
// cmd.IsSet reflects the command line.
func runFlags(t *testing.T, flags []cli.Flag, args []string, fn func(cmd *cli.Command)) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestApplyEncodeConfigRespectsFlags(t *testing.T) {
	maxLen := int64(32)
	pad := true
	cfg := Config{ModelPath: "/cfg/model.json", MaxLength: &maxLen, Padding: &pad}

	var (
		maxLength int64
		padding   bool
	)
	flags := []cli.Flag{
		modelFlag("model"),
		&cli.Int64Flag{Name: "max-length", Destination: &maxLength},
		&cli.BoolFlag{Name: "padding", Destination: &padding},
	}

	runFlags(t, flags, []string{"--max-length", "8"}, func(cmd *cli.Command) {
		applyEncodeConfig(cmd, cfg, &maxLength, &padding)
	})
	if modelPath != "/cfg/model.json" {
		t.Fatalf("config model path not applied: %q", modelPath)
	}
	if maxLength != 8 {
		t.Fatalf("flag should win over config: got %d", maxLength)
	}
	if !padding {
		t.Fatalf("config padding not applied")
	}
}

func TestApplyTrainConfig(t *testing.T) {
	iters := int64(42)
	cfg := Config{Strategy: "word", Iterations: &iters, CorpusDir: "/cfg/corpus"}

	var (
		iterations int64 = 1000
		corpusDir  string
		out        string
	)
	flags := []cli.Flag{
		strategyFlag(),
		&cli.Int64Flag{Name: "iterations", Value: 1000, Destination: &iterations},
		&cli.StringFlag{Name: "out", Destination: &out},
	}

	runFlags(t, flags, []string{"--strategy", "bpe"}, func(cmd *cli.Command) {
		applyTrainConfig(cmd, cfg, &iterations, &corpusDir)
	})
	if strategyName != "bpe" {
		t.Fatalf("flag should win over config: got %q", strategyName)
	}
	if iterations != 42 {
		t.Fatalf("config iterations not applied: got %d", iterations)
	}
	if corpusDir != "/cfg/corpus" {
		t.Fatalf("config corpus dir not applied: got %q", corpusDir)
	}
}
