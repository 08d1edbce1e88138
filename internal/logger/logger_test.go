package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDiscardIsSilent(t *testing.T) {
	t.Parallel()
	log := Discard()
	if log == nil {
		t.Fatal("Discard() returned nil")
	}
	log.Info("dropped")
	log.With("k", "v").WithGroup("g").Error("dropped too")
}

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("trained", "merges", 3)

	out := buf.String()
	if !strings.Contains(out, `"msg":"trained"`) {
		t.Fatalf("expected msg in output, got: %s", out)
	}
	if !strings.Contains(out, `"merges":3`) {
		t.Fatalf("expected merges attr in output, got: %s", out)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("hidden")
	if buf.Len() > 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn record, got: %s", buf.String())
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"pretty", "hello"},
		{"", "hello"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log, err := Open(&buf, tc.format, "info")
			if err != nil {
				t.Fatalf("Open(%q): %v", tc.format, err)
			}
			log.Info("hello")
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("Open(%q): expected %q in %q", tc.format, tc.want, buf.String())
			}
		})
	}

	if _, err := Open(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), JSON(&buf, slog.LevelInfo))
	FromContext(ctx).Info("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelInfo}, // case-sensitive
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyHandlerGroupsAndAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("strategy", "bpe")}).WithGroup("merge").WithGroup("pair"))
	log.Info("selected", "freq", 3)

	out := buf.String()
	if !strings.Contains(out, "strategy=bpe") {
		t.Fatalf("expected handler attr, got: %s", out)
	}
	if !strings.Contains(out, "merge.pair.freq=3") {
		t.Fatalf("expected nested group key, got: %s", out)
	}
	if h.WithGroup("") != h {
		t.Fatal("WithGroup(\"\") should return the same handler")
	}
}

func TestPrettyQuotesTokens(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil))
	log.Warn("unclassified apostrophe", "word", `rock'n'roll`, "marker", `<\w>`, "text", "two words")

	out := buf.String()
	if !strings.Contains(out, "word=rock'n'roll") {
		t.Fatalf("plain word should not be quoted, got: %s", out)
	}
	if !strings.Contains(out, `marker="<\\w>"`) {
		t.Fatalf("expected backslash token to be quoted, got: %s", out)
	}
	if !strings.Contains(out, `text="two words"`) {
		t.Fatalf("expected spaced value to be quoted, got: %s", out)
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"simple", false},
		{"", false},
		{"has space", true},
		{"has\ttab", true},
		{`has"quote`, true},
		{`back\slash`, true},
		{"k=v", true},
	}
	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.want {
			t.Errorf("needsQuoting(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
