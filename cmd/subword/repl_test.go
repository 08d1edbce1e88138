package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samcharles93/subword/internal/tokenizer"
)

func TestPrintEncodingMatchesEncode(t *testing.T) {
	tok := trainedTokenizer(t)

	var buf bytes.Buffer
	printEncoding(&buf, tok, "Lowest!")
	got := strings.TrimSpace(buf.String())

	out, err := encodeTexts(tok, "", []string{"Lowest!"}, tokenizer.EncodeOptions{}, true)
	if err != nil {
		t.Fatalf("encodeTexts: %v", err)
	}
	if want := joinTokens(out.Tokens[0], out.IDs[0]); got != want {
		t.Fatalf("repl output diverges from encode: got %q want %q", got, want)
	}
	if !strings.HasPrefix(got, "lo[0] w[1] e[2]") {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestPrintEncodingUntrained(t *testing.T) {
	var buf bytes.Buffer
	printEncoding(&buf, tokenizer.NewBPE(tokenizer.Options{}, "abc"), "abc")
	if !strings.HasPrefix(buf.String(), "error:") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}
