package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
	}
}

func TestResolveModelPath(t *testing.T) {
	t.Run("flag bypasses env", func(t *testing.T) {
		t.Setenv(envSubwordModel, "/env/model.json")
		got, err := resolveModelPath(" /tmp/model.json ")
		if err != nil {
			t.Fatalf("resolveModelPath returned error: %v", err)
		}
		if got != filepath.Clean("/tmp/model.json") {
			t.Fatalf("unexpected model path: got %q", got)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(envSubwordModel, "/env/./model.cbor")
		got, err := resolveModelPath("")
		if err != nil {
			t.Fatalf("resolveModelPath returned error: %v", err)
		}
		if got != filepath.Clean("/env/model.cbor") {
			t.Fatalf("unexpected model path: got %q", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv(envSubwordModel, "")
		if _, err := resolveModelPath(""); err == nil {
			t.Fatalf("expected error without flag or env")
		}
		if got := resolveModelOut(""); got != defaultModelPath {
			t.Fatalf("unexpected default output: got %q", got)
		}
	})
}

func TestDiscoverCorpusFilesSorted(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":        "x",
		"A.TXT":        "x",
		"notes.md":     "x",
		"sub/deep.txt": "x",
	})

	got, err := discoverCorpusFiles(dir)
	if err != nil {
		t.Fatalf("discoverCorpusFiles returned error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "A.TXT"),
		filepath.Join(dir, "b.txt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected files: got %q want %q", got, want)
	}
}

func TestResolveCorpusFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"corpus/2.txt": "two",
		"corpus/1.txt": "one",
		"extra.dat":    "extra",
		"empty/x.md":   "",
	})

	t.Run("files and directories keep argument order", func(t *testing.T) {
		got, err := resolveCorpusFiles([]string{filepath.Join(dir, "extra.dat"), filepath.Join(dir, "corpus")}, "")
		if err != nil {
			t.Fatalf("resolveCorpusFiles returned error: %v", err)
		}
		want := []string{
			filepath.Join(dir, "extra.dat"),
			filepath.Join(dir, "corpus", "1.txt"),
			filepath.Join(dir, "corpus", "2.txt"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected files: got %q want %q", got, want)
		}
	})

	t.Run("env corpus dir", func(t *testing.T) {
		t.Setenv(envSubwordCorpusDir, filepath.Join(dir, "corpus"))
		got, err := resolveCorpusFiles(nil, "")
		if err != nil {
			t.Fatalf("resolveCorpusFiles returned error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected file count: got %d", len(got))
		}
	})

	t.Run("directory without text files", func(t *testing.T) {
		if _, err := resolveCorpusFiles([]string{filepath.Join(dir, "empty")}, ""); err == nil {
			t.Fatalf("expected error for directory without .txt files")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(envSubwordCorpusDir, "")
		if _, err := resolveCorpusFiles(nil, ""); err == nil {
			t.Fatalf("expected error without corpus")
		}
	})
}

func TestReadCorpusKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 20; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".txt")
		body := strings.Repeat(" ", i) + string(rune('a'+i)) + "\n\n  \r\n" + string(rune('A'+i)) + "\r\n"
		if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		files = append(files, name)
	}

	got, err := readCorpus(context.Background(), files)
	if err != nil {
		t.Fatalf("readCorpus returned error: %v", err)
	}
	if len(got) != 40 {
		t.Fatalf("unexpected text count: got %d", len(got))
	}
	for i := 0; i < 20; i++ {
		if got[2*i] != string(rune('a'+i)) || got[2*i+1] != string(rune('A'+i)) {
			t.Fatalf("unexpected texts at file %d: %q %q", i, got[2*i], got[2*i+1])
		}
	}

	if _, err := readCorpus(context.Background(), append(files, filepath.Join(dir, "missing.txt"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
