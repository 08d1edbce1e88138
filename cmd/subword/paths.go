package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	envSubwordCorpusDir = "SUBWORD_CORPUS_DIR"
	envSubwordModel     = "SUBWORD_MODEL"

	defaultModelPath = "tokenizer.json"
	corpusReadLimit  = 8
)

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

// resolveModelPath returns the model to load: the flag (or config value),
// then $SUBWORD_MODEL.
func resolveModelPath(modelFlag string) (string, error) {
	modelFlag = strings.TrimSpace(modelFlag)
	if modelFlag != "" {
		return filepath.Clean(modelFlag), nil
	}
	if env := strings.TrimSpace(os.Getenv(envSubwordModel)); env != "" {
		return filepath.Clean(env), nil
	}
	return "", fmt.Errorf("--model is required unless %s is set", envSubwordModel)
}

// resolveModelOut is resolveModelPath for commands that write a model and
// therefore have a default.
func resolveModelOut(outFlag string) string {
	p, err := resolveModelPath(outFlag)
	if err != nil {
		return defaultModelPath
	}
	return p
}

// resolveCorpusFiles expands corpus arguments into a list of files. Each
// argument is a file or a directory of .txt files. With no arguments the
// corpus directory (flag, config or $SUBWORD_CORPUS_DIR) is used.
func resolveCorpusFiles(args []string, corpusDir string) ([]string, error) {
	if len(args) == 0 {
		dir := strings.TrimSpace(corpusDir)
		if dir == "" {
			dir = strings.TrimSpace(os.Getenv(envSubwordCorpusDir))
		}
		if dir == "" {
			return nil, fmt.Errorf("no corpus given; pass --corpus or set %s", envSubwordCorpusDir)
		}
		args = []string{dir}
	}

	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			files = append(files, filepath.Clean(arg))
			continue
		}
		found, err := discoverCorpusFiles(arg)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no .txt files found in %s", arg)
		}
		files = append(files, found...)
	}
	return files, nil
}

func discoverCorpusFiles(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("corpus directory is empty")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// readCorpus reads files concurrently and returns their texts in file
// order. Every non-blank line is one text.
func readCorpus(ctx context.Context, files []string) ([]string, error) {
	perFile := make([][]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(corpusReadLimit)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = splitTexts(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var texts []string
	for _, t := range perFile {
		texts = append(texts, t...)
	}
	return texts, nil
}

func splitTexts(data []byte) []string {
	var texts []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	return texts
}

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}
