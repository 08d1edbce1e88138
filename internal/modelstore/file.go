// Package modelstore reads and writes trained tokenizers. Files ending in
// .json are indented JSON; files ending in .cbor are CBOR. Both carry the
// same document.
package modelstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/samcharles93/subword/internal/tokenizer"
	"github.com/samcharles93/subword/internal/version"
)

// FormatVersion is the document version written by Save. Load rejects
// documents with a different major version.
const FormatVersion = 1

var (
	ErrUnsupportedFormat  = errors.New("modelstore: unsupported file extension")
	ErrUnsupportedVersion = errors.New("modelstore: unsupported format version")
	ErrCorruptFile        = errors.New("modelstore: corrupt model file")
)

type Format int

const (
	FormatJSON Format = iota + 1
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q (want .json or .cbor)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// File is the on-disk document.
type File struct {
	FormatVersion  int                   `json:"format_version" cbor:"format_version"`
	ID             string                `json:"id" cbor:"id"`
	Strategy       string                `json:"strategy" cbor:"strategy"`
	Iterations     int                   `json:"iterations" cbor:"iterations"`
	CreatedAt      int64                 `json:"created_at" cbor:"created_at"`
	TrainerVersion string                `json:"trainer_version,omitempty" cbor:"trainer_version,omitempty"`
	Tokens         []string              `json:"tokens" cbor:"tokens"`
	WordFreq       []tokenizer.WordCount `json:"word_freq" cbor:"word_freq"`
}

// FromTokenizer captures a trained tokenizer.
func FromTokenizer(t *tokenizer.Tokenizer, now time.Time) (File, error) {
	if !t.Trained() {
		return File{}, tokenizer.ErrUntrained
	}
	snap := t.Snapshot()
	return File{
		FormatVersion:  FormatVersion,
		ID:             "tok_" + uuid.NewString(),
		Strategy:       snap.Strategy,
		Iterations:     snap.Iterations,
		CreatedAt:      now.Unix(),
		TrainerVersion: version.String(),
		Tokens:         snap.Tokens,
		WordFreq:       snap.WordFreq,
	}, nil
}

// Tokenizer rebuilds a trained tokenizer from the document.
func (f File) Tokenizer(opts tokenizer.Options) (*tokenizer.Tokenizer, error) {
	if len(f.Tokens) == 0 {
		return nil, fmt.Errorf("%w: no vocabulary", ErrCorruptFile)
	}
	t, err := tokenizer.Restore(tokenizer.Snapshot{
		Strategy:   f.Strategy,
		Iterations: f.Iterations,
		WordFreq:   f.WordFreq,
		Tokens:     f.Tokens,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	return t, nil
}

// Marshal encodes f in the given format.
func Marshal(f File, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatCBOR:
		return cbor.Marshal(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Unmarshal decodes and validates a document.
func Unmarshal(data []byte, format Format) (File, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &f)
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if f.FormatVersion != FormatVersion {
		return File{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.FormatVersion)
	}
	return f, nil
}

// Save writes f to path, choosing the encoding from the extension. The file
// is written to a temporary sibling and renamed into place.
func Save(path string, f File) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Load reads the document at path.
func Load(path string) (File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Unmarshal(data, format)
}

// LoadTokenizer is Load followed by File.Tokenizer.
func LoadTokenizer(path string, opts tokenizer.Options) (*tokenizer.Tokenizer, File, error) {
	f, err := Load(path)
	if err != nil {
		return nil, File{}, err
	}
	t, err := f.Tokenizer(opts)
	if err != nil {
		return nil, File{}, err
	}
	return t, f, nil
}
