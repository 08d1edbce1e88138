package modelstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/subword/internal/tokenizer"
)

func trained(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	tok := tokenizer.NewBPE(tokenizer.Options{}, "low lower lowest", "newer wider")
	require.NoError(t, tok.Train(6))
	return tok
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".json", ".cbor"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			tok := trained(t)
			now := time.Unix(1700000000, 0)
			f, err := FromTokenizer(tok, now)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(f.ID, "tok_"))
			assert.Equal(t, now.Unix(), f.CreatedAt)

			path := filepath.Join(t.TempDir(), "nested", "model"+ext)
			require.NoError(t, Save(path, f))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, f, loaded)

			restored, err := loaded.Tokenizer(tokenizer.Options{})
			require.NoError(t, err)
			assert.Equal(t, tok.Vocabulary().Tokens(), restored.Vocabulary().Tokens())

			want, err := tok.Encode("lowest newer", tokenizer.EncodeOptions{})
			require.NoError(t, err)
			got, err := restored.Encode("lowest newer", tokenizer.EncodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, want, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file should be renamed away")
		})
	}
}

func TestJSONIsReadable(t *testing.T) {
	t.Parallel()

	f, err := FromTokenizer(trained(t), time.Now())
	require.NoError(t, err)
	data, err := Marshal(f, FormatJSON)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"strategy": "bpe"`)
	assert.Contains(t, s, `"format_version": 1`)
	assert.Contains(t, s, `"word_freq"`)
}

func TestFromUntrained(t *testing.T) {
	t.Parallel()

	_, err := FromTokenizer(tokenizer.NewBPE(tokenizer.Options{}, "x"), time.Now())
	require.ErrorIs(t, err, tokenizer.ErrUntrained)
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	cases := map[string]Format{"a.json": FormatJSON, "B.JSON": FormatJSON, "dir/m.cbor": FormatCBOR}
	for path, want := range cases {
		got, err := FormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	for _, path := range []string{"model", "model.yaml", "model.json.gz"} {
		_, err := FormatForPath(path)
		require.ErrorIs(t, err, ErrUnsupportedFormat, path)
	}
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := Load(write("garbage.json", "{not json"))
	require.ErrorIs(t, err, ErrCorruptFile)

	_, err = Load(write("future.json", `{"format_version": 9, "strategy": "bpe", "tokens": ["*"]}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	f, err := Load(write("nopad.json", `{"format_version": 1, "strategy": "bpe", "tokens": ["a"]}`))
	require.NoError(t, err)
	_, err = f.Tokenizer(tokenizer.Options{})
	require.ErrorIs(t, err, ErrCorruptFile)

	f, err = Load(write("empty.json", `{"format_version": 1, "strategy": "word", "tokens": []}`))
	require.NoError(t, err)
	_, err = f.Tokenizer(tokenizer.Options{})
	require.ErrorIs(t, err, ErrCorruptFile)

	_, _, err = LoadTokenizer(filepath.Join(dir, "missing.cbor"), tokenizer.Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}
