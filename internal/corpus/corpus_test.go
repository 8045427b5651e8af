package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var delim = strings.Repeat("=", 80)

func TestSplit_DropsWhitespaceChunks(t *testing.T) {
	text := "\n" + delim + "\nfirst\n" + delim + "   \n\t" + delim + "\nsecond\n" + delim + "\n"

	chunks := Split(text, delim)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Index)
	assert.Equal(t, "File 1", chunks[0].ID)
	assert.Contains(t, chunks[0].Text, "first")
	assert.Equal(t, 2, chunks[1].Index)
	assert.Equal(t, "File 2", chunks[1].ID)
	assert.Contains(t, chunks[1].Text, "second")
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Empty(t, Split("", delim))
	assert.Empty(t, Split("  \n\n ", delim))
}

func TestSplit_UsesEmbeddedFileID(t *testing.T) {
	text := "FILE: run_42_ClassUnderTestApogen_ESTest.txt\nString a = \"x\";\n" + delim +
		"\nFILE: something_else.txt\n"

	chunks := Split(text, delim)

	require.Len(t, chunks, 2)
	assert.Equal(t, "run_42_ClassUnderTestApogen_ESTest.txt", chunks[0].ID)
	assert.Equal(t, "File 2", chunks[1].ID, "non-matching FILE markers fall back to the index")
}

func TestSplit_IndexCountsOnlyKeptChunks(t *testing.T) {
	text := "  " + delim + "a" + delim + "\n" + delim + "b"

	chunks := Split(text, delim)

	require.Len(t, chunks, 2)
	assert.Equal(t, "File 1", chunks[0].ID)
	assert.Equal(t, "File 2", chunks[1].ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), delim)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
}

func TestLoad_ReadsAndSplits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.txt")
	content := "String a = \"x\";\n" + delim + "\nString b = \"y\";\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path, delim)

	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Len(t, c.Chunks, 2)
}
