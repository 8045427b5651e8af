// Package corpus reads the combined test-file dump and splits it into chunks.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// ErrInputNotFound is returned when the combined input file does not exist
var ErrInputNotFound = errors.New("input file not found")

var fileIDPattern = regexp.MustCompile(`FILE: (run_\d+_ClassUnderTestApogen_ESTest\.txt)`)

// Chunk is one generated test file from the combined input
type Chunk struct {
	Index int    // 1-based position among non-empty chunks
	ID    string // embedded FILE token, or "File <Index>"
	Text  string
}

// Corpus is the split content of one input file
type Corpus struct {
	Path   string
	Chunks []Chunk
}

// Load reads path once and splits it on delimiter
func Load(path string, delimiter string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("read input: %w", err)
	}

	return &Corpus{
		Path:   path,
		Chunks: Split(string(data), delimiter),
	}, nil
}

// Split separates text on delimiter, dropping whitespace-only chunks
func Split(text string, delimiter string) []Chunk {
	var chunks []Chunk
	for _, part := range strings.Split(text, delimiter) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		index := len(chunks) + 1
		chunks = append(chunks, Chunk{
			Index: index,
			ID:    chunkID(part, index),
			Text:  part,
		})
	}
	return chunks
}

// chunkID prefers the embedded generated-file name for display
func chunkID(text string, index int) string {
	if m := fileIDPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return fmt.Sprintf("File %d", index)
}
