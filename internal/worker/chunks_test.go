package worker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/gendiv/internal/corpus"
	"github.com/ppiankov/gendiv/internal/model"
)

// jitterAnalyzer finishes chunks out of order
type jitterAnalyzer struct {
	failID string
}

func (a *jitterAnalyzer) AnalyzeChunk(ctx context.Context, chunk corpus.Chunk) (*model.ChunkAnalysis, error) {
	time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
	if chunk.ID == a.failID {
		return nil, errors.New("boom")
	}
	return &model.ChunkAnalysis{
		Index: chunk.Index,
		ID:    chunk.ID,
		Tally: model.SignatureTally{Semantic: chunk.Index},
	}, nil
}

func makeChunks(n int) []corpus.Chunk {
	chunks := make([]corpus.Chunk, n)
	for i := range chunks {
		chunks[i] = corpus.Chunk{Index: i + 1, ID: fmt.Sprintf("File %d", i+1)}
	}
	return chunks
}

func TestBatchProcessor_PreservesChunkOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			processor := NewBatchProcessor(&jitterAnalyzer{}, workers, nil)

			analyses, err := processor.ProcessChunks(context.Background(), makeChunks(50))
			require.NoError(t, err)
			require.Len(t, analyses, 50)

			for i, a := range analyses {
				assert.Equal(t, i+1, a.Index)
				assert.Equal(t, i+1, a.Tally.Semantic)
			}
		})
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	analyses, err := NewBatchProcessor(&jitterAnalyzer{}, 4, nil).ProcessChunks(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, analyses)
}

func TestBatchProcessor_ReportsFailingChunk(t *testing.T) {
	processor := NewBatchProcessor(&jitterAnalyzer{failID: "File 7"}, 4, nil)

	_, err := processor.ProcessChunks(context.Background(), makeChunks(10))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "File 7")
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := NewBatchProcessor(&jitterAnalyzer{}, workers, nil).ProcessChunks(ctx, makeChunks(10))
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	}
}
