package worker

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ppiankov/gendiv/internal/corpus"
	"github.com/ppiankov/gendiv/internal/model"
)

// ChunkAnalyzer analyzes one chunk independently of all others
type ChunkAnalyzer interface {
	AnalyzeChunk(ctx context.Context, chunk corpus.Chunk) (*model.ChunkAnalysis, error)
}

// ChunkJob analyzes a single chunk
type ChunkJob struct {
	Chunk    corpus.Chunk
	Analyzer ChunkAnalyzer
}

// Execute executes the chunk job
func (j *ChunkJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.AnalyzeChunk(ctx, j.Chunk)
	return &ChunkResult{
		Chunk:    j.Chunk,
		Analysis: analysis,
		Error:    err,
	}
}

// ChunkResult represents the result of a chunk job
type ChunkResult struct {
	Chunk    corpus.Chunk
	Analysis *model.ChunkAnalysis
	Error    error
}

// GetError returns the error from the chunk result
func (r *ChunkResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes chunks, in parallel when concurrency > 1.
// Output order always follows chunk order.
type BatchProcessor struct {
	analyzer    ChunkAnalyzer
	concurrency int
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer ChunkAnalyzer, concurrency int, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessChunks analyzes every chunk and returns the analyses in chunk order.
// The first failing chunk (by position) aborts the batch.
func (b *BatchProcessor) ProcessChunks(ctx context.Context, chunks []corpus.Chunk) ([]*model.ChunkAnalysis, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	var results []*ChunkResult
	if b.concurrency <= 1 {
		results = b.processInline(ctx, chunks)
	} else {
		results = b.processPool(ctx, chunks)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("process chunks: %w", err)
	}
	if len(results) != len(chunks) {
		return nil, fmt.Errorf("process chunks: got %d results for %d chunks", len(results), len(chunks))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	analyses := make([]*model.ChunkAnalysis, len(results))
	for i, r := range results {
		if r.Error != nil {
			return nil, fmt.Errorf("analyze %s: %w", r.Chunk.ID, r.Error)
		}
		analyses[i] = r.Analysis
	}

	return analyses, nil
}

func (b *BatchProcessor) processInline(ctx context.Context, chunks []corpus.Chunk) []*ChunkResult {
	results := make([]*ChunkResult, 0, len(chunks))
	for _, chunk := range chunks {
		if ctx.Err() != nil {
			break
		}
		job := &ChunkJob{Chunk: chunk, Analyzer: b.analyzer}
		results = append(results, job.Execute(ctx).(*ChunkResult))
	}
	return results
}

func (b *BatchProcessor) processPool(ctx context.Context, chunks []corpus.Chunk) []*ChunkResult {
	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	b.logger.Debug("Processing chunks in parallel",
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", b.concurrency))

	// Submit from a separate goroutine so results can drain while the queue is full
	go func() {
		defer pool.Close()
		for _, chunk := range chunks {
			if !pool.Submit(&ChunkJob{Chunk: chunk, Analyzer: b.analyzer}) {
				return
			}
		}
	}()

	results := make([]*ChunkResult, 0, len(chunks))
	for result := range pool.Results() {
		results = append(results, result.(*ChunkResult))
	}
	return results
}
