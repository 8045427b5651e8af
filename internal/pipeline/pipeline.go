package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/gendiv/internal/cache"
	"github.com/ppiankov/gendiv/internal/corpus"
	"github.com/ppiankov/gendiv/internal/extract"
	"github.com/ppiankov/gendiv/internal/model"
	"github.com/ppiankov/gendiv/internal/score"
	"github.com/ppiankov/gendiv/internal/worker"
)

// Pipeline orchestrates extraction, scoring and aggregation over a corpus
type Pipeline struct {
	extractor  extract.Extractor
	engine     *score.DiversityEngine
	classifier *score.SignatureClassifier
	processor  *worker.BatchProcessor
	cache      *cache.MemoryCache // chunk analyses by text; nil when disabled
	logger     *zap.Logger
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	extractor, err := extract.New(cfg.Analysis.Extractor)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	var memo *cache.MemoryCache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	p := &Pipeline{
		extractor:  extractor,
		engine:     score.NewDiversityEngine(cfg.Diversity.AmountDivisor),
		classifier: score.NewSignatureClassifier(cfg.Signatures),
		cache:      memo,
		logger:     logger,
		config:     cfg,
	}
	p.processor = worker.NewBatchProcessor(p, cfg.Analysis.Workers, logger)

	return p, nil
}

// AnalyzeChunk extracts one chunk and computes both its category groups and its signature tally.
// Chunks with identical text are analyzed once per run when the cache is enabled.
func (p *Pipeline) AnalyzeChunk(ctx context.Context, chunk corpus.Chunk) (*model.ChunkAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.Key(p.extractor.Name(), chunk.Text)
	if cached, ok := p.cachedAnalysis(key); ok {
		cached.Index = chunk.Index
		cached.ID = chunk.ID
		return cached, nil
	}

	ex, err := p.extractor.Extract(ctx, chunk.Text)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	tally, matches := p.classifier.Classify(ex)

	analysis := &model.ChunkAnalysis{
		Index:   chunk.Index,
		ID:      chunk.ID,
		Groups:  extract.Group(ex),
		Tally:   tally,
		Matches: matches,
	}
	p.storeAnalysis(key, analysis)

	return analysis, nil
}

// cachedAnalysis returns a fresh copy of a stored analysis
func (p *Pipeline) cachedAnalysis(key string) (*model.ChunkAnalysis, bool) {
	if p.cache == nil {
		return nil, false
	}
	data, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}

	var analysis model.ChunkAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		p.logger.Warn("Dropping unreadable cached analysis", zap.Error(err))
		_ = p.cache.Delete(key)
		return nil, false
	}
	return &analysis, true
}

func (p *Pipeline) storeAnalysis(key string, analysis *model.ChunkAnalysis) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		p.logger.Warn("Failed to cache chunk analysis", zap.String("chunk", analysis.ID), zap.Error(err))
		return
	}
	_ = p.cache.Set(key, data, 0)
}

// Diversity groups every chunk's resolved values by category and scores each group
func (p *Pipeline) Diversity(ctx context.Context, c *corpus.Corpus) (*model.DiversityReport, error) {
	start := time.Now()

	analyses, err := p.processor.ProcessChunks(ctx, c.Chunks)
	if err != nil {
		return nil, err
	}

	groups := make(map[model.Category][]string)
	for _, a := range analyses {
		for category, values := range a.Groups {
			groups[category] = append(groups[category], values...)
		}
	}

	report := &model.DiversityReport{
		Source:  c.Path,
		Chunks:  len(c.Chunks),
		Results: p.engine.Calculate(groups),
	}

	p.logger.Debug("Diversity analysis finished",
		zap.String("extractor", p.extractor.Name()),
		zap.Int("chunks", report.Chunks),
		zap.Int("categories", len(report.Results)),
		zap.Duration("elapsed", time.Since(start)))
	p.logCacheStats()

	return report, nil
}

// Signatures tallies semantic and mutated inputs per chunk and in total
func (p *Pipeline) Signatures(ctx context.Context, c *corpus.Corpus) (*model.SignatureReport, error) {
	start := time.Now()

	analyses, err := p.processor.ProcessChunks(ctx, c.Chunks)
	if err != nil {
		return nil, err
	}

	report := &model.SignatureReport{
		Source: c.Path,
		Chunks: make([]model.ChunkSignatures, 0, len(analyses)),
	}
	for _, a := range analyses {
		report.Chunks = append(report.Chunks, model.ChunkSignatures{
			Index:   a.Index,
			ID:      a.ID,
			Tally:   a.Tally,
			Matches: a.Matches,
		})
		report.Total.Add(a.Tally)
	}

	p.logger.Debug("Signature analysis finished",
		zap.String("extractor", p.extractor.Name()),
		zap.Int("chunks", len(report.Chunks)),
		zap.Int("semantic", report.Total.Semantic),
		zap.Int("mutated", report.Total.Mutated),
		zap.Duration("elapsed", time.Since(start)))
	p.logCacheStats()

	return report, nil
}

func (p *Pipeline) logCacheStats() {
	if p.cache == nil {
		return
	}
	hits, misses := p.cache.Stats()
	p.logger.Debug("Chunk analysis cache",
		zap.Int64("hits", hits),
		zap.Int64("misses", misses),
		zap.Int("entries", p.cache.Len()))
}
