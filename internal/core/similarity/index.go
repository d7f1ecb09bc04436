// Package similarity provides nearest-neighbor term lookup over an embedding
// space, degrading to a static association table when no embedder is
// configured or a term is unknown.
package similarity

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/pinewatch/pinegraph/internal/core/model"
	"github.com/pinewatch/pinegraph/internal/llm"
)

// VocabularyFunc supplies the candidate terms to rank against, typically the
// current graph node names.
type VocabularyFunc func(ctx context.Context) ([]string, error)

// Index ranks terms by semantic closeness. The embedding strategy is chosen
// once at construction; per-call failures divert to the static fallback and
// never reach the caller.
type Index struct {
	embedder   llm.Embedder
	vocabulary VocabularyFunc

	initOnce sync.Once
	mu       sync.RWMutex
	vectors  map[string][]float32
	ready    bool
}

// NewIndex builds an index. A nil embedder or nil vocabulary selects the
// fallback strategy permanently.
func NewIndex(embedder llm.Embedder, vocabulary VocabularyFunc) *Index {
	idx := &Index{
		embedder:   embedder,
		vocabulary: vocabulary,
	}
	if embedder == nil || vocabulary == nil {
		log.Printf("similarity: no embedding backend configured, using static fallback")
	}
	return idx
}

// FindTopN returns up to n candidates ordered by non-increasing score. The
// result is never empty for n > 0: unknown terms and backend failures fall
// back to the static association table.
func (idx *Index) FindTopN(ctx context.Context, term string, n int) []model.SimilarityResult {
	if n <= 0 {
		return nil
	}

	if idx.embedder != nil && idx.vocabulary != nil {
		results, ok := idx.findByEmbedding(ctx, term, n)
		if ok && len(results) > 0 {
			return results
		}
	}

	return fallbackTopN(term, n)
}

func (idx *Index) findByEmbedding(ctx context.Context, term string, n int) ([]model.SimilarityResult, bool) {
	idx.initOnce.Do(func() { idx.buildVectors(ctx) })

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if !idx.ready {
		return nil, false
	}

	queryVec, err := idx.embedder.Embed(ctx, term)
	if err != nil {
		log.Printf("similarity: embedding lookup for '%s' failed, using static fallback: %v", term, err)
		return nil, false
	}

	results := make([]model.SimilarityResult, 0, len(idx.vectors))
	for candidate, vec := range idx.vectors {
		if candidate == term {
			continue
		}
		score := cosine(queryVec, vec)
		if score <= 0 {
			continue
		}
		results = append(results, model.SimilarityResult{Term: candidate, Score: score})
	}

	// Stable order: score descending, then term, so repeated lookups agree.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Term < results[j].Term
	})

	if len(results) > n {
		results = results[:n]
	}
	return results, true
}

// buildVectors embeds the whole vocabulary once. Runs under initOnce so
// concurrent readers share a single initialization.
func (idx *Index) buildVectors(ctx context.Context) {
	terms, err := idx.vocabulary(ctx)
	if err != nil {
		log.Printf("similarity: vocabulary load failed, using static fallback: %v", err)
		return
	}

	vectors := make(map[string][]float32, len(terms))
	for _, t := range terms {
		vec, err := idx.embedder.Embed(ctx, t)
		if err != nil {
			log.Printf("similarity: embedding backend unavailable, using static fallback: %v", err)
			return
		}
		vectors[t] = vec
	}

	idx.mu.Lock()
	idx.vectors = vectors
	idx.ready = len(vectors) > 0
	idx.mu.Unlock()
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
