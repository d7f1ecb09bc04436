// Package onboard implements the three-phase workflow for adding a new
// entity to the graph: discover similar anchors, expand one anchor's
// neighborhood into candidate triples, commit a single chosen candidate.
package onboard

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

// Graph is the read/write surface the workflow needs. Phase 1 and 2 only
// read; phase 3's InsertTriple enforces head uniqueness atomically.
type Graph interface {
	Exists(ctx context.Context, name string) (bool, error)
	EdgesOf(ctx context.Context, name string) ([]model.Triple, error)
	InsertTriple(ctx context.Context, head, relation, tail string) (string, error)
	ValidRelations(ctx context.Context) ([]string, error)
}

// Index is the similarity lookup used during discovery.
type Index interface {
	FindTopN(ctx context.Context, term string, n int) []model.SimilarityResult
}

// Inferrer chooses one relation from the vocabulary for an entity pair.
type Inferrer interface {
	Infer(ctx context.Context, entityA, entityB string, allowed []string) (string, error)
}

// DiscoverResult is the phase-1 output: ranked similar terms annotated with
// graph membership, in-graph first.
type DiscoverResult struct {
	Input         string                   `json:"input"`
	Candidates    []model.SimilarCandidate `json:"similar_entities"`
	InGraphCount  int                      `json:"in_graph_count"`
	OutGraphCount int                      `json:"out_graph_count"`
}

// Builder runs the workflow. It holds no per-request state; all three phases
// are independent calls so a caller can pause between them.
type Builder struct {
	Graph  Graph
	Index  Index
	Oracle Inferrer

	// Oversample multiplies the requested candidate count for the raw index
	// query, so the in-graph preference still has enough material after
	// partitioning.
	Oversample int
}

func NewBuilder(graph Graph, index Index, oracle Inferrer, oversample int) *Builder {
	if oversample <= 0 {
		oversample = 3
	}
	return &Builder{Graph: graph, Index: index, Oracle: oracle, Oversample: oversample}
}

// Discover finds up to topN terms similar to name, preferring terms already
// in the graph. Fails with ErrConflict when name is already a node and
// ErrNotFound when the index has nothing at all.
func (b *Builder) Discover(ctx context.Context, name string, topN int) (*DiscoverResult, error) {
	name = strings.TrimSpace(name)

	exists, err := b.Graph.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("entity '%s': %w", name, model.ErrConflict)
	}

	ranked := b.Index.FindTopN(ctx, name, topN*b.Oversample)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("no similar terms for '%s': %w", name, model.ErrNotFound)
	}

	var inGraph, outGraph []model.SimilarCandidate
	for _, r := range ranked {
		member, err := b.Graph.Exists(ctx, r.Term)
		if err != nil {
			log.Printf("onboard: membership check for '%s' failed, skipping: %v", r.Term, err)
			continue
		}
		candidate := model.SimilarCandidate{Term: r.Term, Score: r.Score, InGraph: member}
		if member {
			inGraph = append(inGraph, candidate)
		} else {
			outGraph = append(outGraph, candidate)
		}
	}

	result := &DiscoverResult{
		Input:         name,
		InGraphCount:  len(inGraph),
		OutGraphCount: len(outGraph),
	}
	result.Candidates = inGraph
	if len(result.Candidates) > topN {
		result.Candidates = result.Candidates[:topN]
	} else if len(result.Candidates) < topN {
		short := topN - len(result.Candidates)
		if short > len(outGraph) {
			short = len(outGraph)
		}
		result.Candidates = append(result.Candidates, outGraph[:short]...)
	}

	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no similar terms for '%s': %w", name, model.ErrNotFound)
	}
	return result, nil
}

// Expand enumerates every node with a direct edge to anchor and proposes one
// candidate triple (name, relation, neighbor) per neighbor. Fails with
// ErrConflict when name already exists, ErrNotFound when anchor has no edges,
// ErrConfiguration when the relation vocabulary is empty.
func (b *Builder) Expand(ctx context.Context, name, anchor string) ([]model.CandidateTriple, error) {
	name = strings.TrimSpace(name)
	anchor = strings.TrimSpace(anchor)

	exists, err := b.Graph.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("entity '%s': %w", name, model.ErrConflict)
	}

	edges, err := b.Graph.EdgesOf(ctx, anchor)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("anchor '%s' has no edges: %w", anchor, model.ErrNotFound)
	}

	relations, err := b.Graph.ValidRelations(ctx)
	if err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, fmt.Errorf("relation vocabulary is empty: %w", model.ErrConfiguration)
	}

	var candidates []model.CandidateTriple
	seen := make(map[string]bool)
	for _, edge := range edges {
		neighbor := edge.Other(anchor)
		if neighbor == "" || neighbor == anchor || seen[neighbor] {
			continue
		}
		seen[neighbor] = true

		relation, err := b.Oracle.Infer(ctx, name, neighbor, relations)
		if err != nil {
			// The oracle only fails on an empty vocabulary, which was checked
			// above; an error here means misuse, not a backend outage. Keep
			// the rest of the batch.
			log.Printf("onboard: inference for %s <-> %s failed, skipping: %v", name, neighbor, err)
			continue
		}
		candidates = append(candidates, model.CandidateTriple{
			Head:     name,
			Relation: relation,
			Tail:     neighbor,
		})
	}

	return candidates, nil
}

// Commit persists the chosen candidate. The head's absence is re-verified,
// but the authoritative uniqueness check is the store's: a concurrent commit
// of the same name surfaces as ErrConflict from InsertTriple.
func (b *Builder) Commit(ctx context.Context, candidate model.CandidateTriple) (*model.Triple, error) {
	head := strings.TrimSpace(candidate.Head)
	tail := strings.TrimSpace(candidate.Tail)
	if head == "" || tail == "" || candidate.Relation == "" {
		return nil, fmt.Errorf("incomplete candidate triple: %w", model.ErrNotFound)
	}

	exists, err := b.Graph.Exists(ctx, head)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("entity '%s': %w", head, model.ErrConflict)
	}

	id, err := b.Graph.InsertTriple(ctx, head, candidate.Relation, tail)
	if err != nil {
		return nil, err
	}

	return &model.Triple{ID: id, Head: head, Relation: candidate.Relation, Tail: tail}, nil
}
