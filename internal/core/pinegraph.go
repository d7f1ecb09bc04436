// Package core wires the graph store, similarity index, relation oracle,
// onboarding workflow, classifier, and batch analyzer into one service.
package core

import (
	"context"
	"sort"

	"github.com/pinewatch/pinegraph/internal/config"
	"github.com/pinewatch/pinegraph/internal/core/analyzer"
	"github.com/pinewatch/pinegraph/internal/core/classifier"
	"github.com/pinewatch/pinegraph/internal/core/model"
	"github.com/pinewatch/pinegraph/internal/core/onboard"
	"github.com/pinewatch/pinegraph/internal/core/relation"
	"github.com/pinewatch/pinegraph/internal/core/similarity"
	"github.com/pinewatch/pinegraph/internal/llm"
	"github.com/pinewatch/pinegraph/internal/store"
)

type PineGraph struct {
	Store      *store.Store
	Index      *similarity.Index
	Oracle     *relation.Oracle
	Classifier *classifier.Classifier
	Onboarding *onboard.Builder
	Analyzer   *analyzer.Analyzer

	cfg *config.Config
}

// New composes the service. llmClient and embedder may be nil; the oracle
// and index then run on their deterministic fallbacks.
func New(st *store.Store, llmClient llm.Client, embedder llm.Embedder, cfg *config.Config) *PineGraph {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	vocabulary := func(ctx context.Context) ([]string, error) {
		triples, err := st.AllTriples(ctx)
		if err != nil {
			return nil, err
		}
		return classifier.NodeNames(triples), nil
	}

	index := similarity.NewIndex(embedder, vocabulary)
	oracle := relation.NewOracle(llmClient)

	return &PineGraph{
		Store:      st,
		Index:      index,
		Oracle:     oracle,
		Classifier: classifier.New(cfg.Classifier.ExclusionSlack),
		Onboarding: onboard.NewBuilder(st, index, oracle, cfg.Similarity.Oversample),
		Analyzer:   analyzer.New(st, oracle),
		cfg:        cfg,
	}
}

func (p *PineGraph) BuildIndices(ctx context.Context) error {
	return p.Store.Driver.BuildIndices(ctx)
}

// GraphNode is one node in the export view. Category is 1 for high-level
// (abstract) nodes, 0 for concrete instances.
type GraphNode struct {
	Name     string `json:"name"`
	Category int    `json:"category"`
}

type GraphExport struct {
	Nodes []GraphNode    `json:"nodes"`
	Edges []model.Triple `json:"edges"`
}

// ExportGraph returns every triple plus node category flags. When no tags
// have been persisted yet, the rule classifier bootstraps them from the
// current graph.
func (p *PineGraph) ExportGraph(ctx context.Context) (*GraphExport, error) {
	triples, err := p.Store.AllTriples(ctx)
	if err != nil {
		return nil, err
	}

	names := classifier.NodeNames(triples)

	tags, err := p.Store.LoadHighLevelTags(ctx)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 && len(names) > 0 {
		tags = p.Classifier.ClassifyTags(names, classifier.BuildDegrees(triples))
		if err := p.Store.SaveHighLevelTags(ctx, tags, false); err != nil {
			return nil, err
		}
	}

	highLevel := make(map[string]bool, len(tags))
	for _, tag := range tags {
		highLevel[tag.Name] = true
	}

	nodes := make([]GraphNode, 0, len(names))
	for _, name := range names {
		category := 0
		if highLevel[name] {
			category = 1
		}
		nodes = append(nodes, GraphNode{Name: name, Category: category})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })

	return &GraphExport{Nodes: nodes, Edges: triples}, nil
}

// ReclassifyHighLevelNodes reruns the rule classifier over the current graph
// and persists the result. With replace set, stale tags are dropped.
func (p *PineGraph) ReclassifyHighLevelNodes(ctx context.Context, replace bool) ([]model.HighLevelTag, error) {
	triples, err := p.Store.AllTriples(ctx)
	if err != nil {
		return nil, err
	}

	tags := p.Classifier.ClassifyTags(classifier.NodeNames(triples), classifier.BuildDegrees(triples))
	if err := p.Store.SaveHighLevelTags(ctx, tags, replace); err != nil {
		return nil, err
	}
	return tags, nil
}
