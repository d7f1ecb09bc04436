package model

// Triple is a directed, labeled edge between two named concepts. A concept
// exists in the graph iff it appears as head or tail of at least one triple.
type Triple struct {
	ID       string `json:"id"`
	Head     string `json:"head_entity"`
	Relation string `json:"relation"`
	Tail     string `json:"tail_entity"`
}

// Other returns the endpoint of t that is not name. Falls back to the tail
// when name matches neither side.
func (t Triple) Other(name string) string {
	if t.Head == name {
		return t.Tail
	}
	if t.Tail == name {
		return t.Head
	}
	return t.Tail
}

// SimilarityResult is one ranked neighbor from the similarity index.
type SimilarityResult struct {
	Term  string  `json:"entity"`
	Score float64 `json:"similarity"`
}

// SimilarCandidate is a similarity result annotated with graph membership,
// produced by the discover phase of onboarding.
type SimilarCandidate struct {
	Term    string  `json:"entity"`
	Score   float64 `json:"similarity"`
	InGraph bool    `json:"in_graph"`
}

// CandidateTriple is a proposed edge for an entity under onboarding. It is
// never persisted as-is; exactly one candidate may be committed.
type CandidateTriple struct {
	Head     string `json:"head_entity"`
	Relation string `json:"relation"`
	Tail     string `json:"tail_entity"`
}

// HighLevelTag marks a node name as an abstract category rather than a
// concrete instance.
type HighLevelTag struct {
	Name string `json:"name"`
	Tier string `json:"tier"` // "core" or "generic"
}

const (
	TierCore    = "core"
	TierGeneric = "generic"
)
