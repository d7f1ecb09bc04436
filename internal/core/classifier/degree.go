package classifier

import "github.com/pinewatch/pinegraph/internal/core/model"

// BuildDegrees computes per-node edge counts from a triple list, treating the
// graph as undirected. Parallel edges each count; a self-loop counts twice,
// matching how the store reports degrees.
func BuildDegrees(triples []model.Triple) map[string]int {
	degrees := make(map[string]int)
	for _, t := range triples {
		if t.Head == "" || t.Tail == "" {
			continue
		}
		degrees[t.Head]++
		degrees[t.Tail]++
	}
	return degrees
}

// NodeNames returns the distinct node names appearing in triples, in first
// occurrence order.
func NodeNames(triples []model.Triple) []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range triples {
		for _, name := range []string{t.Head, t.Tail} {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
