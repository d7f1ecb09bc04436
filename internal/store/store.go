package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/pinewatch/pinegraph/internal/core/model"
	"github.com/pinewatch/pinegraph/internal/driver"
)

// Store implements the graph-read/write and high-level-tag contracts on top
// of a Bolt driver. All uniqueness enforcement for onboarding lives here, at
// the write boundary, not in the workflow layer.
type Store struct {
	Driver driver.GraphDriver

	// NewID produces triple ids. Swappable for deterministic tests.
	NewID func() string
}

func New(d driver.GraphDriver) *Store {
	return &Store{
		Driver: d,
		NewID:  func() string { return uuid.New().String() },
	}
}

// Exists reports whether name participates in at least one triple.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.NodeExistsQuery, map[string]interface{}{
		"name": strings.TrimSpace(name),
	})
	if err != nil {
		return false, err
	}
	if len(res.Records) == 0 {
		return false, nil
	}
	cnt, _ := res.Records[0].Get("cnt")
	n, ok := cnt.(int64)
	return ok && n > 0, nil
}

// EdgesOf returns every triple touching name, in either direction.
func (s *Store) EdgesOf(ctx context.Context, name string) ([]model.Triple, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.EdgesOfQuery, map[string]interface{}{
		"name": strings.TrimSpace(name),
	})
	if err != nil {
		return nil, err
	}
	return decodeTriples(res.Records), nil
}

func (s *Store) AllTriples(ctx context.Context) ([]model.Triple, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.AllTriplesQuery, nil)
	if err != nil {
		return nil, err
	}
	return decodeTriples(res.Records), nil
}

// InsertTriple persists (head, relation, tail) and returns the new edge id.
// It fails with model.ErrConflict when head already exists as a node. A head
// present before the statement runs yields zero rows; a head committed by a
// racing request after the guard trips the Concept.name uniqueness
// constraint instead. Either way the loser sees ErrConflict.
func (s *Store) InsertTriple(ctx context.Context, head, relation, tail string) (string, error) {
	id := s.NewID()
	res, err := s.Driver.ExecuteQuery(ctx, driver.InsertTripleQuery, map[string]interface{}{
		"id":       id,
		"head":     strings.TrimSpace(head),
		"relation": relation,
		"tail":     strings.TrimSpace(tail),
	})
	if err != nil {
		if isConstraintViolation(err) {
			return "", fmt.Errorf("entity '%s': %w", head, model.ErrConflict)
		}
		return "", err
	}
	if len(res.Records) == 0 {
		return "", fmt.Errorf("entity '%s': %w", head, model.ErrConflict)
	}
	return id, nil
}

// isConstraintViolation recognizes a uniqueness-constraint failure from
// either Neo4j or Memgraph.
func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return strings.Contains(neoErr.Code, "ConstraintValidationFailed") ||
			strings.Contains(strings.ToLower(neoErr.Msg), "constraint")
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// AppendTriple adds an edge without the head-uniqueness guard. Used for
// vocabulary/graph seeding, never by the onboarding workflow.
func (s *Store) AppendTriple(ctx context.Context, head, relation, tail string) (string, error) {
	id := s.NewID()
	_, err := s.Driver.ExecuteQuery(ctx, driver.AppendTripleQuery, map[string]interface{}{
		"id":       id,
		"head":     strings.TrimSpace(head),
		"relation": relation,
		"tail":     strings.TrimSpace(tail),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeleteEdge(ctx context.Context, id string) error {
	res, err := s.Driver.ExecuteQuery(ctx, driver.DeleteEdgeQuery, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("edge '%s': %w", id, model.ErrNotFound)
	}
	_, err = s.Driver.ExecuteQuery(ctx, driver.DeleteOrphanConceptsQuery, nil)
	return err
}

func (s *Store) UpdateEdgeRelation(ctx context.Context, id, relation string) error {
	res, err := s.Driver.ExecuteQuery(ctx, driver.UpdateEdgeRelationQuery, map[string]interface{}{
		"id":       id,
		"relation": relation,
	})
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("edge '%s': %w", id, model.ErrNotFound)
	}
	return nil
}

// DeleteNode removes name, every triple touching it, any concepts orphaned by
// that, and its high-level tag if present.
func (s *Store) DeleteNode(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("entity '%s': %w", name, model.ErrNotFound)
	}

	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteNodeQuery, map[string]interface{}{"name": name}); err != nil {
		return err
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteOrphanConceptsQuery, nil); err != nil {
		return err
	}
	_, err = s.Driver.ExecuteQuery(ctx, driver.DeleteHighLevelTagQuery, map[string]interface{}{"name": name})
	return err
}

// RenameNode rewrites a concept name across all its triples.
func (s *Store) RenameNode(ctx context.Context, oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)

	clash, err := s.Exists(ctx, newName)
	if err != nil {
		return err
	}
	if clash {
		return fmt.Errorf("entity '%s': %w", newName, model.ErrConflict)
	}

	res, err := s.Driver.ExecuteQuery(ctx, driver.RenameNodeQuery, map[string]interface{}{
		"old": oldName,
		"new": newName,
	})
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("entity '%s': %w", oldName, model.ErrNotFound)
	}
	return nil
}

// NodeDegrees returns edge counts per concept name.
func (s *Store) NodeDegrees(ctx context.Context) (map[string]int, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.NodeDegreesQuery, nil)
	if err != nil {
		return nil, err
	}
	degrees := make(map[string]int, len(res.Records))
	for _, rec := range res.Records {
		name, _ := rec.Get("name")
		degree, _ := rec.Get("degree")
		n, ok1 := name.(string)
		d, ok2 := degree.(int64)
		if ok1 && ok2 {
			degrees[n] = int(d)
		}
	}
	return degrees, nil
}

// ValidRelations returns the controlled relation vocabulary in stable order.
func (s *Store) ValidRelations(ctx context.Context) ([]string, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ValidRelationsQuery, nil)
	if err != nil {
		return nil, err
	}
	relations := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		if name, ok := recString(rec, "name"); ok {
			relations = append(relations, name)
		}
	}
	return relations, nil
}

func (s *Store) SeedRelations(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := s.Driver.ExecuteQuery(ctx, driver.SeedRelationQuery, map[string]interface{}{"name": name})
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadHighLevelTags returns every persisted abstract-category tag.
func (s *Store) LoadHighLevelTags(ctx context.Context) ([]model.HighLevelTag, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.LoadHighLevelTagsQuery, nil)
	if err != nil {
		return nil, err
	}
	tags := make([]model.HighLevelTag, 0, len(res.Records))
	for _, rec := range res.Records {
		name, ok := recString(rec, "name")
		if !ok {
			continue
		}
		tier, ok := recString(rec, "tier")
		if !ok || tier == "" {
			tier = model.TierGeneric
		}
		tags = append(tags, model.HighLevelTag{Name: name, Tier: tier})
	}
	return tags, nil
}

// SaveHighLevelTags persists tags. With replace set, the existing tag set is
// dropped first; otherwise tags merge into it.
func (s *Store) SaveHighLevelTags(ctx context.Context, tags []model.HighLevelTag, replace bool) error {
	if replace {
		if _, err := s.Driver.ExecuteQuery(ctx, driver.ClearHighLevelTagsQuery, nil); err != nil {
			return err
		}
	}
	for _, tag := range tags {
		tier := tag.Tier
		if tier == "" {
			tier = model.TierGeneric
		}
		_, err := s.Driver.ExecuteQuery(ctx, driver.SaveHighLevelTagQuery, map[string]interface{}{
			"name": strings.TrimSpace(tag.Name),
			"tier": tier,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) RemoveHighLevelTag(ctx context.Context, name string) error {
	_, err := s.Driver.ExecuteQuery(ctx, driver.DeleteHighLevelTagQuery, map[string]interface{}{
		"name": strings.TrimSpace(name),
	})
	return err
}

func decodeTriples(records []*neo4j.Record) []model.Triple {
	triples := make([]model.Triple, 0, len(records))
	for _, rec := range records {
		id, _ := recString(rec, "id")
		head, ok1 := recString(rec, "head")
		relation, ok2 := recString(rec, "relation")
		tail, ok3 := recString(rec, "tail")
		if ok1 && ok2 && ok3 {
			triples = append(triples, model.Triple{ID: id, Head: head, Relation: relation, Tail: tail})
		}
	}
	return triples
}

func recString(rec *neo4j.Record, key string) (string, bool) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
