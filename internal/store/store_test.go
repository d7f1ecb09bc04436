package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinewatch/pinegraph/internal/core/model"
	"github.com/pinewatch/pinegraph/internal/driver"
)

func newTestStore(d *MockDriver) *Store {
	s := New(d)
	s.NewID = func() string { return "test-id" }
	return s
}

func TestExists(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(3))),
	}}
	s := newTestStore(d)

	exists, err := s.Exists(context.Background(), " 马尾松 ")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "马尾松", d.Params[0]["name"])
}

func TestExists_NoEdges(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(0))),
	}}
	s := newTestStore(d)

	exists, err := s.Exists(context.Background(), "湿地松")

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEdgesOf_DecodesTriples(t *testing.T) {
	keys := []string{"id", "head", "relation", "tail"}
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.EdgesOfQuery: result(
			record(keys, "e1", "马尾松", "易感", "松材线虫病"),
			record(keys, "e2", "松墨天牛", "寄主", "马尾松"),
		),
	}}
	s := newTestStore(d)

	triples, err := s.EdgesOf(context.Background(), "马尾松")

	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, model.Triple{ID: "e1", Head: "马尾松", Relation: "易感", Tail: "松材线虫病"}, triples[0])
	assert.Equal(t, model.Triple{ID: "e2", Head: "松墨天牛", Relation: "寄主", Tail: "马尾松"}, triples[1])
}

func TestInsertTriple(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.InsertTripleQuery: result(record([]string{"id"}, "test-id")),
	}}
	s := newTestStore(d)

	id, err := s.InsertTriple(context.Background(), "湿地松", "属于", "松树")

	require.NoError(t, err)
	assert.Equal(t, "test-id", id)
	assert.Equal(t, "湿地松", d.Params[0]["head"])
	assert.Equal(t, "属于", d.Params[0]["relation"])
	assert.Equal(t, "松树", d.Params[0]["tail"])
}

func TestInsertTriple_ExistingHeadConflicts(t *testing.T) {
	// Zero returned rows means the guarded statement refused the write.
	d := &MockDriver{}
	s := newTestStore(d)

	_, err := s.InsertTriple(context.Background(), "马尾松", "属于", "松树")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestInsertTriple_RacingCreateSurfacesConflict(t *testing.T) {
	// A head committed by a concurrent request after the absence guard trips
	// the Concept.name uniqueness constraint; the loser must see a conflict,
	// not a bare driver error.
	d := &MockDriver{Errs: map[string]error{
		driver.InsertTripleQuery: fmt.Errorf("failed to execute query: %w", &neo4j.Neo4jError{
			Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
			Msg:  "Node(42) already exists with label `Concept` and property `name` = '湿地松'",
		}),
	}}
	s := newTestStore(d)

	_, err := s.InsertTriple(context.Background(), "湿地松", "属于", "马尾松")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestInsertTriple_MemgraphConstraintMessage(t *testing.T) {
	d := &MockDriver{Errs: map[string]error{
		driver.InsertTripleQuery: errors.New("Unable to commit due to unique constraint violation on :Concept(name)"),
	}}
	s := newTestStore(d)

	_, err := s.InsertTriple(context.Background(), "湿地松", "属于", "马尾松")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestInsertTriple_UnrelatedDriverErrorPassesThrough(t *testing.T) {
	d := &MockDriver{Errs: map[string]error{
		driver.InsertTripleQuery: errors.New("connection reset"),
	}}
	s := newTestStore(d)

	_, err := s.InsertTriple(context.Background(), "湿地松", "属于", "马尾松")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrConflict)
}

func TestDeleteEdge_SweepsOrphans(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.DeleteEdgeQuery: result(record([]string{"id"}, "e1")),
	}}
	s := newTestStore(d)

	err := s.DeleteEdge(context.Background(), "e1")

	require.NoError(t, err)
	assert.True(t, d.Executed(driver.DeleteOrphanConceptsQuery))
}

func TestDeleteEdge_NotFound(t *testing.T) {
	d := &MockDriver{}
	s := newTestStore(d)

	err := s.DeleteEdge(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, d.Executed(driver.DeleteOrphanConceptsQuery))
}

func TestUpdateEdgeRelation_NotFound(t *testing.T) {
	d := &MockDriver{}
	s := newTestStore(d)

	err := s.UpdateEdgeRelation(context.Background(), "missing", "传播")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteNode(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(2))),
	}}
	s := newTestStore(d)

	err := s.DeleteNode(context.Background(), "马尾松")

	require.NoError(t, err)
	assert.True(t, d.Executed(driver.DeleteNodeQuery))
	assert.True(t, d.Executed(driver.DeleteOrphanConceptsQuery))
	assert.True(t, d.Executed(driver.DeleteHighLevelTagQuery))
}

func TestDeleteNode_Missing(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(0))),
	}}
	s := newTestStore(d)

	err := s.DeleteNode(context.Background(), "湿地松")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, d.Executed(driver.DeleteNodeQuery))
}

func TestRenameNode_ClashConflicts(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(1))),
	}}
	s := newTestStore(d)

	err := s.RenameNode(context.Background(), "马尾松", "黑松")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestRenameNode_MissingSource(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeExistsQuery: result(record([]string{"cnt"}, int64(0))),
	}}
	s := newTestStore(d)

	err := s.RenameNode(context.Background(), "不存在", "新名字")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNodeDegrees(t *testing.T) {
	keys := []string{"name", "degree"}
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.NodeDegreesQuery: result(
			record(keys, "马尾松", int64(5)),
			record(keys, "松墨天牛", int64(3)),
		),
	}}
	s := newTestStore(d)

	degrees, err := s.NodeDegrees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"马尾松": 5, "松墨天牛": 3}, degrees)
}

func TestValidRelations(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ValidRelationsQuery: result(
			record([]string{"name"}, "传播"),
			record([]string{"name"}, "易感"),
		),
	}}
	s := newTestStore(d)

	relations, err := s.ValidRelations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"传播", "易感"}, relations)
}

func TestLoadHighLevelTags_MissingTierDefaultsToGeneric(t *testing.T) {
	keys := []string{"name", "tier"}
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.LoadHighLevelTagsQuery: result(
			record(keys, "松墨天牛", model.TierCore),
			record(keys, "算法", nil),
		),
	}}
	s := newTestStore(d)

	tags, err := s.LoadHighLevelTags(context.Background())

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, model.HighLevelTag{Name: "松墨天牛", Tier: model.TierCore}, tags[0])
	assert.Equal(t, model.HighLevelTag{Name: "算法", Tier: model.TierGeneric}, tags[1])
}

func TestSaveHighLevelTags_ReplaceClearsFirst(t *testing.T) {
	d := &MockDriver{}
	s := newTestStore(d)

	err := s.SaveHighLevelTags(context.Background(), []model.HighLevelTag{
		{Name: "天牛", Tier: model.TierCore},
		{Name: "算法"},
	}, true)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(d.Queries), 3)
	assert.Equal(t, driver.ClearHighLevelTagsQuery, d.Queries[0])
	assert.Equal(t, driver.SaveHighLevelTagQuery, d.Queries[1])
	// Unset tiers persist as generic.
	assert.Equal(t, model.TierGeneric, d.Params[2]["tier"])
}

func TestSaveHighLevelTags_MergeKeepsExisting(t *testing.T) {
	d := &MockDriver{}
	s := newTestStore(d)

	err := s.SaveHighLevelTags(context.Background(), []model.HighLevelTag{{Name: "天牛"}}, false)

	require.NoError(t, err)
	assert.False(t, d.Executed(driver.ClearHighLevelTagsQuery))
}

func TestBootstrap_SeedsEmptyDatabase(t *testing.T) {
	d := &MockDriver{}
	s := newTestStore(d)

	err := s.Bootstrap(context.Background(), []string{"传播", "易感"})

	require.NoError(t, err)
	assert.True(t, d.Executed(driver.SeedRelationQuery))
	assert.True(t, d.Executed(driver.SaveHighLevelTagQuery))
}

func TestBootstrap_LeavesExistingDataAlone(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ValidRelationsQuery: result(record([]string{"name"}, "传播")),
		driver.LoadHighLevelTagsQuery: result(
			record([]string{"name", "tier"}, "天牛", model.TierGeneric),
		),
	}}
	s := newTestStore(d)

	err := s.Bootstrap(context.Background(), []string{"传播", "易感"})

	require.NoError(t, err)
	assert.False(t, d.Executed(driver.SeedRelationQuery))
	assert.False(t, d.Executed(driver.SaveHighLevelTagQuery))
}
