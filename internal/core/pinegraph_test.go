package core

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinewatch/pinegraph/internal/driver"
	"github.com/pinewatch/pinegraph/internal/store"
)

var tripleKeys = []string{"id", "head", "relation", "tail"}

func testService(results map[string]neo4j.EagerResult) (*PineGraph, *MockDriver) {
	d := &MockDriver{Results: results}
	return New(store.New(d), nil, nil, nil), d
}

func TestExportGraph(t *testing.T) {
	g, _ := testService(map[string]neo4j.EagerResult{
		driver.AllTriplesQuery: result(
			record(tripleKeys, "e1", "松墨天牛", "传播", "松材线虫"),
			record(tripleKeys, "e2", "马尾松", "易感", "松材线虫病"),
		),
		driver.LoadHighLevelTagsQuery: result(
			record([]string{"name", "tier"}, "松墨天牛", "core"),
		),
	})

	export, err := g.ExportGraph(context.Background())

	require.NoError(t, err)
	require.Len(t, export.Nodes, 4)
	require.Len(t, export.Edges, 2)

	categories := make(map[string]int, len(export.Nodes))
	for i := 1; i < len(export.Nodes); i++ {
		assert.Less(t, export.Nodes[i-1].Name, export.Nodes[i].Name)
	}
	for _, n := range export.Nodes {
		categories[n.Name] = n.Category
	}
	assert.Equal(t, 1, categories["松墨天牛"])
	assert.Equal(t, 0, categories["马尾松"])
	assert.Equal(t, 0, categories["松材线虫"])
}

func TestExportGraph_BootstrapsTags(t *testing.T) {
	// No persisted tags: the rule classifier runs and its result is saved.
	g, d := testService(map[string]neo4j.EagerResult{
		driver.AllTriplesQuery: result(
			record(tripleKeys, "e1", "天牛", "属于", "昆虫"),
		),
	})

	export, err := g.ExportGraph(context.Background())

	require.NoError(t, err)
	assert.True(t, d.Executed(driver.SaveHighLevelTagQuery))

	categories := make(map[string]int, len(export.Nodes))
	for _, n := range export.Nodes {
		categories[n.Name] = n.Category
	}
	assert.Equal(t, 1, categories["天牛"])
	assert.Equal(t, 1, categories["昆虫"])
}

func TestExportGraph_Empty(t *testing.T) {
	g, d := testService(nil)

	export, err := g.ExportGraph(context.Background())

	require.NoError(t, err)
	assert.Empty(t, export.Nodes)
	assert.Empty(t, export.Edges)
	assert.False(t, d.Executed(driver.SaveHighLevelTagQuery))
}

func TestReclassifyHighLevelNodes_Replace(t *testing.T) {
	g, d := testService(map[string]neo4j.EagerResult{
		driver.AllTriplesQuery: result(
			record(tripleKeys, "e1", "天牛", "属于", "昆虫"),
			record(tripleKeys, "e2", "马尾松", "易感", "松材线虫病"),
		),
	})

	tags, err := g.ReclassifyHighLevelNodes(context.Background(), true)

	require.NoError(t, err)
	assert.True(t, d.Executed(driver.ClearHighLevelTagsQuery))

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.Contains(t, names, "天牛")
	assert.Contains(t, names, "昆虫")
	assert.NotContains(t, names, "马尾松")
}
