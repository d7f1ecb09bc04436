package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver scripts one result per query string and records every call.
type MockDriver struct {
	Queries []string
	Params  []map[string]interface{}
	Results map[string]neo4j.EagerResult
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if res, ok := m.Results[query]; ok {
		return res, nil
	}
	return neo4j.EagerResult{Records: []*neo4j.Record{}}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Executed(query string) bool {
	for _, q := range m.Queries {
		if q == query {
			return true
		}
	}
	return false
}

func record(keys []string, values ...interface{}) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func result(records ...*neo4j.Record) neo4j.EagerResult {
	return neo4j.EagerResult{Records: records}
}
