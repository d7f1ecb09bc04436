package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// BoltDriver wraps a Bolt connection to Neo4j or Memgraph.
type BoltDriver struct {
	Driver neo4j.DriverWithContext
}

func NewBoltDriver(uri, username, password string) (*BoltDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Printf("Connected to graph database at %s", uri)
	return &BoltDriver{Driver: driver}, nil
}

func (d *BoltDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *BoltDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *BoltDriver) BuildIndices(ctx context.Context) error {
	// The uniqueness constraint on Concept.name is what turns a concurrent
	// onboarding commit into a clean conflict instead of a duplicate node.
	// Both Neo4j and Memgraph syntaxes are attempted; whichever the server
	// rejects is logged and skipped.
	queries := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (n:Concept) REQUIRE n.name IS UNIQUE;",
		"CREATE CONSTRAINT ON (n:Concept) ASSERT n.name IS UNIQUE;",

		"CREATE INDEX ON :Concept(name);",
		"CREATE INDEX ON :Relation(name);",
		"CREATE INDEX ON :HighLevelTag(name);",
	}

	for _, q := range queries {
		_, err := d.ExecuteQuery(ctx, q, nil)
		if err != nil {
			log.Printf("Warning: failed to apply '%s': %v", q, err)
			// Continue, the constraint or index may already exist or use the
			// other dialect.
		}
	}

	return nil
}
