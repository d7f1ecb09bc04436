package driver

const (
	NodeExistsQuery = `
		MATCH (n:Concept {name: $name})-[r:REL]-()
		RETURN count(r) AS cnt
	`

	EdgesOfQuery = `
		MATCH (a:Concept {name: $name})-[r:REL]->(b:Concept)
		RETURN r.id AS id, a.name AS head, r.name AS relation, b.name AS tail
		UNION
		MATCH (b:Concept)-[r:REL]->(a:Concept {name: $name})
		RETURN r.id AS id, b.name AS head, r.name AS relation, a.name AS tail
	`

	AllTriplesQuery = `
		MATCH (h:Concept)-[r:REL]->(t:Concept)
		RETURN r.id AS id, h.name AS head, r.name AS relation, t.name AS tail
	`

	// InsertTripleQuery checks head-absence and creates the triple in one
	// statement. Zero returned rows means the head concept already existed
	// and the caller must treat the insert as a conflict. The head is CREATEd,
	// not MERGEd: when two requests race past the guard, the second CREATE
	// trips the Concept.name uniqueness constraint instead of silently
	// matching the winner's node.
	InsertTripleQuery = `
		OPTIONAL MATCH (existing:Concept {name: $head})-[:REL]-()
		WITH existing
		WHERE existing IS NULL
		MERGE (t:Concept {name: $tail})
		CREATE (h:Concept {name: $head})
		CREATE (h)-[r:REL {id: $id, name: $relation}]->(t)
		RETURN r.id AS id
	`

	// AppendTripleQuery adds an edge without the head-uniqueness guard, for
	// bulk seeding and edge restoration.
	AppendTripleQuery = `
		MERGE (h:Concept {name: $head})
		MERGE (t:Concept {name: $tail})
		CREATE (h)-[r:REL {id: $id, name: $relation}]->(t)
		RETURN r.id AS id
	`

	DeleteEdgeQuery = `
		MATCH ()-[r:REL {id: $id}]->()
		WITH r, r.id AS id
		DELETE r
		RETURN id
	`

	UpdateEdgeRelationQuery = `
		MATCH ()-[r:REL {id: $id}]->()
		SET r.name = $relation
		RETURN r.id AS id
	`

	DeleteNodeQuery = `
		MATCH (n:Concept {name: $name})
		DETACH DELETE n
	`

	RenameNodeQuery = `
		MATCH (n:Concept {name: $old})
		SET n.name = $new
		RETURN n.name AS name
	`

	// Concepts left without edges are invisible to existence checks; this
	// sweeps them out after node or edge deletion.
	DeleteOrphanConceptsQuery = `
		MATCH (n:Concept)
		WHERE NOT (n)-[:REL]-()
		DELETE n
	`

	NodeDegreesQuery = `
		MATCH (n:Concept)-[r:REL]-()
		RETURN n.name AS name, count(r) AS degree
	`

	ValidRelationsQuery = `
		MATCH (r:Relation)
		RETURN r.name AS name
		ORDER BY r.name
	`

	SeedRelationQuery = `
		MERGE (r:Relation {name: $name})
		RETURN r.name AS name
	`

	LoadHighLevelTagsQuery = `
		MATCH (t:HighLevelTag)
		RETURN t.name AS name, t.tier AS tier
	`

	SaveHighLevelTagQuery = `
		MERGE (t:HighLevelTag {name: $name})
		SET t.tier = $tier
		RETURN t.name AS name
	`

	DeleteHighLevelTagQuery = `
		MATCH (t:HighLevelTag {name: $name})
		DELETE t
	`

	ClearHighLevelTagsQuery = `
		MATCH (t:HighLevelTag)
		DELETE t
	`
)
