package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore mirrors built graphs into a Neo4j instance so they can be
// explored with Cypher.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore connects to Neo4j and verifies the connection before
// returning the store.
func NewNeo4jStore(ctx context.Context, uri, username, password string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}
	return &Neo4jStore{driver: driver}, nil
}

// SaveSnapshot upserts every node and relationship of the graph. Nodes
// are keyed by their id so repeated snapshots stay idempotent.
func (s *Neo4jStore) SaveSnapshot(ctx context.Context, g *Graph) error {
	for _, n := range g.Nodes {
		_, err := neo4j.ExecuteQuery(ctx, s.driver,
			"MERGE (n:GraphNode {id: $id}) SET n.label = $label, n.type = $type, n.color = $color, n.size = $size",
			map[string]interface{}{
				"id":    n.ID,
				"label": n.Label,
				"type":  n.Type,
				"color": n.Color,
				"size":  n.Size,
			},
			neo4j.EagerResultTransformer)
		if err != nil {
			return fmt.Errorf("failed to merge node %s: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges {
		_, err := neo4j.ExecuteQuery(ctx, s.driver,
			"MATCH (a:GraphNode {id: $source}) MATCH (b:GraphNode {id: $target}) MERGE (a)-[r:RELATES {type: $type}]->(b) SET r.weight = $weight",
			map[string]interface{}{
				"source": e.Source,
				"target": e.Target,
				"type":   e.Type,
				"weight": e.Weight,
			},
			neo4j.EagerResultTransformer)
		if err != nil {
			return fmt.Errorf("failed to merge edge %s->%s: %w", e.Source, e.Target, err)
		}
	}
	return nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
