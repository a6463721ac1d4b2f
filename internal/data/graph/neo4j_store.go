package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/platform/neo4jdb"
)

// Neo4jStore reads the projected career graph.
type Neo4jStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeo4jStore(client *neo4jdb.Client, baseLog *logger.Logger) *Neo4jStore {
	return &Neo4jStore{client: client, log: baseLog.With("store", "Neo4jCareerGraph")}
}

func (s *Neo4jStore) GetNode(ctx context.Context, id string) (*types.Node, error) {
	nodes, err := s.readNodes(ctx, `MATCH (c:CareerNode {id: $id}) RETURN c LIMIT 1`, map[string]any{"id": id})
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

func (s *Neo4jStore) FindNodeByLabel(ctx context.Context, label string) (*types.Node, error) {
	nodes, err := s.readNodes(ctx, `MATCH (c:CareerNode {label: $label}) RETURN c ORDER BY c.id LIMIT 1`, map[string]any{"label": label})
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

func (s *Neo4jStore) GetNodes(ctx context.Context, ids []string) ([]*types.Node, error) {
	if len(ids) == 0 {
		return []*types.Node{}, nil
	}
	return s.readNodes(ctx, `MATCH (c:CareerNode) WHERE c.id IN $ids RETURN c ORDER BY c.id`, map[string]any{"ids": ids})
}

func (s *Neo4jStore) GetIncidentEdges(ctx context.Context, ids []string) ([]*types.Edge, error) {
	if len(ids) == 0 {
		return []*types.Edge{}, nil
	}
	if s.client == nil || s.client.Driver == nil {
		return nil, fmt.Errorf("neo4j career graph: client not configured")
	}
	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (a:CareerNode)-[e:CAREER_EDGE]->(b:CareerNode)
WHERE a.id IN $ids OR b.id IN $ids
RETURN e.id AS id, a.id AS source, b.id AS target, e.weight AS weight
ORDER BY e.synced_at, e.id
`, map[string]any{"ids": ids})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		edges := make([]*types.Edge, 0, len(records))
		for _, rec := range records {
			e := &types.Edge{Weight: 1}
			if v, ok := rec.Get("id"); ok {
				if s, ok := v.(string); ok {
					e.ID, _ = uuid.Parse(s)
				}
			}
			if v, ok := rec.Get("source"); ok {
				e.SourceID, _ = v.(string)
			}
			if v, ok := rec.Get("target"); ok {
				e.TargetID, _ = v.(string)
			}
			if v, ok := rec.Get("weight"); ok {
				switch w := v.(type) {
				case float64:
					e.Weight = w
				case int64:
					e.Weight = float64(w)
				}
			}
			edges = append(edges, e)
		}
		return edges, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j career graph: read edges: %w", err)
	}
	return out.([]*types.Edge), nil
}

func (s *Neo4jStore) readNodes(ctx context.Context, cypher string, params map[string]any) ([]*types.Node, error) {
	if s.client == nil || s.client.Driver == nil {
		return nil, fmt.Errorf("neo4j career graph: client not configured")
	}
	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]*types.Node, 0, len(records))
		for _, rec := range records {
			v, ok := rec.Get("c")
			if !ok {
				continue
			}
			if n, ok := v.(neo4j.Node); ok {
				nodes = append(nodes, nodeFromProps(n.Props))
			}
		}
		return nodes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j career graph: read nodes: %w", err)
	}
	return out.([]*types.Node), nil
}

func nodeFromProps(props map[string]any) *types.Node {
	str := func(k string) string {
		s, _ := props[k].(string)
		return s
	}
	n := &types.Node{
		ID:      str("id"),
		Type:    types.NodeType(str("type")),
		Label:   str("label"),
		Summary: str("summary"),
	}
	if meta := str("metadata_json"); meta != "" {
		n.Metadata = []byte(meta)
	}
	return n
}
