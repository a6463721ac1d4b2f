package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/platform/neo4jdb"
)

// SyncCareerGraph mirrors nodes and edges into neo4j as :CareerNode and
// :CAREER_EDGE. It is a no-op without a client.
func SyncCareerGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, nodes []*types.Node, edges []*types.Edge) error {
	if client == nil || client.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	nodeRecs := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.ID == "" {
			continue
		}
		nodeRecs = append(nodeRecs, map[string]any{
			"id":      n.ID,
			"type":    string(n.Type),
			"label":   n.Label,
			"summary": n.Summary,
			"metadata_json": func() string {
				if len(n.Metadata) == 0 {
					return ""
				}
				return string(n.Metadata)
			}(),
			"synced_at": now,
		})
	}

	rels := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		if e == nil || e.SourceID == "" || e.TargetID == "" {
			continue
		}
		weight := e.Weight
		if weight == 0 {
			weight = 1
		}
		rels = append(rels, map[string]any{
			"id":        e.ID.String(),
			"from_id":   e.SourceID,
			"to_id":     e.TargetID,
			"weight":    weight,
			"synced_at": now,
		})
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Best effort; restricted users may not create schema.
	if res, err := session.Run(ctx, `CREATE CONSTRAINT career_node_id_unique IF NOT EXISTS FOR (c:CareerNode) REQUIRE c.id IS UNIQUE`, nil); err != nil {
		if log != nil {
			log.Warn("neo4j schema init failed (continuing)", "error", err)
		}
	} else {
		_, _ = res.Consume(ctx)
	}
	if res, err := session.Run(ctx, `CREATE INDEX career_node_label_idx IF NOT EXISTS FOR (c:CareerNode) ON (c.label)`, nil); err != nil {
		if log != nil {
			log.Warn("neo4j schema init failed (continuing)", "error", err)
		}
	} else {
		_, _ = res.Consume(ctx)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if len(nodeRecs) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $nodes AS n
MERGE (c:CareerNode {id: n.id})
SET c += n
`, map[string]any{"nodes": nodeRecs})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if len(rels) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $rels AS r
MATCH (a:CareerNode {id: r.from_id})
MATCH (b:CareerNode {id: r.to_id})
MERGE (a)-[e:CAREER_EDGE {id: r.id}]->(b)
SET e.weight = r.weight,
    e.synced_at = r.synced_at
`, map[string]any{"rels": rels})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	if log != nil {
		log.Debug("neo4j career graph synced", "nodes", len(nodeRecs), "edges", len(rels))
	}
	return nil
}
