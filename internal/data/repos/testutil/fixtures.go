package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/domain/user"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *user.User {
	tb.Helper()
	u := &user.User{Username: username, HashedPassword: "pw", University: "UC Berkeley"}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedNode(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, nodeType graph.NodeType, label string) *graph.Node {
	tb.Helper()
	n := &graph.Node{ID: id, Type: nodeType, Label: label}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed node: %v", err)
	}
	return n
}

func SeedEdge(tb testing.TB, ctx context.Context, tx *gorm.DB, source, target string) *graph.Edge {
	tb.Helper()
	e := &graph.Edge{SourceID: source, TargetID: target}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed edge: %v", err)
	}
	return e
}
