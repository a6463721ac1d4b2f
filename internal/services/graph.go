package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type GraphService interface {
	Neighborhood(ctx context.Context, center string) graph.Neighborhood
}

type graphService struct {
	log      *logger.Logger
	resolver *graph.Resolver
}

func NewGraphService(log *logger.Logger, resolver *graph.Resolver) GraphService {
	return &graphService{log: log.With("service", "GraphService"), resolver: resolver}
}

func (gs *graphService) Neighborhood(ctx context.Context, center string) graph.Neighborhood {
	ctx, span := otel.Tracer("careermap/graph").Start(ctx, "graph.resolve")
	defer span.End()

	out := gs.resolver.Resolve(ctx, center)
	span.SetAttributes(
		attribute.String("graph.center", out.CenterID),
		attribute.Int("graph.nodes", len(out.Nodes)),
		attribute.Int("graph.links", len(out.Links)),
		attribute.Bool("graph.synthetic", out.Synthetic),
	)
	return out
}
