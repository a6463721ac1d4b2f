package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	datagraph "github.com/yungbote/careermap-backend/internal/data/graph"
	"github.com/yungbote/careermap-backend/internal/modules/cache"
	"github.com/yungbote/careermap-backend/internal/modules/chat"
	"github.com/yungbote/careermap-backend/internal/modules/content"
	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/modules/retrieval"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/services"
)

type Services struct {
	Auth   services.AuthService
	Graph  services.GraphService
	Career services.CareerService
	Skill  services.SkillService
	Chat   services.ChatService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	resolver := graph.NewResolver(log, graphStore(log, cfg, clients, reposet), cfg.HopDepth)

	var cacheStore cache.Store
	if reposet.UserNodeCache != nil {
		var hot cache.Store
		if clients.Redis != nil {
			hot = cache.NewRedisStore(clients.Redis, cfg.CacheTTL)
		}
		cacheStore = cache.NewTieredStore(log, hot, cache.NewGormStore(reposet.UserNodeCache))
	}
	contentCache := cache.New(log, cacheStore)

	var rag *retrieval.Helper
	var chatRetriever chat.Retriever
	var lookup content.CatalogLookup
	if reposet.Catalog != nil {
		rag = retrieval.New(log, reposet.Catalog, clients.Embedder, cfg.SupportedUniv, cfg.GenerationTimeout)
		chatRetriever = rag
		lookup = rag
	}
	responder := chat.NewResponder(log, clients.Chat, chatRetriever, reposet.ChatMessage)

	return Services{
		Auth:  services.NewAuthService(log, reposet.User, cfg.JWTSecretKey, cfg.SessionTTL),
		Graph: services.NewGraphService(log, resolver),
		Career: services.NewCareerService(log, reposet.Node, contentCache,
			content.NewCareerGenerator(log, clients.Generation), responder, cfg.GenerationDeadline),
		Skill: services.NewSkillService(log, reposet.Node, contentCache,
			content.NewLearningGenerator(log, lookup), resolver),
		Chat: services.NewChatService(log, responder),
	}
}

// graphStore picks the resolver's read store. nil selects the synthetic dataset.
func graphStore(log *logger.Logger, cfg Config, clients Clients, reposet Repos) graph.Store {
	if cfg.GraphBackend == GraphBackendNeo4j {
		if clients.Neo4j != nil {
			return datagraph.NewNeo4jStore(clients.Neo4j, log)
		}
		log.Warn("GRAPH_BACKEND=neo4j without a neo4j connection; falling back")
	}
	if reposet.Node == nil || reposet.Edge == nil {
		return nil
	}
	return graph.NewRepoStore(reposet.Node, reposet.Edge)
}

// seedGraph loads the builtin career graph into an empty database and mirrors
// it into neo4j when configured. Existing data is left alone.
func seedGraph(ctx context.Context, log *logger.Logger, db *gorm.DB, clients Clients, reposet Repos) error {
	nodes, edges := graph.Builtin().Seed()

	if db != nil && reposet.Node != nil && reposet.Edge != nil {
		root, err := reposet.Node.GetByID(dbctx.Of(ctx), nodes[0].ID)
		if err != nil {
			return fmt.Errorf("check graph root: %w", err)
		}
		if root == nil {
			err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				dbc := dbctx.Context{Ctx: ctx, Tx: tx}
				for _, n := range nodes {
					if _, err := reposet.Node.CreateIfMissing(dbc, n); err != nil {
						return err
					}
				}
				_, err := reposet.Edge.Create(dbc, edges)
				return err
			})
			if err != nil {
				return fmt.Errorf("seed graph: %w", err)
			}
			log.Info("seeded career graph", "nodes", len(nodes), "edges", len(edges))
		}
	}

	if clients.Neo4j != nil {
		if err := datagraph.SyncCareerGraph(ctx, clients.Neo4j, log, nodes, edges); err != nil {
			log.Warn("neo4j graph sync failed (continuing)", "error", err)
		}
	}
	return nil
}
