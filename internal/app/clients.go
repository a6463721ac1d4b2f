package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/careermap-backend/internal/data/db"
	"github.com/yungbote/careermap-backend/internal/platform/llm"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/platform/neo4jdb"
	"github.com/yungbote/careermap-backend/internal/platform/redis"
)

// Clients holds external connections. Every field may be nil: each missing
// capability disables its feature instead of failing startup.
type Clients struct {
	Postgres *db.PostgresService
	DB       *gorm.DB
	Redis    *goredis.Client
	Neo4j    *neo4jdb.Client

	// Generation serves career content; Chat serves the assistant.
	Generation *llm.Cascade
	Chat       *llm.Cascade
	Embedder   llm.Embedder
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Postgres
	if cfg.DatabaseURL != "" {
		pg, err := db.NewPostgresService(log, cfg.DatabaseURL)
		if err != nil {
			return Clients{}, fmt.Errorf("init postgres: %w", err)
		}
		if err := pg.AutoMigrateAll(); err != nil {
			_ = pg.Close()
			return Clients{}, fmt.Errorf("postgres automigrate: %w", err)
		}
		out.Postgres = pg
		out.DB = pg.DB()
	} else {
		log.Warn("DATABASE_URL not set; serving the synthetic graph without persistence")
	}

	// Redis
	rdb, err := redis.NewClient(log, redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Warn("redis unavailable; content cache stays on postgres", "error", err)
	} else {
		out.Redis = rdb
	}

	// Neo4j
	n4j, err := neo4jdb.New(log, cfg.Neo4j)
	if err != nil {
		log.Warn("neo4j unavailable; graph reads stay on postgres", "error", err)
	} else {
		out.Neo4j = n4j
	}

	// LLM providers
	anthropic := llm.NewAnthropic(llm.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel})
	perplexity := llm.NewOpenAICompatible(llm.OpenAICompatibleConfig{
		Name:    "perplexity",
		APIKey:  cfg.PerplexityAPIKey,
		BaseURL: cfg.PerplexityBaseURL,
		Model:   cfg.PerplexityModel,
	})
	perplexityChat := llm.NewOpenAICompatible(llm.OpenAICompatibleConfig{
		Name:    "perplexity",
		APIKey:  cfg.PerplexityAPIKey,
		BaseURL: cfg.PerplexityBaseURL,
		Model:   cfg.PerplexityChatModel,
	})
	out.Generation = llm.NewCascade(log,
		llm.Step{Provider: anthropic, Timeout: cfg.GenerationTimeout, TimeoutRetries: 1},
		llm.Step{Provider: perplexity, Timeout: cfg.GenerationTimeout, TimeoutRetries: 1},
	)
	out.Chat = llm.NewCascade(log,
		llm.Step{Provider: perplexityChat, Timeout: cfg.GenerationTimeout},
		llm.Step{Provider: anthropic, Timeout: cfg.GenerationTimeout},
	)
	if e := llm.NewOpenAIEmbedder(llm.OpenAIEmbedderConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIEmbedModel, Timeout: cfg.GenerationTimeout}); e != nil {
		out.Embedder = e
	}
	log.Info("LLM providers wired",
		"generation", out.Generation.Providers(),
		"chat", out.Chat.Providers(),
		"embeddings", out.Embedder != nil,
	)
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(context.Background())
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}
