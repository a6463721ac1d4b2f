package app

import (
	"time"

	"github.com/yungbote/careermap-backend/internal/http/middleware"
	"github.com/yungbote/careermap-backend/internal/platform/envutil"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/platform/neo4jdb"
)

const (
	GraphBackendPostgres = "postgres"
	GraphBackendNeo4j    = "neo4j"
)

type Config struct {
	Port        string
	ServiceName string
	DatabaseURL string

	AnthropicAPIKey     string
	AnthropicModel      string
	PerplexityAPIKey    string
	PerplexityModel     string
	PerplexityChatModel string
	PerplexityBaseURL   string
	OpenAIAPIKey        string
	OpenAIEmbedModel    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	Neo4j        neo4jdb.Config
	GraphBackend string
	HopDepth     int
	SeedGraph    bool

	GenerationTimeout  time.Duration
	GenerationDeadline time.Duration
	SupportedUniv      string

	JWTSecretKey string
	SessionTTL   time.Duration

	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("SERVICE_NAME", "careermap"),
		DatabaseURL: envutil.String("DATABASE_URL", ""),

		AnthropicAPIKey:     envutil.String("ANTHROPIC_API_KEY", ""),
		AnthropicModel:      envutil.String("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		PerplexityAPIKey:    envutil.String("PERPLEXITY_API_KEY", ""),
		PerplexityModel:     envutil.String("PERPLEXITY_MODEL", "sonar-pro"),
		PerplexityChatModel: envutil.String("PERPLEXITY_CHAT_MODEL", "sonar"),
		PerplexityBaseURL:   envutil.String("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		OpenAIAPIKey:        envutil.String("OPENAI_API_KEY", ""),
		OpenAIEmbedModel:    envutil.String("OPENAI_EMBED_MODEL", "text-embedding-3-small"),

		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),
		CacheTTL:      envutil.Seconds("REDIS_CACHE_TTL_SECONDS", 24*time.Hour),

		Neo4j:        neo4jdb.ConfigFromEnv(),
		GraphBackend: envutil.String("GRAPH_BACKEND", GraphBackendPostgres),
		HopDepth:     envutil.Int("GRAPH_HOP_DEPTH", 2),
		SeedGraph:    envutil.Bool("SEED_GRAPH", true),

		GenerationTimeout:  envutil.Seconds("GENERATION_TIMEOUT_SECONDS", 10*time.Second),
		GenerationDeadline: envutil.Seconds("GENERATION_DEADLINE_SECONDS", 30*time.Second),
		SupportedUniv:      envutil.String("SUPPORTED_UNIVERSITY", "berkeley"),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		SessionTTL:   envutil.Seconds("SESSION_TTL_SECONDS", 7*24*time.Hour),

		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),
	}
	if cfg.GraphBackend != GraphBackendPostgres && cfg.GraphBackend != GraphBackendNeo4j {
		log.Warn("unknown GRAPH_BACKEND, using postgres", "graph_backend", cfg.GraphBackend)
		cfg.GraphBackend = GraphBackendPostgres
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set; using the development default")
	}
	log.Info("configuration loaded",
		"storage", cfg.DatabaseURL != "",
		"anthropic", cfg.AnthropicAPIKey != "",
		"perplexity", cfg.PerplexityAPIKey != "",
		"embeddings", cfg.OpenAIAPIKey != "",
		"redis", cfg.RedisAddr != "",
		"neo4j", cfg.Neo4j.URI != "",
		"graph_backend", cfg.GraphBackend,
	)
	return cfg
}
