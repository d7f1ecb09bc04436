package server

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/pinewatch/pinegraph/internal/config"
	"github.com/pinewatch/pinegraph/internal/core"
	"github.com/pinewatch/pinegraph/internal/driver"
	"github.com/pinewatch/pinegraph/internal/llm"
	"github.com/pinewatch/pinegraph/internal/store"
)

type Server struct {
	Graph *core.PineGraph
	Cfg   *config.Config
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults with env overrides", cfgPath, err)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	// Env vars win over the config file.
	if v := os.Getenv("GRAPH_URI"); v != "" {
		cfg.Graph.URI = v
	}
	if v := os.Getenv("GRAPH_USER"); v != "" {
		cfg.Graph.User = v
	}
	if v := os.Getenv("GRAPH_PASSWORD"); v != "" {
		cfg.Graph.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	d, err := driver.NewBoltDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
	if err != nil {
		log.Fatalf("Failed to connect to graph database: %v", err)
	}

	// The service stays up without a generative backend; the oracle and
	// similarity index then run on their deterministic fallbacks.
	var llmClient llm.Client
	var embedder llm.Embedder
	if cfg.LLM.Provider == "" {
		log.Printf("No LLM provider configured, running with rule-based fallbacks only")
	} else {
		llmClient, embedder, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Printf("Warning: LLM client init failed (%v), running with rule-based fallbacks only", err)
			llmClient, embedder = nil, nil
		}
	}

	st := store.New(d)
	g := core.New(st, llmClient, embedder, cfg)

	if err := g.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: index bootstrap failed: %v", err)
	}
	if err := st.Bootstrap(context.Background(), cfg.Vocabulary.Relations); err != nil {
		log.Printf("Warning: seed bootstrap failed: %v", err)
	}

	return &Server{Graph: g, Cfg: cfg}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Root)
	r.GET("/api/graph", s.GetGraph)
	r.GET("/api/relations", s.GetRelations)

	r.GET("/api/node/similar/:name", s.GetSimilarEntities)
	r.POST("/api/node/generate-triples", s.GenerateCandidateTriples)
	r.POST("/api/node/add", s.AddNodeWithSelectedTriple)
	r.DELETE("/api/node/delete", s.DeleteNode)
	r.PUT("/api/node/update", s.UpdateNode)

	r.DELETE("/api/edge/delete/:id", s.DeleteEdge)
	r.PUT("/api/edge/update", s.UpdateEdge)

	r.POST("/api/entities/validate", s.ValidateEntities)

	r.POST("/api/graph/classify-high-level-nodes", s.ClassifyHighLevelNodes)
	r.POST("/api/graph/add-high-level-node", s.AddHighLevelNode)
	r.DELETE("/api/graph/remove-high-level-node", s.RemoveHighLevelNode)

	return r
}
