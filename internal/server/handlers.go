package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "pinegraph",
		"status":  "ok",
	})
}

func (s *Server) GetGraph(c *gin.Context) {
	export, err := s.Graph.ExportGraph(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}

func (s *Server) GetRelations(c *gin.Context) {
	relations, err := s.Graph.Store.ValidRelations(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relations": relations})
}

func (s *Server) GetSimilarEntities(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity name must not be empty"})
		return
	}

	topN := s.Cfg.Similarity.DefaultTopN
	if raw := c.Query("topn"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topN = n
		}
	}

	result, err := s.Graph.Onboarding.Discover(c.Request.Context(), name, topN)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input":            result.Input,
		"similar_entities": result.Candidates,
		"stats": gin.H{
			"in_graph_count":  result.InGraphCount,
			"out_graph_count": result.OutGraphCount,
			"total_returned":  len(result.Candidates),
		},
	})
}

type GenerateTriplesRequest struct {
	EntityName    string `json:"entity_name" binding:"required"`
	SimilarEntity string `json:"similar_entity" binding:"required"`
}

func (s *Server) GenerateCandidateTriples(c *gin.Context) {
	var req GenerateTriplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	candidates, err := s.Graph.Onboarding.Expand(c.Request.Context(), req.EntityName, req.SimilarEntity)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input_entity":      strings.TrimSpace(req.EntityName),
		"similar_entity":    strings.TrimSpace(req.SimilarEntity),
		"candidate_triples": candidates,
		"total_candidates":  len(candidates),
	})
}

type AddNodeRequest struct {
	EntityName     string                `json:"entity_name" binding:"required"`
	SimilarEntity  string                `json:"similar_entity"`
	SelectedTriple model.CandidateTriple `json:"selected_triple" binding:"required"`
}

func (s *Server) AddNodeWithSelectedTriple(c *gin.Context) {
	var req AddNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	triple, err := s.Graph.Onboarding.Commit(c.Request.Context(), req.SelectedTriple)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "entity added",
		"triple":  triple,
		"inference_path": gin.H{
			"input":          strings.TrimSpace(req.EntityName),
			"similar_entity": strings.TrimSpace(req.SimilarEntity),
		},
	})
}

type NodeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) DeleteNode(c *gin.Context) {
	var req NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Graph.Store.DeleteNode(c.Request.Context(), req.Name); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "node deleted", "name": req.Name})
}

type UpdateNodeRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

func (s *Server) UpdateNode(c *gin.Context) {
	var req UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Graph.Store.RenameNode(c.Request.Context(), req.OldName, req.NewName); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "node renamed", "old_name": req.OldName, "new_name": req.NewName})
}

func (s *Server) DeleteEdge(c *gin.Context) {
	id := c.Param("id")
	if err := s.Graph.Store.DeleteEdge(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "edge deleted", "id": id})
}

type UpdateEdgeRequest struct {
	ID       string `json:"id" binding:"required"`
	Relation string `json:"relation" binding:"required"`
}

func (s *Server) UpdateEdge(c *gin.Context) {
	var req UpdateEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Graph.Store.UpdateEdgeRelation(c.Request.Context(), req.ID, req.Relation); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "edge updated", "id": req.ID, "relation": req.Relation})
}

type ValidateEntitiesRequest struct {
	Entities []model.DetectedEntity `json:"entities"`
}

func (s *Server) ValidateEntities(c *gin.Context) {
	var req ValidateEntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Batches below the minimum produce a structured zero-confidence result,
	// not an error.
	analysis := s.Graph.Analyzer.Analyze(c.Request.Context(), req.Entities)
	c.JSON(http.StatusOK, analysis)
}

type ClassifyRequest struct {
	Replace bool `json:"replace"`
}

func (s *Server) ClassifyHighLevelNodes(c *gin.Context) {
	var req ClassifyRequest
	// An absent or malformed body means replace=false.
	_ = c.ShouldBindJSON(&req)

	tags, err := s.Graph.ReclassifyHighLevelNodes(c.Request.Context(), req.Replace)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"high_level_nodes": tags, "total": len(tags)})
}

type HighLevelNodeRequest struct {
	Name string `json:"node_name" binding:"required"`
	Tier string `json:"node_type"`
}

func (s *Server) AddHighLevelNode(c *gin.Context) {
	var req HighLevelNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tier := req.Tier
	if tier == "" {
		tier = model.TierGeneric
	}
	tag := model.HighLevelTag{Name: req.Name, Tier: tier}
	if err := s.Graph.Store.SaveHighLevelTags(c.Request.Context(), []model.HighLevelTag{tag}, false); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "high-level node added", "node": tag})
}

func (s *Server) RemoveHighLevelNode(c *gin.Context) {
	var req HighLevelNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := s.Graph.Store.RemoveHighLevelTag(c.Request.Context(), req.Name); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "high-level node removed", "node_name": req.Name})
}
