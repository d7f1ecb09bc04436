// Package analyzer assesses a batch of co-observed entities: known links,
// inferred potential links, named risk scenarios, and an aggregate
// confidence with recommendations.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

// Graph is the read surface the analyzer needs.
type Graph interface {
	EdgesOf(ctx context.Context, name string) ([]model.Triple, error)
	ValidRelations(ctx context.Context) ([]string, error)
}

// Inferrer chooses one relation from a shortlist for an entity pair.
type Inferrer interface {
	Infer(ctx context.Context, entityA, entityB string, allowed []string) (string, error)
}

// Relation shortlists per entity-type pair; lookups try both orders.
var typePairShortlists = map[[2]string][]string{
	{model.EntityTypeInsect, model.EntityTypeSymptom}:  {"传播", "携带", "引起"},
	{model.EntityTypeInsect, model.EntityTypeTree}:     {"寄主", "感染", "攻击"},
	{model.EntityTypeTree, model.EntityTypeSymptom}:    {"表现", "易感", "出现"},
	{model.EntityTypeSymptom, model.EntityTypeSymptom}: {"伴随", "导致", "发展"},
	{model.EntityTypeInsect, model.EntityTypeInsect}:   {"竞争", "协同", "替代"},
}

// Extra confidence for relations that matter most in this domain.
var relationBoosts = map[string]float64{
	"传播": 0.2,
	"感染": 0.2,
	"易感": 0.15,
	"寄主": 0.15,
}

const (
	inferenceBaseConfidence = 0.6
	recognitionWeight       = 0.2
	kbMatchBonus            = 0.1
	highConfidenceBar       = 0.7

	existingWeight   = 0.3
	potentialWeight  = 0.2
	validationWeight = 0.5
)

// Analyzer runs the batch pipeline. Per-pair failures are logged and the
// pair omitted; only a too-small batch short-circuits, and that returns a
// structured zero-confidence result rather than an error.
type Analyzer struct {
	Graph  Graph
	Oracle Inferrer
}

func New(graph Graph, oracle Inferrer) *Analyzer {
	return &Analyzer{Graph: graph, Oracle: oracle}
}

// Analyze runs the full pipeline over a batch of detected entities.
func (a *Analyzer) Analyze(ctx context.Context, entities []model.DetectedEntity) *model.RelationshipAnalysis {
	if len(entities) < 2 {
		return &model.RelationshipAnalysis{
			EntityCount:     len(entities),
			Existing:        []model.Relationship{},
			Potential:       []model.Relationship{},
			Confidence:      0.0,
			Recommendations: []string{"需要检测到至少2个实体才能进行关系分析"},
			Summary:         fmt.Sprintf("检测到%d个实体，数量不足，无法进行关系分析。", len(entities)),
		}
	}

	existing := a.lookupExisting(ctx, entities)
	potential := a.inferPotential(ctx, entities, existing)
	validation := validateScenarios(entities)
	confidence := aggregateConfidence(existing, potential, validation)
	recommendations := buildRecommendations(entities, potential, validation)

	return &model.RelationshipAnalysis{
		EntityCount:     len(entities),
		Entities:        entities,
		Existing:        existing,
		Potential:       potential,
		Validation:      validation,
		Confidence:      confidence,
		Recommendations: recommendations,
		Summary:         buildSummary(entities, existing, validation),
	}
}

// lookupExisting finds stored triples connecting each unordered pair, in
// either direction. Hits carry confidence 1.0.
func (a *Analyzer) lookupExisting(ctx context.Context, entities []model.DetectedEntity) []model.Relationship {
	existing := []model.Relationship{}

	// The last entity has no pairs left, so its edges are never needed.
	for i := 0; i < len(entities)-1; i++ {
		nameA := entities[i].KBName()
		edges, err := a.Graph.EdgesOf(ctx, nameA)
		if err != nil {
			log.Printf("analyzer: edge lookup for '%s' failed, skipping its pairs: %v", nameA, err)
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			nameB := entities[j].KBName()
			for _, edge := range edges {
				connects := (edge.Head == nameA && edge.Tail == nameB) ||
					(edge.Head == nameB && edge.Tail == nameA)
				if connects {
					existing = append(existing, model.Relationship{
						Head:       edge.Head,
						Relation:   edge.Relation,
						Tail:       edge.Tail,
						Source:     model.SourceExisting,
						Confidence: 1.0,
					})
				}
			}
		}
	}

	return existing
}

// inferPotential proposes relations for pairs without a stored link.
func (a *Analyzer) inferPotential(ctx context.Context, entities []model.DetectedEntity, existing []model.Relationship) []model.Relationship {
	potential := []model.Relationship{}

	valid, err := a.Graph.ValidRelations(ctx)
	if err != nil || len(valid) == 0 {
		log.Printf("analyzer: relation vocabulary unavailable, skipping potential inference: %v", err)
		return potential
	}
	validSet := make(map[string]bool, len(valid))
	for _, r := range valid {
		validSet[r] = true
	}

	linked := make(map[[2]string]bool, len(existing))
	for _, rel := range existing {
		linked[pairKey(rel.Head, rel.Tail)] = true
	}

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			entityA, entityB := entities[i], entities[j]
			nameA, nameB := entityA.KBName(), entityB.KBName()
			if linked[pairKey(nameA, nameB)] {
				continue
			}

			shortlist := shortlistFor(entityA.Type, entityB.Type, valid)

			relation, err := a.Oracle.Infer(ctx, nameA, nameB, shortlist)
			if err != nil {
				log.Printf("analyzer: inference for %s <-> %s failed, omitting pair: %v", nameA, nameB, err)
				continue
			}
			if !validSet[relation] {
				// Shortlist entries are curated independently of the stored
				// vocabulary; only vocabulary members may be reported.
				continue
			}

			potential = append(potential, model.Relationship{
				Head:       nameA,
				Relation:   relation,
				Tail:       nameB,
				Source:     model.SourceInference,
				Confidence: inferenceConfidence(entityA, entityB, relation),
				HeadType:   entityA.Type,
				TailType:   entityB.Type,
				Reasoning:  fmt.Sprintf("基于%s和%s的典型关系模式推理", entityA.Type, entityB.Type),
			})
		}
	}

	return potential
}

func shortlistFor(typeA, typeB string, valid []string) []string {
	if list, ok := typePairShortlists[[2]string{typeA, typeB}]; ok {
		return list
	}
	if list, ok := typePairShortlists[[2]string{typeB, typeA}]; ok {
		return list
	}
	return valid
}

// inferenceConfidence scores an inferred relation from the pair's recognition
// confidence, knowledge-base resolution, and the relation's domain weight.
func inferenceConfidence(entityA, entityB model.DetectedEntity, relation string) float64 {
	confidence := inferenceBaseConfidence

	confidence += recognitionWeight * (entityA.Confidence + entityB.Confidence) / 2

	if entityA.MatchedKBEntity != "" {
		confidence += kbMatchBonus
	}
	if entityB.MatchedKBEntity != "" {
		confidence += kbMatchBonus
	}

	confidence += relationBoosts[relation]

	return round1(math.Min(confidence, 1.0))
}

func aggregateConfidence(existing, potential []model.Relationship, validation model.ScenarioValidation) float64 {
	if len(existing) == 0 && len(potential) == 0 {
		return 0.0
	}

	total := existingWeight * float64(len(existing))

	var potentialSum float64
	for _, rel := range potential {
		potentialSum += rel.Confidence
	}
	total += potentialWeight * potentialSum

	if validation.Leading != nil {
		total += validationWeight * validation.Leading.Confidence
	}

	return round1(math.Min(total, 1.0))
}

func buildRecommendations(entities []model.DetectedEntity, potential []model.Relationship, validation model.ScenarioValidation) []string {
	var recommendations []string

	if validation.Leading != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("检测结果提示可能是%s，%s", validation.Leading.Scenario, validation.Leading.Recommendation))
	}

	highConfidence := 0
	for _, rel := range potential {
		if rel.Confidence > highConfidenceBar {
			highConfidence++
		}
	}
	if highConfidence > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("发现%d个高置信度的潜在关系，建议添加到知识库", highConfidence))
	}

	types := make(map[string]bool, len(entities))
	for _, e := range entities {
		types[e.Type] = true
	}
	if types[model.EntityTypeInsect] && types[model.EntityTypeTree] {
		recommendations = append(recommendations, "检测到昆虫和植物，建议监测传播风险")
	}
	if types[model.EntityTypeSymptom] {
		recommendations = append(recommendations, "检测到疾病症状，建议及时采取防治措施")
	}

	return recommendations
}

func buildSummary(entities []model.DetectedEntity, existing []model.Relationship, validation model.ScenarioValidation) string {
	summary := fmt.Sprintf("检测到%d个实体，发现%d个已知关系。", len(entities), len(existing))
	if validation.Leading != nil {
		summary += fmt.Sprintf("最可能的场景是%s（置信度: %.2f）。", validation.Leading.Scenario, validation.Leading.Confidence)
	} else {
		summary += "未识别出明确的疾病场景。"
	}
	return summary
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
