package model

// Entity type tags produced by the recognition layer.
const (
	EntityTypeInsect  = "insect"
	EntityTypeTree    = "tree"
	EntityTypeSymptom = "disease_symptom"
)

// DetectedEntity is one recognized entity from a co-observed batch (typically
// an image detection), optionally resolved against the knowledge base.
type DetectedEntity struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Confidence      float64 `json:"confidence"`
	MatchedKBEntity string  `json:"matched_kb_entity,omitempty"`
}

// KBName returns the knowledge-base name when resolved, else the raw name.
func (e DetectedEntity) KBName() string {
	if e.MatchedKBEntity != "" {
		return e.MatchedKBEntity
	}
	return e.Name
}

// Relationship sources.
const (
	SourceExisting  = "existing"
	SourceInference = "ai_inference"
)

// Relationship is a stored or inferred link between two batch entities.
type Relationship struct {
	Head       string  `json:"head_entity"`
	Relation   string  `json:"relation"`
	Tail       string  `json:"tail_entity"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	HeadType   string  `json:"entity_a_type,omitempty"`
	TailType   string  `json:"entity_b_type,omitempty"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Risk tiers for a validated scenario.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// ScenarioMatch is one named risk scenario that passed its evidence threshold.
type ScenarioMatch struct {
	Scenario       string   `json:"scenario"`
	Confidence     float64  `json:"confidence"`
	Evidence       []string `json:"evidence"`
	RiskLevel      string   `json:"risk_assessment"`
	Recommendation string   `json:"recommendation"`
}

// ScenarioValidation aggregates every scenario evaluated against a batch.
type ScenarioValidation struct {
	Scenarios     []ScenarioMatch `json:"validated_scenarios"`
	Leading       *ScenarioMatch  `json:"highest_confidence_scenario,omitempty"`
	MaxConfidence float64         `json:"max_confidence"`
}

// RelationshipAnalysis is the full result of analyzing a co-observed batch.
type RelationshipAnalysis struct {
	EntityCount     int                `json:"entity_count"`
	Entities        []DetectedEntity   `json:"detected_entities,omitempty"`
	Existing        []Relationship     `json:"existing_relationships"`
	Potential       []Relationship     `json:"potential_relationships"`
	Validation      ScenarioValidation `json:"validation_result"`
	Confidence      float64            `json:"relationship_confidence"`
	Recommendations []string           `json:"recommendations"`
	Summary         string             `json:"analysis_summary"`
}
