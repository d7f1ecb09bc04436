package analyzer

import (
	"math"
	"strings"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

// Named risk scenarios are fixed rule sets over the batch: weighted evidence
// indicators plus bonuses for specific entity-pair co-occurrence. A scenario
// is reported only above its minimum threshold.

const (
	scenarioPineWilt     = "松材线虫病"
	scenarioMinThreshold = 0.3

	vectorHostWeight    = 0.4
	symptomWeight       = 0.3
	vectorSymptomWeight = 0.2

	highRiskBar   = 0.7
	mediumRiskBar = 0.5
)

// Specific entity-pair co-occurrences worth extra evidence.
var pineWiltPairBonuses = []struct {
	entityA string
	entityB string
	bonus   float64
}{
	{"松墨天牛", "马尾松", 0.3},
	{"松墨天牛", "松针发黄", 0.25},
	{"松针变红", "马尾松", 0.2},
}

func validateScenarios(entities []model.DetectedEntity) model.ScenarioValidation {
	validation := model.ScenarioValidation{Scenarios: []model.ScenarioMatch{}}

	if match := validatePineWilt(entities); match != nil {
		validation.Scenarios = append(validation.Scenarios, *match)
	}

	for i := range validation.Scenarios {
		s := &validation.Scenarios[i]
		if validation.Leading == nil || s.Confidence > validation.Leading.Confidence {
			validation.Leading = s
		}
		if s.Confidence > validation.MaxConfidence {
			validation.MaxConfidence = s.Confidence
		}
	}

	return validation
}

func validatePineWilt(entities []model.DetectedEntity) *model.ScenarioMatch {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.KBName()
	}

	var hasVector, hasHost, hasSymptom bool
	for i, e := range entities {
		if e.Type == model.EntityTypeInsect || strings.Contains(names[i], "天牛") {
			hasVector = true
		}
		if e.Type == model.EntityTypeTree || strings.Contains(names[i], "松") {
			hasHost = true
		}
		if e.Type == model.EntityTypeSymptom {
			hasSymptom = true
		}
	}

	if !hasVector && !hasHost && !hasSymptom {
		return nil
	}

	var confidence float64
	var evidence []string

	if hasVector && hasHost {
		confidence += vectorHostWeight
		evidence = append(evidence, "检测到昆虫媒介和宿主植物")
	}
	if hasSymptom {
		confidence += symptomWeight
		evidence = append(evidence, "检测到疾病症状")
	}
	if hasVector && hasSymptom {
		confidence += vectorSymptomWeight
		evidence = append(evidence, "媒介昆虫与疾病症状共现")
	}

	for _, pair := range pineWiltPairBonuses {
		if anyContains(names, pair.entityA) && anyContains(names, pair.entityB) {
			confidence += pair.bonus
			evidence = append(evidence, "检测到关键组合: "+pair.entityA+" + "+pair.entityB)
		}
	}

	confidence = math.Min(confidence, 1.0)
	if confidence <= scenarioMinThreshold {
		return nil
	}

	return &model.ScenarioMatch{
		Scenario:       scenarioPineWilt,
		Confidence:     round1(confidence),
		Evidence:       evidence,
		RiskLevel:      riskLevel(confidence),
		Recommendation: pineWiltRecommendation(confidence),
	}
}

func riskLevel(confidence float64) string {
	switch {
	case confidence > highRiskBar:
		return model.RiskHigh
	case confidence > mediumRiskBar:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func pineWiltRecommendation(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "极可能是松材线虫病，建议立即采取隔离和防治措施"
	case confidence > 0.6:
		return "疑似松材线虫病，建议进行专业检测确认"
	default:
		return "存在松材线虫病风险，建议加强监测"
	}
}

func anyContains(names []string, want string) bool {
	for _, name := range names {
		if strings.Contains(name, want) {
			return true
		}
	}
	return false
}
