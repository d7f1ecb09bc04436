package relation

import "strings"

// Lexical keyword classes for the deterministic fallback. entityA's class
// picks a per-class relation priority list; the first priority present in the
// vocabulary wins, else allowed[0].

var (
	plantKeywords   = []string{"松", "树", "林"}
	insectKeywords  = []string{"天牛", "昆虫", "媒介"}
	diseaseKeywords = []string{"线虫", "病", "症状"}
	envKeywords     = []string{"温度", "湿度", "气候", "环境"}
)

func ruleFallback(entityA, entityB string, allowed []string) string {
	switch {
	case containsAny(entityA, plantKeywords):
		if has(allowed, "易感") && containsAny(entityB, diseaseKeywords) {
			return "易感"
		}
		if has(allowed, "属于") && containsAny(entityB, plantKeywords) {
			return "属于"
		}
	case containsAny(entityA, insectKeywords):
		if has(allowed, "传播") {
			return "传播"
		}
	case containsAny(entityA, envKeywords):
		if has(allowed, "影响") {
			return "影响"
		}
	}
	return allowed[0]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func has(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
