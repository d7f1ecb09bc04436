// Package classifier tags node names as abstract categories ("high-level
// nodes") using pure lexical and degree rules. No I/O: the same input always
// produces the same output set.
package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

// Names that are categories outright.
var categoryKeywords = map[string]bool{
	// taxa and pathogen classes
	"天牛": true, "线虫": true, "松属": true, "病害": true, "昆虫": true,
	"真菌": true, "病毒": true, "细菌": true,
	// techniques and methods
	"技术": true, "方法": true, "算法": true, "模型": true, "指数": true,
	"特征": true, "指标": true,
	// disciplines
	"学": true, "保护学": true, "昆虫学": true, "病理学": true,
	"检疫学": true, "生态学": true,
	// control measures
	"防治": true, "措施": true, "检疫": true, "监测": true, "诊断": true,
	"治疗": true,
	// geography and time
	"省份": true, "城市": true, "国家": true, "地区": true, "区域": true,
	"年份": true, "时间": true, "季节": true,
	// other abstract concepts
	"风险评估": true, "早期诊断": true, "生态服务": true, "能量代谢": true,
	"生理指标": true, "基因": true, "代谢通路": true, "种群动态": true,
	"植被指数": true, "光谱特征": true, "多尺度监测": true, "研究模型": true,
	"软件": true,
}

// Category words a very short name may contain.
var shortCategoryWords = []string{"天牛", "线虫", "松属", "病害", "昆虫", "真菌"}

var categorySuffixes = []string{
	"学", "技术", "方法", "措施", "防治", "监测", "诊断", "评估",
	"指标", "特征", "指数", "模型", "算法", "通路",
}

// The discipline suffix bypasses the suffix-rule length gate.
const disciplineSuffix = "学"

var categoryPrefixes = []string{
	"物理", "化学", "生物", "营林", "检疫", "分子", "遥感",
	"森林", "林业", "生态", "环境",
}

// Markers of a concrete species or disease instance; block the degree rule.
var concreteMarkers = []string{"松", "天牛", "线虫", "病"}

// Category words checked by the exclusion pass.
var exclusionCategories = []string{"天牛", "线虫", "松属", "病害", "松", "虫"}

// Classifier holds the tunable exclusion threshold.
type Classifier struct {
	// ExclusionSlack: a matched name containing a category word is demoted
	// when it is more than this many characters longer than that word.
	ExclusionSlack int
}

func New(exclusionSlack int) *Classifier {
	if exclusionSlack <= 0 {
		exclusionSlack = 2
	}
	return &Classifier{ExclusionSlack: exclusionSlack}
}

// Classify returns the subset of names judged to be abstract categories.
// degrees may be nil; it only enables the degree-based rule.
func (c *Classifier) Classify(names []string, degrees map[string]int) map[string]bool {
	highLevel := make(map[string]bool)

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if c.isHighLevel(name, degrees) {
			highLevel[name] = true
		}
	}

	return highLevel
}

// ClassifyTags runs Classify and assigns tiers: exact category keywords are
// core vocabulary, everything else matched by pattern is generic.
func (c *Classifier) ClassifyTags(names []string, degrees map[string]int) []model.HighLevelTag {
	matched := c.Classify(names, degrees)

	tags := make([]model.HighLevelTag, 0, len(matched))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if !matched[name] {
			continue
		}
		tier := model.TierGeneric
		if categoryKeywords[name] {
			tier = model.TierCore
		}
		tags = append(tags, model.HighLevelTag{Name: name, Tier: tier})
		delete(matched, name) // dedupe repeated input names
	}
	return tags
}

func (c *Classifier) isHighLevel(name string, degrees map[string]int) bool {
	length := utf8.RuneCountInString(name)
	matched := false

	switch {
	case categoryKeywords[name]:
		matched = true

	case length <= 3:
		for _, w := range shortCategoryWords {
			if strings.Contains(name, w) {
				matched = true
				break
			}
		}

	case hasAnySuffix(name, categorySuffixes):
		// Short suffixed names are category-like; longer ones only when the
		// suffix marks a discipline.
		if length <= 6 || strings.HasSuffix(name, disciplineSuffix) {
			matched = true
		}

	case hasAnyPrefix(name, categoryPrefixes):
		if length <= 8 {
			matched = true
		}
	}

	// Degree rule: a short, heavily connected name without concrete species
	// markers behaves like a hub category.
	if !matched && degrees != nil {
		if degrees[name] >= 10 && length <= 4 && !containsAny(name, concreteMarkers) {
			matched = true
		}
	}

	// Exclusion pass: a name built on a category word but noticeably longer
	// than it is a concrete instance, not the category itself.
	if matched {
		for _, category := range exclusionCategories {
			if strings.Contains(name, category) &&
				length > utf8.RuneCountInString(category)+c.ExclusionSlack {
				return false
			}
		}
	}

	return matched
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, pre := range prefixes {
		if strings.HasPrefix(s, pre) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
