package similarity

import "github.com/pinewatch/pinegraph/internal/core/model"

// Static specific-to-generic associations for the pine wilt domain. These
// keep the onboarding workflow usable when no embedding backend is deployed.

var fallbackGroups = map[string][]model.SimilarityResult{
	"湿地松": {
		{Term: "马尾松", Score: 0.89}, {Term: "黑松", Score: 0.85}, {Term: "赤松", Score: 0.82}, {Term: "华山松", Score: 0.79},
		{Term: "落叶松", Score: 0.76}, {Term: "红松", Score: 0.74}, {Term: "云杉", Score: 0.71}, {Term: "冷杉", Score: 0.68},
		{Term: "雪松", Score: 0.65}, {Term: "松树", Score: 0.62},
	},
	"天牛": {
		{Term: "松墨天牛", Score: 0.92}, {Term: "媒介昆虫", Score: 0.87}, {Term: "传播媒介", Score: 0.84}, {Term: "昆虫", Score: 0.79},
		{Term: "害虫", Score: 0.76}, {Term: "虫媒", Score: 0.73}, {Term: "天敌", Score: 0.70}, {Term: "寄主", Score: 0.67},
		{Term: "载体", Score: 0.64}, {Term: "中间宿主", Score: 0.61},
	},
	"线虫": {
		{Term: "松材线虫", Score: 0.95}, {Term: "病原体", Score: 0.90}, {Term: "病原", Score: 0.87}, {Term: "寄生虫", Score: 0.83},
		{Term: "微生物", Score: 0.78}, {Term: "致病菌", Score: 0.75}, {Term: "病菌", Score: 0.72}, {Term: "虫害", Score: 0.68},
		{Term: "病害", Score: 0.65}, {Term: "病原物", Score: 0.62},
	},
	"高温": {
		{Term: "温度", Score: 0.88}, {Term: "气候", Score: 0.85}, {Term: "环境温度", Score: 0.82}, {Term: "热量", Score: 0.78},
		{Term: "气温", Score: 0.75}, {Term: "湿度", Score: 0.72}, {Term: "低温", Score: 0.69}, {Term: "温差", Score: 0.66},
		{Term: "环境条件", Score: 0.63}, {Term: "气候条件", Score: 0.60},
	},
}

// Single best-match associations for terms without a full ranked group.
var fallbackAssociations = map[string]string{
	"黑松": "马尾松", "红松": "马尾松", "赤松": "黑松", "日本松": "黑松",
	"华山松": "马尾松", "落叶松": "马尾松", "雪松": "松树", "云杉": "松树",
	"冷杉": "松树", "媒介昆虫": "松墨天牛", "传播媒介": "松墨天牛",
	"病原体": "松材线虫", "病原": "松材线虫", "低温": "温度", "湿度": "温度",
	"气候": "温度", "森林": "松林", "林区": "松林", "山区": "松林",
}

// Global default when the term has no specific mapping at all.
var fallbackDefault = []model.SimilarityResult{
	{Term: "松树", Score: 0.75}, {Term: "马尾松", Score: 0.72}, {Term: "松材线虫", Score: 0.70}, {Term: "松墨天牛", Score: 0.67},
	{Term: "感染", Score: 0.64}, {Term: "传播", Score: 0.61}, {Term: "防治", Score: 0.58}, {Term: "病害", Score: 0.55},
	{Term: "林木", Score: 0.52}, {Term: "疫情", Score: 0.50},
}

func fallbackTopN(term string, n int) []model.SimilarityResult {
	var pool []model.SimilarityResult

	switch {
	case len(fallbackGroups[term]) > 0:
		pool = fallbackGroups[term]
	case fallbackAssociations[term] != "":
		// Promote the known association, then pad with the defaults.
		best := fallbackAssociations[term]
		pool = append(pool, model.SimilarityResult{Term: best, Score: 0.80})
		for _, r := range fallbackDefault {
			if r.Term != best {
				pool = append(pool, r)
			}
		}
	default:
		pool = fallbackDefault
	}

	if len(pool) > n {
		pool = pool[:n]
	}
	out := make([]model.SimilarityResult, len(pool))
	copy(out, pool)
	return out
}
