package store

import (
	"context"
	"log"

	"github.com/pinewatch/pinegraph/internal/core/model"
)

// DefaultHighLevelTags is the starter set of abstract-category tags for a
// fresh deployment, split into the core disease vocabulary and generic
// category names.
var DefaultHighLevelTags = []model.HighLevelTag{
	{Name: "松材线虫病", Tier: model.TierCore},
	{Name: "松材线虫", Tier: model.TierCore},
	{Name: "松墨天牛", Tier: model.TierCore},
	{Name: "寄主", Tier: model.TierCore},
	{Name: "媒介昆虫", Tier: model.TierCore},

	{Name: "省份", Tier: model.TierGeneric}, {Name: "城市", Tier: model.TierGeneric},
	{Name: "中国", Tier: model.TierGeneric}, {Name: "松属", Tier: model.TierGeneric},
	{Name: "阔叶树", Tier: model.TierGeneric}, {Name: "天牛", Tier: model.TierGeneric},
	{Name: "天敌昆虫", Tier: model.TierGeneric}, {Name: "线虫", Tier: model.TierGeneric},
	{Name: "真菌", Tier: model.TierGeneric}, {Name: "算法", Tier: model.TierGeneric},
	{Name: "遥感技术", Tier: model.TierGeneric}, {Name: "分子生物学技术", Tier: model.TierGeneric},
	{Name: "年份", Tier: model.TierGeneric}, {Name: "病害", Tier: model.TierGeneric},
	{Name: "农药药剂", Tier: model.TierGeneric}, {Name: "研究模型与软件", Tier: model.TierGeneric},
	{Name: "基因", Tier: model.TierGeneric}, {Name: "代谢通路", Tier: model.TierGeneric},
	{Name: "物理防治", Tier: model.TierGeneric}, {Name: "化学防治", Tier: model.TierGeneric},
	{Name: "营林防治", Tier: model.TierGeneric}, {Name: "检疫措施", Tier: model.TierGeneric},
	{Name: "生理指标", Tier: model.TierGeneric}, {Name: "风险评估", Tier: model.TierGeneric},
	{Name: "早期诊断", Tier: model.TierGeneric}, {Name: "森林保护学", Tier: model.TierGeneric},
	{Name: "森林昆虫学", Tier: model.TierGeneric}, {Name: "森林病理学", Tier: model.TierGeneric},
	{Name: "林业植物检疫学", Tier: model.TierGeneric}, {Name: "博士学位论文", Tier: model.TierGeneric},
	{Name: "国家科技进步二等奖", Tier: model.TierGeneric}, {Name: "生态服务", Tier: model.TierGeneric},
	{Name: "多尺度监测", Tier: model.TierGeneric}, {Name: "能量代谢", Tier: model.TierGeneric},
	{Name: "诊断", Tier: model.TierGeneric}, {Name: "天敌", Tier: model.TierGeneric},
	{Name: "种群动态模型", Tier: model.TierGeneric}, {Name: "植被指数", Tier: model.TierGeneric},
	{Name: "光谱特征", Tier: model.TierGeneric},
}

// Bootstrap seeds the relation vocabulary and the default high-level tags
// on an empty database. Existing data is left alone.
func (s *Store) Bootstrap(ctx context.Context, relations []string) error {
	existing, err := s.ValidRelations(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 && len(relations) > 0 {
		if err := s.SeedRelations(ctx, relations); err != nil {
			return err
		}
		log.Printf("Seeded %d relation labels", len(relations))
	}

	tags, err := s.LoadHighLevelTags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		if err := s.SaveHighLevelTags(ctx, DefaultHighLevelTags, false); err != nil {
			return err
		}
		log.Printf("Seeded %d default high-level tags", len(DefaultHighLevelTags))
	}

	return nil
}
