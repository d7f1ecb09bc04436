// Package relation chooses a relation label for a pair of entities from a
// controlled vocabulary, via a generative backend with a deterministic
// rule-based fallback.
package relation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pinewatch/pinegraph/internal/core/model"
	"github.com/pinewatch/pinegraph/internal/llm"
)

const systemPrompt = "你是一个松材线虫病领域的专家，擅长分析实体之间的关系。"

const promptTemplate = `我有两个与松材线虫病相关的实体："%s" 和 "%s"。

请从以下关系列表中选择一个最合理的关系来描述它们之间的联系：
%s

要求：
1. 只返回关系名称，不要返回其他内容
2. 必须从给定的关系列表中选择
3. 如果多个关系都合理，选择最直接、最重要的那个

关系名称：`

// Oracle infers one relation label for an entity pair. The remote strategy is
// selected at construction; any remote failure or out-of-vocabulary answer
// diverts to the rule fallback, so Infer with a non-empty vocabulary always
// yields a vocabulary member.
type Oracle struct {
	client llm.Client
}

func NewOracle(client llm.Client) *Oracle {
	if client == nil {
		log.Printf("relation: no generative backend configured, inference is rule-based only")
	}
	return &Oracle{client: client}
}

// Infer returns a member of allowed describing entityA -> entityB. The only
// error case is an empty vocabulary.
func (o *Oracle) Infer(ctx context.Context, entityA, entityB string, allowed []string) (string, error) {
	if len(allowed) == 0 {
		return "", fmt.Errorf("relation vocabulary is empty: %w", model.ErrConfiguration)
	}

	if o.client != nil {
		label, err := o.inferRemote(ctx, entityA, entityB, allowed)
		if err == nil {
			return label, nil
		}
		log.Printf("relation: remote inference for %s <-> %s unusable, using rule fallback: %v", entityA, entityB, err)
	}

	return ruleFallback(entityA, entityB, allowed), nil
}

func (o *Oracle) inferRemote(ctx context.Context, entityA, entityB string, allowed []string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, entityA, entityB, strings.Join(allowed, "、"))

	response, err := o.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	label := strings.TrimSpace(response)
	for _, r := range allowed {
		if label == r {
			return label, nil
		}
	}
	return "", fmt.Errorf("backend returned out-of-vocabulary label '%s'", label)
}
