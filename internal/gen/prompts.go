package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uschan/reflecting-light/internal/catalog"
	"github.com/uschan/reflecting-light/internal/domain"
)

// SystemInstruction builds the persona prompt for the text analysis.
func SystemInstruction(input domain.UserInput) string {
	return fmt.Sprintf(`你是一个名为“神像背坐”的哲学实体。
你背对众生，不接受膜拜，只因叹息世人“不肯回头”。
你的语气慈悲但疏离，深邃，充满禅意，有时如当头棒喝。

用户正遭受关于 "%s" 的痛苦。
他们的具体困惑是: "%s".

你的目标不是解决世俗问题，而是揭示他们的“执念”（为何不肯回头）。

请严格按照JSON Schema输出，内容必须是【中文】。`,
		input.SufferingType, input.ConfusionText)
}

// UserMessage builds the single user turn for the text analysis.
func UserMessage(input domain.UserInput) string {
	ctxJSON, _ := json.Marshal(input)
	return "基于“神像背坐”的哲学分析此苦难。 Context: " + string(ctxJSON)
}

// ImagePrompt builds the image prompt from the raw input alone (no
// dependency on the text analysis). It uses the cards' English abstract
// keys, not their native-script labels.
func ImagePrompt(input domain.UserInput) string {
	return fmt.Sprintf(`Vertical composition (9:16). Abstract spiritual art.
Style: Ethereal ink wash painting mixed with Mark Rothko color fields. Minimalist, Zen, Dreamlike.

Concept: Inner psychological state.
Keywords: %s, %s.

Atmosphere: Misty, obscure, with a faint golden light in the distance.

CONSTRAINTS: Abstract shapes only. No text. No faces. No realistic violence.`,
		input.SufferingType, catalog.AbstractKeys(input.SelectedCards))
}

// HumanizeImageError maps a provider error to a display-safe string for the
// image branch, which must surface failures as data rather than exceptions.
func HumanizeImageError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.Contains(msg, "403") || strings.Contains(strings.ToLower(msg), "permission") {
		return "403 Forbidden (check API key restrictions)"
	}
	return msg
}
