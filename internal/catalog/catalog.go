// Package catalog holds the static intake data: the mood-card pool, the
// suffering categories and the pre-loaded quotes. Loaded once, never mutated.
package catalog

import (
	"strings"

	"github.com/uschan/reflecting-light/internal/domain"
)

// MoodCards is the fixed pool shown at intake. Abstract keys are English on
// purpose: they are what goes into generation prompts.
var MoodCards = []domain.MoodCard{
	{ID: "1", ImageURL: "/assets/cards/tangled.svg", AbstractKey: "Tangled", Label: "挂 碍"},
	{ID: "2", ImageURL: "/assets/cards/solitude.svg", AbstractKey: "Solitude", Label: "独 行"},
	{ID: "3", ImageURL: "/assets/cards/fog.svg", AbstractKey: "Fog", Label: "迷 障"},
	{ID: "4", ImageURL: "/assets/cards/ruins.svg", AbstractKey: "Ruins", Label: "无 常"},
	{ID: "5", ImageURL: "/assets/cards/cage.svg", AbstractKey: "Cage", Label: "樊 笼"},
	{ID: "6", ImageURL: "/assets/cards/silence.svg", AbstractKey: "Silence", Label: "寂 灭"},
	{ID: "7", ImageURL: "/assets/cards/floating.svg", AbstractKey: "Floating", Label: "浮 生"},
	{ID: "8", ImageURL: "/assets/cards/illusion.svg", AbstractKey: "Illusion", Label: "虚 妄"},
	{ID: "9", ImageURL: "/assets/cards/dust.svg", AbstractKey: "Dust", Label: "尘 埃"},
	{ID: "10", ImageURL: "/assets/cards/beyond.svg", AbstractKey: "Beyond", Label: "彼 岸"},
	{ID: "11", ImageURL: "/assets/cards/stone.svg", AbstractKey: "Stone", Label: "须 弥"},
	{ID: "12", ImageURL: "/assets/cards/chaos.svg", AbstractKey: "Chaos", Label: "混 沌"},
}

// SufferingOption pairs a category with its display label.
type SufferingOption struct {
	Value domain.SufferingType `json:"value"`
	Label string               `json:"label"`
}

var SufferingOptions = []SufferingOption{
	{Value: domain.SufferingLoss, Label: "失去 (哀伤/分离)"},
	{Value: domain.SufferingUnknown, Label: "未知 (焦虑/恐惧)"},
	{Value: domain.SufferingDesire, Label: "欲望 (贪婪/渴求)"},
	{Value: domain.SufferingOrder, Label: "秩序 (控制/完美)"},
	{Value: domain.SufferingMeaning, Label: "意义 (空虚/虚无)"},
	{Value: domain.SufferingRelationship, Label: "关系 (冲突/孤独)"},
	{Value: domain.SufferingSelf, Label: "自我 (执念/身份)"},
	{Value: domain.SufferingPast, Label: "过去 (悔恨/创伤)"},
	{Value: domain.SufferingFuture, Label: "未来 (担忧/期待)"},
}

// PreloadedQuotes are shown while a pipeline is in flight.
var PreloadedQuotes = []string{
	"船过水无痕，为何系旧锚？",
	"水中捞月，却不见天上月。",
	"重门本未锁，奈何向内推。",
}

var cardsByID = func() map[string]domain.MoodCard {
	m := make(map[string]domain.MoodCard, len(MoodCards))
	for _, c := range MoodCards {
		m[c.ID] = c
	}
	return m
}()

// CardByID looks a card up by its stable id.
func CardByID(id string) (domain.MoodCard, bool) {
	c, ok := cardsByID[id]
	return c, ok
}

// ValidCardID reports whether id exists in the pool.
func ValidCardID(id string) bool {
	_, ok := cardsByID[id]
	return ok
}

// AbstractKeys joins the abstract keys of the given card ids for use in
// generation prompts. Unknown ids are skipped.
func AbstractKeys(ids []string) string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, ok := cardsByID[id]; ok {
			keys = append(keys, c.AbstractKey)
		}
	}
	return strings.Join(keys, ", ")
}
