// Package gen holds the parts of the generative-AI boundary that are shared
// by every provider: the structured analysis payload, the prompt builders
// and the model-output JSON decoder. The providers themselves live in the
// geminigen, openaigen and genmock subpackages.
package gen

import (
	"time"

	"github.com/uschan/reflecting-light/internal/domain"
)

// AnalysisPayload is the schema-bound shape the text model must produce.
// The jsonschema tags drive strict-mode schema generation for providers that
// reflect the schema from the struct.
type AnalysisPayload struct {
	Verse        string `json:"verse" jsonschema_description:"一句短小、如诗、神秘的偈语（4-10字），捕捉他们的心境。"`
	ThreeMirrors struct {
		Essence      string `json:"essence" jsonschema_description:"自性：痛苦的内在根源。"`
		Circumstance string `json:"circumstance" jsonschema_description:"境遇：痛苦的外在显化。"`
		Action       string `json:"action" jsonschema_description:"回首：为何‘不肯回头’的行为描述。"`
	} `json:"threeMirrors"`
	StickingPointQuestion string `json:"stickingPointQuestion" jsonschema_description:"一个尖锐的、直击执念核心的反问。"`
	PhilosopherNote       string `json:"philosopherNote" jsonschema_description:"引用一位古代哲人或禅师的相关名言。"`
	FutureScenarios       []struct {
		Name        string `json:"name" jsonschema_description:"路径名称 (如: 消耗, 轮回, 沉沦)。"`
		Description string `json:"description" jsonschema_description:"如果不改变，未来的叙事性描述。"`
	} `json:"futureScenarios"`
	GodsSigh       string `json:"godsSigh" jsonschema_description:"核心输出。格式：'神像背坐：叹尔......'"`
	AwakeningStone string `json:"awakeningStone" jsonschema_description:"觉醒之石：一个极小的、具体的、看似微不足道的行动建议，用于练习‘放下’。"`
}

// ToResult converts the payload into a domain result, stamping the creation
// time, and rejects incomplete output.
func (p AnalysisPayload) ToResult(now time.Time) (*domain.AnalysisResult, error) {
	r := &domain.AnalysisResult{
		Verse: p.Verse,
		ThreeMirrors: domain.ThreeMirrors{
			Essence:      p.ThreeMirrors.Essence,
			Circumstance: p.ThreeMirrors.Circumstance,
			Action:       p.ThreeMirrors.Action,
		},
		StickingPointQuestion: p.StickingPointQuestion,
		PhilosopherNote:       p.PhilosopherNote,
		GodsSigh:              p.GodsSigh,
		AwakeningStone:        p.AwakeningStone,
		Timestamp:             now.UnixMilli(),
	}
	for _, fs := range p.FutureScenarios {
		r.FutureScenarios = append(r.FutureScenarios, domain.FutureScenario{
			Name:        fs.Name,
			Description: fs.Description,
		})
	}
	if err := r.Complete(); err != nil {
		return nil, err
	}
	return r, nil
}
