// Package genmock is a deterministic generator for development and tests.
package genmock

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/uschan/reflecting-light/internal/domain"
)

// Generator implements domain.Generator with canned outputs. The zero value
// succeeds on every call; the fail/err knobs force the documented failure
// shapes. Calls records the call order so tests can assert the verse exists
// before audio is requested.
type Generator struct {
	mu    sync.Mutex
	Calls []string

	AnalyzeErr error
	ImageErr   string // non-empty forces a tagged image failure
	NoAudio    bool

	// SpokenVerses collects every verse passed to SpeakVerse.
	SpokenVerses []string
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) record(name string) {
	g.mu.Lock()
	g.Calls = append(g.Calls, name)
	g.mu.Unlock()
}

func (g *Generator) Analyze(ctx context.Context, input domain.UserInput) (*domain.AnalysisResult, error) {
	g.record("analyze")
	if g.AnalyzeErr != nil {
		return nil, g.AnalyzeErr
	}
	return &domain.AnalysisResult{
		Verse: "船过水无痕",
		ThreeMirrors: domain.ThreeMirrors{
			Essence:      "执念源于不舍。",
			Circumstance: "旧事如锚，沉于水底。",
			Action:       "频频回望，却不肯回头。",
		},
		StickingPointQuestion: "船已过，锚为何还在手中？",
		PhilosopherNote:       "庄子曰：至人之用心若镜。",
		FutureScenarios: []domain.FutureScenario{
			{Name: "消耗", Description: "日日拖锚而行，船速渐缓。"},
		},
		GodsSigh:       "神像背坐：叹尔抱锚渡河。",
		AwakeningStone: "今日散步时，捡一颗石子，再放下它。",
		Timestamp:      time.Now().UnixMilli(),
	}, nil
}

func (g *Generator) GenerateImage(ctx context.Context, input domain.UserInput) domain.ImageOutcome {
	g.record("image")
	if g.ImageErr != "" {
		return domain.ImageOutcome{Err: g.ImageErr}
	}
	// Smallest possible deterministic payload.
	return domain.ImageOutcome{
		DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("mock-png")),
	}
}

func (g *Generator) SpeakVerse(ctx context.Context, verse string) (string, bool) {
	g.record("speak")
	g.mu.Lock()
	g.SpokenVerses = append(g.SpokenVerses, verse)
	g.mu.Unlock()
	if g.NoAudio || verse == "" {
		return "", false
	}
	return base64.StdEncoding.EncodeToString([]byte("mock-audio")), true
}
