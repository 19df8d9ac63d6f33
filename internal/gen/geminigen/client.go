// Package geminigen implements the generative boundary on the Gemini API.
package geminigen

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/uschan/reflecting-light/internal/domain"
	"github.com/uschan/reflecting-light/internal/gen"
)

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image"
	defaultTTSModel   = "gemini-2.5-flash-preview-tts"

	// Charon has a deep, mythic quality suitable for the back-turned god.
	defaultVoice = "Charon"
)

type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	TTSModel   string
	Voice      string
}

// Client implements domain.Generator. A Client built without a credential
// is still usable: text analysis fails with ErrNoCredential and the
// enrichments degrade to their unavailable outcomes.
type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
	ttsModel   string
	voice      string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		ttsModel:   cfg.TTSModel,
		voice:      cfg.Voice,
	}
	if c.textModel == "" {
		c.textModel = defaultTextModel
	}
	if c.imageModel == "" {
		c.imageModel = defaultImageModel
	}
	if c.ttsModel == "" {
		c.ttsModel = defaultTTSModel
	}
	if c.voice == "" {
		c.voice = defaultVoice
	}

	if cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
		if err != nil {
			return nil, fmt.Errorf("geminigen: create client: %w", err)
		}
		c.client = client
	}
	return c, nil
}

// analysisSchema constrains the structured text response. Kept as an
// explicit schema because Gemini carries per-field descriptions natively.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"verse": {Type: genai.TypeString, Description: "一句短小、如诗、神秘的偈语（4-10字），捕捉他们的心境。"},
		"threeMirrors": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"essence":      {Type: genai.TypeString, Description: "自性：痛苦的内在根源。"},
				"circumstance": {Type: genai.TypeString, Description: "境遇：痛苦的外在显化。"},
				"action":       {Type: genai.TypeString, Description: "回首：为何‘不肯回头’的行为描述。"},
			},
			Required: []string{"essence", "circumstance", "action"},
		},
		"stickingPointQuestion": {Type: genai.TypeString, Description: "一个尖锐的、直击执念核心的反问。"},
		"philosopherNote":       {Type: genai.TypeString, Description: "引用一位古代哲人或禅师的相关名言。"},
		"futureScenarios": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString, Description: "路径名称 (如: 消耗, 轮回, 沉沦)。"},
					"description": {Type: genai.TypeString, Description: "如果不改变，未来的叙事性描述。"},
				},
				Required: []string{"name", "description"},
			},
		},
		"godsSigh":       {Type: genai.TypeString, Description: "核心输出。格式：'神像背坐：叹尔......'"},
		"awakeningStone": {Type: genai.TypeString, Description: "觉醒之石：一个极小的、具体的、看似微不足道的行动建议，用于练习‘放下’。"},
	},
	Required: []string{
		"verse", "threeMirrors", "stickingPointQuestion", "philosopherNote",
		"futureScenarios", "godsSigh", "awakeningStone",
	},
}

func (c *Client) Analyze(ctx context.Context, input domain.UserInput) (*domain.AnalysisResult, error) {
	if c.client == nil {
		return nil, domain.ErrNoCredential
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel,
		genai.Text(gen.UserMessage(input)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(gen.SystemInstruction(input), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    analysisSchema,
			Temperature:       genai.Ptr[float32](0.8),
		})
	if err != nil {
		return nil, fmt.Errorf("geminigen: generate analysis: %w", err)
	}

	var payload gen.AnalysisPayload
	if err := gen.DecodeModelJSON(resp.Text(), &payload); err != nil {
		return nil, err
	}
	return payload.ToResult(time.Now())
}

func (c *Client) GenerateImage(ctx context.Context, input domain.UserInput) domain.ImageOutcome {
	if c.client == nil {
		return domain.ImageOutcome{Err: "API key missing"}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel,
		genai.Text(gen.ImagePrompt(input)),
		&genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: "9:16"},
		})
	if err != nil {
		return domain.ImageOutcome{Err: gen.HumanizeImageError(err)}
	}
	if len(resp.Candidates) == 0 {
		return domain.ImageOutcome{Err: "no image data returned"}
	}

	cand := resp.Candidates[0]
	if cand.FinishReason != "" && cand.FinishReason != genai.FinishReasonStop {
		return domain.ImageOutcome{Err: fmt.Sprintf("Filtered: %s", cand.FinishReason)}
	}
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data)
				return domain.ImageOutcome{DataURI: uri}
			}
		}
	}
	return domain.ImageOutcome{Err: "no image data returned"}
}

func (c *Client) SpeakVerse(ctx context.Context, verse string) (string, bool) {
	if c.client == nil || verse == "" {
		return "", false
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel,
		genai.Text(verse),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.voice},
				},
			},
		})
	if err != nil {
		return "", false
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), true
			}
		}
	}
	return "", false
}
