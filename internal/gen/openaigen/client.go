// Package openaigen implements the generative boundary on the OpenAI API.
package openaigen

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/uschan/reflecting-light/internal/domain"
	"github.com/uschan/reflecting-light/internal/gen"
)

const (
	defaultTextModel  = "gpt-4.1-mini"
	defaultImageModel = openai.ImageModelGPTImage1
	defaultTTSModel   = openai.SpeechModelTTS1

	// Onyx is the deepest of the stock voices.
	defaultVoice = "onyx"
)

type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	TTSModel   string
	Voice      string
}

// Client implements domain.Generator. Built without a credential it still
// works: text analysis fails with ErrNoCredential, enrichments degrade.
type Client struct {
	client     *openai.Client
	textModel  string
	imageModel string
	ttsModel   string
	voice      string
}

var analysisSchema = generateSchema[gen.AnalysisPayload]()

func New(cfg Config) *Client {
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
		client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
		c.client = &client
	}
	return c
}

// Analyze is a single-shot call: the product has no retry policy, a failure
// here is terminal for the session.
func (c *Client) Analyze(ctx context.Context, input domain.UserInput) (*domain.AnalysisResult, error) {
	if c.client == nil {
		return nil, domain.ErrNoCredential
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SufferingAnalysis",
			Schema:      analysisSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Structured suffering analysis JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.textModel,
		MaxOutputTokens: openai.Int(2500),
		Temperature:     openai.Float(0.8),
		Instructions:    openai.String(gen.SystemInstruction(input)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(gen.UserMessage(input), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openaigen: generate analysis: %w", err)
	}

	var payload gen.AnalysisPayload
	if err := gen.DecodeModelJSON(resp.OutputText(), &payload); err != nil {
		return nil, err
	}
	return payload.ToResult(time.Now())
}

func (c *Client) GenerateImage(ctx context.Context, input domain.UserInput) domain.ImageOutcome {
	if c.client == nil {
		return domain.ImageOutcome{Err: "API key missing"}
	}

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: gen.ImagePrompt(input),
		Model:  c.imageModel,
		Size:   openai.ImageGenerateParamsSize1024x1536,
	})
	if err != nil {
		if isContentFiltered(err) {
			return domain.ImageOutcome{Err: "Filtered: content policy"}
		}
		return domain.ImageOutcome{Err: gen.HumanizeImageError(err)}
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return domain.ImageOutcome{Err: "no image data returned"}
	}
	return domain.ImageOutcome{DataURI: "data:image/png;base64," + resp.Data[0].B64JSON}
}

func (c *Client) SpeakVerse(ctx context.Context, verse string) (string, bool) {
	if c.client == nil || verse == "" {
		return "", false
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: c.ttsModel,
		Voice: openai.AudioSpeechNewParamsVoice(c.voice),
		Input: verse,
	})
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(b), true
}

func isContentFiltered(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "moderation") ||
		strings.Contains(errStr, "safety") ||
		strings.Contains(errStr, "content_policy")
}
