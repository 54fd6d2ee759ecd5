// Package agent asks Gemini to match a buyer conversation against the
// flattened gig catalog.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
)

const (
	defaultModel       = "gemini-1.5-flash"
	maxRecommendations = 3
	feedPrefix         = "SELLER_PROFILES_JSON:\n"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Generator returns the raw model text for a conversation.
type Generator interface {
	Generate(ctx context.Context, contents []*genai.Content) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func (g *geminiGenerator) Generate(ctx context.Context, contents []*genai.Content) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

type Recommender struct {
	gen    Generator
	logger logging.Logger
}

func New(ctx context.Context, cfg Config, logger logging.Logger) (*Recommender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	gen := &geminiGenerator{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:       genai.Ptr(cfg.Temperature),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema(),
			SafetySettings:    safetySettings(),
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	}
	return NewWithGenerator(gen, logger), nil
}

func NewWithGenerator(gen Generator, logger logging.Logger) *Recommender {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Recommender{gen: gen, logger: logger}
}

// BuildContents maps chat lines to model turns and appends the catalog as a
// final user turn.
func BuildContents(messages []models.ChatMessage, feed []models.AgentGig) ([]*genai.Content, error) {
	if feed == nil {
		feed = []models.AgentGig{}
	}
	feedJSON, err := json.Marshal(feed)
	if err != nil {
		return nil, err
	}
	contents := make([]*genai.Content, 0, len(messages)+1)
	for _, m := range messages {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := genai.Role(genai.RoleModel)
		if m.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(feedPrefix+string(feedJSON), genai.RoleUser))
	return contents, nil
}

// Recommend returns at most three recommendations. Model output that is
// empty or not the expected JSON yields an empty list, not an error.
func (r *Recommender) Recommend(ctx context.Context, messages []models.ChatMessage, feed []models.AgentGig) (models.RecommendationsResponse, error) {
	contents, err := BuildContents(messages, feed)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}
	text, err := r.gen.Generate(ctx, contents)
	if err != nil {
		return models.RecommendationsResponse{}, err
	}
	return r.parse(text), nil
}

func (r *Recommender) parse(text string) models.RecommendationsResponse {
	out := models.RecommendationsResponse{Recommendations: []models.Recommendation{}}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	if text == "" {
		return out
	}
	var parsed models.RecommendationsResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		r.logger.Errorf("agent returned malformed JSON: %v", err)
		return out
	}
	for _, rec := range parsed.Recommendations {
		if rec.GigID == "" {
			continue
		}
		out.Recommendations = append(out.Recommendations, rec)
		if len(out.Recommendations) == maxRecommendations {
			break
		}
	}
	if len(out.Recommendations) == 0 {
		out.Message = parsed.Message
	}
	return out
}
