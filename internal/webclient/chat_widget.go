package webclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"skillsyncBack/internal/models"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"

	MatchesFoundMessage     = "Here are some top matches for you!"
	NoMatchesMessage        = "Sorry, no suitable recommendations found."
	AgentUnreachableMessage = "Sorry, I couldn't reach the agent."
)

type ChatLine struct {
	Sender string
	Text   string
}

type recommendAPI interface {
	Recommend(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error)
}

// Recommend posts the transcript to the agent endpoint. A body whose
// recommendations field is not a list counts as no recommendations.
func (c *Client) Recommend(ctx context.Context, messages []models.ChatMessage) (models.RecommendationsResponse, error) {
	var raw struct {
		Recommendations json.RawMessage `json:"recommendations"`
		Message         string          `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat", nil, models.ChatRequest{Messages: messages}, &raw); err != nil {
		return models.RecommendationsResponse{}, err
	}
	resp := models.RecommendationsResponse{Message: raw.Message}
	if err := json.Unmarshal(raw.Recommendations, &resp.Recommendations); err != nil {
		resp.Recommendations = nil
	}
	return resp, nil
}

// ChatWidget holds the transcript and the recommendation cards currently
// shown.
type ChatWidget struct {
	api recommendAPI

	mu      sync.Mutex
	lines   []ChatLine
	cards   []models.Recommendation
	loading bool
}

func NewChatWidget(api recommendAPI) *ChatWidget {
	return &ChatWidget{api: api}
}

// Send posts the whole transcript plus text to the agent. Blank input and
// sends while a request is loading are ignored and report false.
func (w *ChatWidget) Send(ctx context.Context, text string) bool {
	w.mu.Lock()
	if strings.TrimSpace(text) == "" || w.loading {
		w.mu.Unlock()
		return false
	}
	w.lines = append(w.lines, ChatLine{Sender: SenderUser, Text: text})
	payload := make([]models.ChatMessage, len(w.lines))
	for i, l := range w.lines {
		payload[i] = models.ChatMessage{Role: l.Sender, Text: l.Text}
	}
	w.loading = true
	w.mu.Unlock()

	resp, err := w.api.Recommend(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	switch {
	case err != nil:
		w.cards = nil
		w.lines = append(w.lines, ChatLine{Sender: SenderBot, Text: AgentUnreachableMessage})
	case len(resp.Recommendations) > 0:
		w.cards = resp.Recommendations
		w.lines = append(w.lines, ChatLine{Sender: SenderBot, Text: MatchesFoundMessage})
	default:
		w.cards = nil
		w.lines = append(w.lines, ChatLine{Sender: SenderBot, Text: NoMatchesMessage})
	}
	return true
}

func (w *ChatWidget) Lines() []ChatLine {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ChatLine(nil), w.lines...)
}

func (w *ChatWidget) Cards() []models.Recommendation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Recommendation(nil), w.cards...)
}

func (w *ChatWidget) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}
