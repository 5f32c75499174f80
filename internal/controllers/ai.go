package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gamehub/internal/clients/ollama"
	"gamehub/internal/models"
)

// maxHistoryMessages caps how much prior conversation is replayed to the
// model; maxGameCards caps how many catalog matches ride along with a reply.
const (
	maxHistoryMessages = 4
	maxGameCards       = 3
)

type ChatClient interface {
	Chat(ctx context.Context, messages []ollama.Message) (string, error)
}

type GameCatalog interface {
	GetAll() ([]models.Game, error)
}

type ChatRequest struct {
	Message             string           `json:"message"`
	ConversationHistory []ollama.Message `json:"conversation_history"`
}

type ChatResponse struct {
	Reply string        `json:"reply"`
	Games []models.Game `json:"games"`
}

type AIController struct {
	catalog GameCatalog
	llm     ChatClient
	log     *slog.Logger
}

func NewAIController(catalog GameCatalog, llm ChatClient, log *slog.Logger) *AIController {
	return &AIController{
		catalog: catalog,
		llm:     llm,
		log:     log,
	}
}

func (c *AIController) Chat(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.ai.Chat"

	var request ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	if strings.TrimSpace(request.Message) == "" {
		respondError(w, ErrBadRequest)
		return
	}

	games, err := c.catalog.GetAll()
	if err != nil {
		c.log.Error(
			"failed to load catalog",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	messages := []ollama.Message{
		{Role: "system", Content: buildSystemPrompt(games)},
	}
	history := request.ConversationHistory
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	messages = append(messages, history...)
	messages = append(messages, ollama.Message{Role: "user", Content: request.Message})

	reply, err := c.llm.Chat(r.Context(), messages)
	if err != nil {
		c.log.Error(
			"chat request failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ChatResponse{
		Reply: reply,
		Games: extractGameReferences(reply, games),
	})
}

func buildSystemPrompt(games []models.Game) string {
	var b strings.Builder
	for _, g := range games {
		fmt.Fprintf(&b, "- %q: %s. Price: $%.2f. Categories: %s. Platforms: %s.\n",
			g.Title,
			g.Description,
			g.Price,
			strings.Join(g.Categories, ", "),
			strings.Join(g.Platforms, ", "),
		)
	}

	return "You are a helpful video game assistant for a gaming platform. " +
		"Only recommend or discuss games from the catalog below. " +
		"If asked about anything else, say you can only help with games in the current catalog. " +
		"Keep responses short (2-3 sentences) and mention title, price and platforms when recommending.\n\n" +
		"AVAILABLE GAMES:\n" + b.String()
}

// extractGameReferences returns the catalog entries whose titles appear in
// the reply, capped at maxGameCards.
func extractGameReferences(reply string, games []models.Game) []models.Game {
	mentioned := make([]models.Game, 0, maxGameCards)
	lowerReply := strings.ToLower(reply)

	for _, g := range games {
		if strings.Contains(lowerReply, strings.ToLower(g.Title)) {
			mentioned = append(mentioned, g)
			if len(mentioned) == maxGameCards {
				break
			}
		}
	}

	return mentioned
}
