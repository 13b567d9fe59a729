package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"motorchat/internal/model"
)

// systemPrompt grounds the collaborator: it may only phrase what the
// supplied context contains.
const systemPrompt = "Você é um consultor de vendas de uma loja de veículos no Brasil. " +
	"Responda de forma clara, amigável e objetiva, SEM inventar estoque. " +
	"Use apenas as opções do contexto fornecido. " +
	"Quando o cliente pedir algo específico (ex.: SUV automático até R$ 120.000), " +
	"explique o raciocínio e sugira de 3 a 5 opções compatíveis. " +
	"Se nada for compatível, sugira alternativas próximas (ano ou preço próximos). " +
	"Mostre preços em reais com duas casas (ex.: R$ 85.900,00)."

// ChatOptions bounds the grounded-response pipeline.
type ChatOptions struct {
	MaxExamples          int
	FallbackLimit        int
	HistoryWindow        int
	LargeResultThreshold int
	MaxSuggestions       int
	PriceSampleCap       int
	PriceBandWidth       int64
}

// DefaultChatOptions returns the default pipeline bounds.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		MaxExamples:          120,
		FallbackLimit:        5,
		HistoryWindow:        6,
		LargeResultThreshold: 40,
		MaxSuggestions:       6,
		PriceSampleCap:       300,
		PriceBandWidth:       20000,
	}
}

// ChatService ties extraction, querying, summarization and reply generation
// together. Each request is handled statelessly; the inventory store is the
// only shared resource and is read-only here.
type ChatService struct {
	inv  Inventory
	gen  TextGenerator // nil when the collaborator is not configured
	opts ChatOptions
}

// NewChatService creates the chat orchestrator. A nil generator is valid and
// routes every reply through the deterministic fallback.
func NewChatService(inv Inventory, gen TextGenerator, opts ChatOptions) *ChatService {
	return &ChatService{inv: inv, gen: gen, opts: opts}
}

// Respond handles one chat turn: extract filters, query with relaxation,
// summarize, build the grounded context and produce a reply. Collaborator
// failures are absorbed by the fallback, never surfaced; only an inventory
// failure returns an error.
func (s *ChatService) Respond(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	filters := ParseFilters(req.Message)

	outcome, err := executeSearch(ctx, s.inv, filters, s.opts.MaxExamples)
	if err != nil {
		return nil, fmt.Errorf("inventory query failed: %w", err)
	}

	summary, err := Summarize(ctx, s.inv, outcome.Effective, s.opts.PriceSampleCap, s.opts.PriceBandWidth)
	if err != nil {
		return nil, fmt.Errorf("inventory summary failed: %w", err)
	}

	contextDoc := BuildContext(summary, outcome.Items, s.opts.MaxExamples)
	reply := s.generateReply(ctx, req, contextDoc, summary.Total, outcome.Items)

	items := outcome.Items
	if items == nil {
		items = []model.Vehicle{}
	}

	return &model.ChatResponse{
		Reply:          reply,
		Suggestions:    Suggest(filters, outcome.TotalMatches, s.opts.LargeResultThreshold, s.opts.MaxSuggestions),
		Items:          items,
		TotalMatches:   outcome.TotalMatches,
		FiltersApplied: filters,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// generateReply calls the collaborator once, no retries: this path stays
// low-latency and any failure category lands on the deterministic fallback.
func (s *ChatService) generateReply(ctx context.Context, req *model.ChatRequest, contextDoc string, total int, items []model.Vehicle) string {
	if s.gen == nil {
		return FallbackReply(items, total, s.opts.FallbackLimit)
	}

	messages := []ChatMessage{{Role: RoleSystem, Content: systemPrompt}}

	history := req.History
	if len(history) > s.opts.HistoryWindow {
		history = history[len(history)-s.opts.HistoryWindow:]
	}
	for _, turn := range history {
		role := RoleAssistant
		if turn.Role == RoleUser {
			role = RoleUser
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Content})
	}

	userPrompt := fmt.Sprintf(
		"Pergunta do cliente: %s\n\n%s\n\nMonte sua resposta considerando apenas o estoque acima.",
		req.Message, contextDoc,
	)
	messages = append(messages, ChatMessage{Role: RoleUser, Content: userPrompt})

	reply, err := s.gen.Generate(ctx, messages)
	if err != nil {
		log.Printf("Warning: text generation failed, using deterministic reply: %v", err)
		return FallbackReply(items, total, s.opts.FallbackLimit)
	}
	return reply
}
