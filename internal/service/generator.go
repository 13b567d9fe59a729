package service

import (
	"context"
	"errors"
)

// Message roles understood by text-generation providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single message in a generation conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator is the text-generation collaborator: given a prompt, return
// text or fail. Implementations classify failures into the sentinel errors
// below so callers can distinguish categories; the orchestrator treats every
// category the same way and falls back to a deterministic reply.
type TextGenerator interface {
	Generate(ctx context.Context, messages []ChatMessage) (string, error)
}

// Failure taxonomy for text-generation calls.
var (
	ErrRateLimited      = errors.New("text generation: rate limited")
	ErrAuthFailed       = errors.New("text generation: authentication failed")
	ErrConnectionFailed = errors.New("text generation: connection failed")
	ErrMalformed        = errors.New("text generation: malformed response")
)
