package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/quorum-agent/internal/domain"
	"github.com/PabloGalante/quorum-agent/internal/observability"
)

// Router answers free-form user questions. With no active deliberation
// it runs in general mode (unrestricted, search enabled); with one it
// runs in analyst mode, answering only from that deliberation's record
// with search disabled.
type Router struct {
	llm        domain.LLMClient
	registry   *domain.PersonaRegistry
	chat       domain.ChatLog
	classifier Classifier

	model string

	now   func() time.Time
	newID func() string
}

func NewRouter(
	llm domain.LLMClient,
	registry *domain.PersonaRegistry,
	chat domain.ChatLog,
	classifier Classifier,
	model string,
) *Router {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &Router{
		llm:        llm,
		registry:   registry,
		chat:       chat,
		classifier: classifier,
		model:      model,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Handle answers one user message and appends both sides of the
// exchange to the chat log.
//
// A model failure does not fail the chat session: it is turned into a
// visible system message and returned like a normal reply. Only bad
// input produces an error.
func (r *Router) Handle(ctx context.Context, text string, active *domain.Deliberation) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, domain.NewValidationError("a chat message needs text")
	}

	log := observability.LoggerFromContext(ctx)

	userMsg := domain.ChatMessage{
		ID:        domain.MessageID(r.newID()),
		Sender:    domain.SenderUser,
		Text:      text,
		CreatedAt: r.now(),
	}
	if err := r.chat.Append(userMsg); err != nil {
		return domain.ChatMessage{}, err
	}

	req := r.buildRequest(text, active)
	analyst := active != nil
	log.Info("assistant call", "analyst_mode", analyst, "search", req.EnableSearch)

	res, err := r.llm.Generate(ctx, req)
	if err == nil && strings.TrimSpace(res.Text) == "" {
		err = &domain.EmptyOutputError{Op: "assistant"}
	}
	if err != nil {
		log.Error("assistant call failed", "error", err)
		return r.appendReply(domain.ChatMessage{
			ID:        domain.MessageID(r.newID()),
			Sender:    domain.SenderSystem,
			Text:      fmt.Sprintf("The assistant could not answer: %v", err),
			CreatedAt: r.now(),
		})
	}

	reply := domain.ChatMessage{
		ID:        domain.MessageID(r.newID()),
		Sender:    domain.SenderAssistant,
		Text:      res.Text,
		CreatedAt: r.now(),
	}

	// Fallback suggestions exist only in general mode: an analyst
	// answer scoped to a record never offers creative generation.
	if !analyst && r.classifier.IsLowConfidence(res.Text) {
		reply.Actions = []domain.FallbackAction{
			{Kind: domain.CreativeImage, Prompt: text},
			{Kind: domain.CreativeVideo, Prompt: text},
		}
		log.Info("low-confidence answer, fallback actions attached")
	}

	return r.appendReply(reply)
}

func (r *Router) buildRequest(text string, active *domain.Deliberation) domain.GenerateRequest {
	if active == nil {
		return domain.GenerateRequest{
			Model:             r.model,
			Parts:             []domain.ContentPart{domain.TextPart(text)},
			SystemInstruction: generalSystemInstruction,
			EnableSearch:      true,
		}
	}

	return domain.GenerateRequest{
		Model:             r.model,
		Parts:             []domain.ContentPart{domain.TextPart(analystContext(active, r.registry, text))},
		SystemInstruction: analystSystemInstruction,
		EnableSearch:      false,
	}
}

func (r *Router) appendReply(msg domain.ChatMessage) (domain.ChatMessage, error) {
	if err := r.chat.Append(msg); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}
