// Package creative turns fallback actions into model calls: a
// wireframe image or a video concept script derived from the user's
// original question. Commands arrive as tagged values, never as
// presentation-layer callbacks.
package creative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/quorum-agent/internal/domain"
	"github.com/PabloGalante/quorum-agent/internal/observability"
)

type Generator struct {
	llm  domain.LLMClient
	chat domain.ChatLog

	textModel  string
	imageModel string

	now   func() time.Time
	newID func() string
}

func NewGenerator(llm domain.LLMClient, chat domain.ChatLog, textModel, imageModel string) *Generator {
	return &Generator{
		llm:        llm,
		chat:       chat,
		textModel:  textModel,
		imageModel: imageModel,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Generate runs one creative command and appends the outcome to the
// chat log. Failures become visible error messages; they never abort
// the chat session. Only bad input returns an error.
func (g *Generator) Generate(ctx context.Context, kind domain.CreativeKind, sourcePrompt string) (domain.ChatMessage, error) {
	if strings.TrimSpace(sourcePrompt) == "" {
		return domain.ChatMessage{}, domain.NewValidationError("creative generation needs a source prompt")
	}

	log := observability.LoggerFromContext(ctx).With("kind", kind)
	log.Info("creative generation started")

	var (
		msg domain.ChatMessage
		err error
	)
	switch kind {
	case domain.CreativeImage:
		msg, err = g.generateImage(ctx, sourcePrompt)
	case domain.CreativeVideo:
		msg, err = g.generateVideo(ctx, sourcePrompt)
	default:
		return domain.ChatMessage{}, domain.NewValidationError("unknown creative kind %q", kind)
	}

	if err != nil {
		log.Error("creative generation failed", "error", err)
		msg = domain.ChatMessage{
			ID:        domain.MessageID(g.newID()),
			Sender:    domain.SenderSystem,
			Text:      fmt.Sprintf("%s generation failed: %v", kind, err),
			CreatedAt: g.now(),
		}
	}

	if appendErr := g.chat.Append(msg); appendErr != nil {
		return domain.ChatMessage{}, appendErr
	}
	return msg, nil
}

func (g *Generator) generateImage(ctx context.Context, sourcePrompt string) (domain.ChatMessage, error) {
	res, err := g.llm.Generate(ctx, domain.GenerateRequest{
		Model:       g.imageModel,
		Parts:       []domain.ContentPart{domain.TextPart(wireframePrompt(sourcePrompt))},
		ImageOutput: true,
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if len(res.Binary) == 0 {
		return domain.ChatMessage{}, &domain.EmptyOutputError{Op: "wireframe"}
	}

	first := res.Binary[0]
	return domain.ChatMessage{
		ID:        domain.MessageID(g.newID()),
		Sender:    domain.SenderAssistant,
		Text:      "Here is a wireframe sketch for: " + sourcePrompt,
		Image:     &domain.ImagePayload{Data: first.Data, MIMEType: first.MIMEType},
		CreatedAt: g.now(),
	}, nil
}

func (g *Generator) generateVideo(ctx context.Context, sourcePrompt string) (domain.ChatMessage, error) {
	res, err := g.llm.Generate(ctx, domain.GenerateRequest{
		Model: g.textModel,
		Parts: []domain.ContentPart{domain.TextPart(videoConceptPrompt(sourcePrompt))},
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return domain.ChatMessage{}, &domain.EmptyOutputError{Op: "video concept"}
	}

	return domain.ChatMessage{
		ID:        domain.MessageID(g.newID()),
		Sender:    domain.SenderAssistant,
		Text:      res.Text,
		CreatedAt: g.now(),
	}, nil
}

func wireframePrompt(sourcePrompt string) string {
	return "Produce a single black-and-white, low-fidelity wireframe sketch of a user interface for the following idea. " +
		"Rough boxes, placeholder labels and simple lines only; no color, no polish.\n\nIdea:\n" + sourcePrompt
}

func videoConceptPrompt(sourcePrompt string) string {
	return "Write a short, one-paragraph concept script for a video about the following idea. " +
		"Describe the visuals and the voiceover in plain prose.\n\nIdea:\n" + sourcePrompt
}
