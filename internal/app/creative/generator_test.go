package creative_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/quorum-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/quorum-agent/internal/app/creative"
	"github.com/PabloGalante/quorum-agent/internal/domain"
)

type scriptedLLM struct {
	requests []domain.GenerateRequest
	res      *domain.GenerateResponse
	err      error
}

func (s *scriptedLLM) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func TestGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	llm := &scriptedLLM{res: &domain.GenerateResponse{
		Binary: []domain.ContentPart{
			domain.BinaryPart(png, "image/png"),
			domain.BinaryPart([]byte{1}, "image/png"), // only the first one counts
		},
	}}
	chat := memory.NewChatLog()
	gen := creative.NewGenerator(llm, chat, "text-model", "image-model")

	msg, err := gen.Generate(context.Background(), domain.CreativeImage, "a plant-care app")
	require.NoError(t, err)

	require.NotNil(t, msg.Image)
	assert.Equal(t, png, msg.Image.Data)
	assert.Equal(t, "image/png", msg.Image.MIMEType)
	assert.Equal(t, domain.SenderAssistant, msg.Sender)

	require.Len(t, llm.requests, 1)
	req := llm.requests[0]
	assert.Equal(t, "image-model", req.Model)
	assert.True(t, req.ImageOutput)
	require.Len(t, req.Parts, 1)
	assert.Contains(t, req.Parts[0].Text, "black-and-white")
	assert.Contains(t, req.Parts[0].Text, "a plant-care app")

	msgs, err := chat.Messages()
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestGenerateImageWithoutOutputFails(t *testing.T) {
	llm := &scriptedLLM{res: &domain.GenerateResponse{Text: "describing instead of drawing"}}
	chat := memory.NewChatLog()
	gen := creative.NewGenerator(llm, chat, "text-model", "image-model")

	msg, err := gen.Generate(context.Background(), domain.CreativeImage, "a plant-care app")
	require.NoError(t, err, "a failed generation must not fail the session")

	assert.Equal(t, domain.SenderSystem, msg.Sender)
	assert.Nil(t, msg.Image)
	assert.Contains(t, msg.Text, "no output produced")

	// The failure is still visible in the chat log.
	msgs, err := chat.Messages()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.SenderSystem, msgs[0].Sender)
}

func TestGenerateVideo(t *testing.T) {
	llm := &scriptedLLM{res: &domain.GenerateResponse{Text: "Open on a wilting fern..."}}
	chat := memory.NewChatLog()
	gen := creative.NewGenerator(llm, chat, "text-model", "image-model")

	msg, err := gen.Generate(context.Background(), domain.CreativeVideo, "a plant-care app")
	require.NoError(t, err)

	assert.Equal(t, "Open on a wilting fern...", msg.Text)
	assert.Nil(t, msg.Image)

	require.Len(t, llm.requests, 1)
	req := llm.requests[0]
	assert.Equal(t, "text-model", req.Model)
	assert.False(t, req.ImageOutput)
	assert.Contains(t, req.Parts[0].Text, "one-paragraph")
}

func TestGenerateServiceFailureBecomesMessage(t *testing.T) {
	llm := &scriptedLLM{err: &domain.ServiceError{Op: "generate", Err: errors.New("quota exceeded")}}
	chat := memory.NewChatLog()
	gen := creative.NewGenerator(llm, chat, "text-model", "image-model")

	msg, err := gen.Generate(context.Background(), domain.CreativeVideo, "anything")
	require.NoError(t, err)

	assert.Equal(t, domain.SenderSystem, msg.Sender)
	assert.Contains(t, msg.Text, "quota exceeded")
}

func TestGenerateValidation(t *testing.T) {
	llm := &scriptedLLM{res: &domain.GenerateResponse{Text: "unused"}}
	chat := memory.NewChatLog()
	gen := creative.NewGenerator(llm, chat, "text-model", "image-model")

	var verr *domain.ValidationError

	_, err := gen.Generate(context.Background(), domain.CreativeImage, "  ")
	require.ErrorAs(t, err, &verr)

	_, err = gen.Generate(context.Background(), domain.CreativeKind("music"), "a jingle")
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, llm.requests)
}
