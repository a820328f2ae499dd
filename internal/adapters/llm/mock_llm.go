package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

// fakePNG stands in for generated image bytes in local mode.
var fakePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// MockLLM is the local-mode stand-in for the model service. It echoes
// enough of the request back to make transcripts readable during
// development.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	if req.ImageOutput {
		return &domain.GenerateResponse{
			Binary: []domain.ContentPart{domain.BinaryPart(fakePNG, "image/png")},
		}, nil
	}

	var last string
	for _, p := range req.Parts {
		if !p.IsBinary() {
			last = p.Text
		}
	}
	if runes := []rune(last); len(runes) > 120 {
		last = string(runes[:120]) + "..."
	}

	return &domain.GenerateResponse{
		Text: fmt.Sprintf("(mock) Considering %d content parts, my answer to %q is: proceed carefully.", len(req.Parts), last),
	}, nil
}
