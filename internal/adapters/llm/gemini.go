package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

type GeminiClient struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiClient creates an LLMClient based on Vertex AI (Gemini).
// Uses environment variables for project and region to simplify.
func NewGeminiClient(ctx context.Context, defaultModel string) (*GeminiClient, error) {
	projectID := os.Getenv("QUORUM_GCP_PROJECT")
	location := os.Getenv("QUORUM_GCP_LOCATION")
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("QUORUM_GCP_PROJECT and QUORUM_GCP_LOCATION must be set")
	}

	if defaultModel == "" {
		defaultModel = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

// Generate implements domain.LLMClient.
func (c *GeminiClient) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsBinary() {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		// As in the official examples the role here is RoleUser, not "system".
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}
	if req.ThinkingBudget > 0 {
		budget := req.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	if req.ImageOutput {
		cfg.ResponseModalities = []string{"TEXT", "IMAGE"}
	}

	res, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, &domain.ServiceError{Op: "generate", Err: err}
	}

	// Empty text is not an error here; callers decide what "no text"
	// means for their operation.
	out := &domain.GenerateResponse{Text: strings.TrimSpace(res.Text())}

	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			out.Binary = append(out.Binary, domain.BinaryPart(part.InlineData.Data, part.InlineData.MIMEType))
		}
	}

	return out, nil
}
