package domain

import "context"

// ContentPart is one ordered element of a model request: either text
// or binary data (Data set, MIMEType describing it). Exactly one of
// the two is populated.
type ContentPart struct {
	Text     string
	Data     []byte
	MIMEType string
}

func TextPart(text string) ContentPart {
	return ContentPart{Text: text}
}

func BinaryPart(data []byte, mimeType string) ContentPart {
	return ContentPart{Data: data, MIMEType: mimeType}
}

// IsBinary reports whether the part carries bytes rather than text.
func (p ContentPart) IsBinary() bool {
	return p.Data != nil
}

// GenerateRequest is the structured request sent to the model service.
type GenerateRequest struct {
	// Model overrides the client's default model when set.
	Model string

	// Parts is the ordered content of the call.
	Parts []ContentPart

	// SystemInstruction frames the call (persona role, chair, assistant).
	SystemInstruction string

	// EnableSearch turns the provider's search grounding tool on.
	EnableSearch bool

	// ThinkingBudget is an opaque per-call compute budget, passed
	// through to the provider unchanged. Zero means provider default.
	ThinkingBudget int32

	// ImageOutput asks the provider for image-capable output.
	ImageOutput bool
}

// GenerateResponse is the model's answer. Text may be empty when the
// call produced only binary output; that is not an error here.
type GenerateResponse struct {
	Text   string
	Binary []ContentPart
}

// LLMClient defines how the application talks to the model service.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// HistoryStore keeps completed (and aborted) deliberation records.
type HistoryStore interface {
	// List returns all records ordered by creation time, newest first.
	List() ([]*Deliberation, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(id DeliberationID) (*Deliberation, error)

	// Upsert replaces any record sharing the id, else inserts.
	Upsert(d *Deliberation) error
}

// ChatLog is the append-only message sequence of the single chat
// session a process carries.
type ChatLog interface {
	Append(msg ChatMessage) error
	Messages() ([]ChatMessage, error)
}

// IdentityProvider is the (stubbed) sign-in surface.
type IdentityProvider interface {
	SignIn() (*User, error)
	SignOut() error
}
