package domain

import "time"

// CreativeKind tags a creative-generation command.
type CreativeKind string

const (
	CreativeImage CreativeKind = "image"
	CreativeVideo CreativeKind = "video"
)

// FallbackAction is a suggested follow-up command attached to an
// assistant reply that looked unsatisfying. It carries everything
// needed to dispatch the generation later; no callbacks.
type FallbackAction struct {
	Kind   CreativeKind `json:"kind"`
	Prompt string       `json:"prompt"`
}

// ImagePayload is binary image content carried by a chat message.
type ImagePayload struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// ChatMessage is one entry in the process-wide chat session.
type ChatMessage struct {
	ID        MessageID        `json:"id"`
	Sender    Sender           `json:"sender"`
	Text      string           `json:"text"`
	Image     *ImagePayload    `json:"image,omitempty"`
	Actions   []FallbackAction `json:"actions,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
