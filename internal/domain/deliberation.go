package domain

import "time"

type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentFile  AttachmentKind = "file"
)

// Attachment is a file the user included with the proposal.
// Only image attachments carry their bytes into the model context;
// other kinds are referenced by name.
type Attachment struct {
	Name     string         `json:"name"`
	Kind     AttachmentKind `json:"kind"`
	Data     []byte         `json:"data,omitempty"`
	MIMEType string         `json:"mime_type,omitempty"`
}

// Minute is one persona's single-turn contribution in one round.
// A minute is written once and never mutated.
type Minute struct {
	PersonaID PersonaID `json:"persona_id"`
	Round     int       `json:"round"`
	Text      string    `json:"text"`
	IsError   bool      `json:"is_error,omitempty"`
}

// Deliberation is one full boardroom run: the proposal, the minutes in
// speaking order, and the chair's final decision once all rounds have
// completed. A failed run is kept with the error minute and no decision.
type Deliberation struct {
	ID             DeliberationID `json:"id"`
	Title          string         `json:"title"`
	OriginalPrompt string         `json:"original_prompt"`
	Attachments    []Attachment   `json:"attachments,omitempty"`
	Mode           Mode           `json:"mode"`
	Minutes        []Minute       `json:"minutes"`
	FinalDecision  string         `json:"final_decision,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Failed reports whether the run was aborted by a failed turn.
func (d *Deliberation) Failed() bool {
	for _, m := range d.Minutes {
		if m.IsError {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so stored records and emitted snapshots
// cannot alias the orchestrator's working state.
func (d *Deliberation) Clone() *Deliberation {
	out := *d

	out.Minutes = make([]Minute, len(d.Minutes))
	copy(out.Minutes, d.Minutes)

	out.Attachments = make([]Attachment, len(d.Attachments))
	for i, a := range d.Attachments {
		ac := a
		ac.Data = append([]byte(nil), a.Data...)
		out.Attachments[i] = ac
	}

	return &out
}
