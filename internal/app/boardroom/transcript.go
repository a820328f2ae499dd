package boardroom

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

// Transcript is the ordered content every model call in a run observes.
// It only ever grows: parts are never reordered or removed, so the
// parts passed to call k are a strict superset of those of call k-1.
type Transcript struct {
	parts []domain.ContentPart
}

// NewTranscript seeds the transcript with the proposal framing, any
// image attachments as binary parts right after it, and a note naming
// the attachments that are not carried as bytes.
func NewTranscript(prompt string, attachments []domain.Attachment) *Transcript {
	t := &Transcript{}
	t.parts = append(t.parts, domain.TextPart(proposalFraming(prompt)))

	var unshown []string
	for _, a := range attachments {
		if a.Kind == domain.AttachmentImage && len(a.Data) > 0 {
			t.parts = append(t.parts, domain.BinaryPart(a.Data, a.MIMEType))
			continue
		}
		unshown = append(unshown, a.Name)
	}

	if len(unshown) > 0 {
		t.parts = append(t.parts, domain.TextPart(
			"The user also attached the following files (contents not included): "+strings.Join(unshown, ", ")))
	}

	return t
}

// AppendMinute records a delivered minute so every later call sees it
// verbatim, in order.
func (t *Transcript) AppendMinute(p domain.Persona, m domain.Minute) {
	t.parts = append(t.parts, domain.TextPart(RenderMinute(p, m)))
}

// Turn returns the content for the next model call: everything
// accumulated so far plus the turn instruction. The returned slice is
// a copy; the transcript itself is untouched.
func (t *Transcript) Turn(instruction string) []domain.ContentPart {
	out := make([]domain.ContentPart, 0, len(t.parts)+1)
	out = append(out, t.parts...)
	out = append(out, domain.TextPart(instruction))
	return out
}

// Parts returns a copy of the accumulated parts.
func (t *Transcript) Parts() []domain.ContentPart {
	out := make([]domain.ContentPart, len(t.parts))
	copy(out, t.parts)
	return out
}

// RenderMinute is the canonical textual form of a minute inside a
// transcript: persona name, title and round, then the text.
func RenderMinute(p domain.Persona, m domain.Minute) string {
	return fmt.Sprintf("%s (%s), round %d:\n%s", p.DisplayName, p.Title, m.Round, m.Text)
}
