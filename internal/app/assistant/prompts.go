package assistant

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

const generalSystemInstruction = `
You are the Quorum assistant, a general-purpose helper alongside a boardroom deliberation tool.

Your role:
- Answer any question the user asks, on any topic.
- You may use web search to ground your answers; prefer checked facts over guesses.
- Be direct and concise. If you genuinely cannot answer, say so plainly.
- Answer in the same language as the user.
`

const analystSystemInstruction = `
You are the Quorum analyst. You answer questions about ONE recorded deliberation.

Your role:
- Answer strictly and only from the deliberation context provided in the message.
- Do not bring in outside knowledge and do not speculate beyond the record.
- When the record does not contain the answer, say exactly that.
- Quote or paraphrase the relevant minutes; name the board member you are citing.
- Answer in the same language as the user.
`

// analystContext renders the structured block the analyst answers
// from: title, original proposal, every minute in stored order as
// `name: "text"`, the final decision when present, then the question.
func analystContext(d *domain.Deliberation, registry *domain.PersonaRegistry, question string) string {
	var b strings.Builder

	b.WriteString("Deliberation: " + d.Title + "\n")
	b.WriteString("Original proposal:\n" + d.OriginalPrompt + "\n\n")

	b.WriteString("Minutes, in order:\n")
	for _, m := range d.Minutes {
		name := string(m.PersonaID)
		if p, ok := registry.Get(m.PersonaID); ok {
			name = p.DisplayName
		}
		fmt.Fprintf(&b, "%s: %q\n", name, m.Text)
	}

	if d.FinalDecision != "" {
		b.WriteString("\nFinal decision:\n" + d.FinalDecision + "\n")
	}

	b.WriteString("\nQuestion:\n" + question)
	return b.String()
}
