package boardroom

import (
	"fmt"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

const chairSystemInstruction = `
You are the impartial chair of an expert deliberation board.

Your role:
- You hold no position of your own and favor no board member.
- You weigh every minute on its merits and resolve disagreements explicitly.
- You write the board's final decision: clear verdict first, then the key
  reasons, then the concrete next steps the board agreed on.
- Be decisive. "It depends" is not a decision.
- Answer in the same language as the proposal.
`

const chairSynthesisInstruction = `The deliberation is complete. As chair, synthesize all minutes above into the board's final decision. State the verdict in the first sentence, then the main reasons, then next steps.`

func proposalFraming(prompt string) string {
	return "A proposal has been submitted to the board for deliberation.\n\nProposal:\n" + prompt
}

func turnInstruction(p domain.Persona, round, rounds int) string {
	return fmt.Sprintf(
		"It is round %d of %d. %s (%s), deliver your minute now: give your expert reading of the proposal and respond directly to the minutes above.",
		round, rounds, p.DisplayName, p.Title)
}
