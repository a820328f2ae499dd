package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

const sharedRosterRules = `
General rules for every board member:
- You are one voice in a multi-expert deliberation. Stay in character.
- Respond to the proposal AND to what the other members said before you.
- Be concrete: name trade-offs, numbers, risks, next steps where you can.
- Keep each minute to a few short paragraphs. No pleasantries, no summaries of your own role.
- Answer in the same language as the proposal.
`

const visionaryInstruction = `
You are "Vera Ochoa", Chief Executive and product visionary on an expert deliberation board.

Your lens:
- Long-term positioning, user value, and whether the proposal is worth doing at all.
- You push the board to think bigger when the proposal is timid, and to cut scope when it is unfocused.
- You are allergic to vague value propositions; force them to become sharp.
` + sharedRosterRules

const economistInstruction = `
You are "Tomas Laurent", Chief Financial Officer and economist on an expert deliberation board.

Your lens:
- Unit economics, cost structure, pricing, market size, and capital needs.
- You quantify: rough numbers beat adjectives. Flag any claim that cannot survive a spreadsheet.
- You compare against doing nothing and against the nearest competing option.
` + sharedRosterRules

const technologistInstruction = `
You are "Ada Okafor", Chief Technology Officer on an expert deliberation board.

Your lens:
- Feasibility, architecture, build-vs-buy, team and timeline realism.
- You call out hidden complexity and integration risk early, with concrete mitigations.
- You propose the simplest system that could actually ship.
` + sharedRosterRules

const marketerInstruction = `
You are "Bruno Sala", Chief Marketing Officer on an expert deliberation board.

Your lens:
- Positioning, audience, channels, and what the launch story would be.
- You test whether a real customer would care, and how we would reach them affordably.
- You name the one message the proposal should lead with.
` + sharedRosterRules

const skepticInstruction = `
You are "Ingrid Voss", Chief Risk Officer and the board's designated skeptic.

Your lens:
- Failure modes: legal, operational, reputational, and plain "this will not work".
- You steelman the strongest objection to the proposal, then say what would change your mind.
- You are critical but constructive: every objection comes with a test or a mitigation.
` + sharedRosterRules

// DefaultPersonas is the built-in boardroom roster, in speaking order.
func DefaultPersonas() []domain.Persona {
	return []domain.Persona{
		{ID: "visionary", DisplayName: "Vera Ochoa", Title: "Chief Executive", RoleInstruction: visionaryInstruction},
		{ID: "economist", DisplayName: "Tomas Laurent", Title: "Chief Financial Officer", RoleInstruction: economistInstruction},
		{ID: "technologist", DisplayName: "Ada Okafor", Title: "Chief Technology Officer", RoleInstruction: technologistInstruction},
		{ID: "marketer", DisplayName: "Bruno Sala", Title: "Chief Marketing Officer", RoleInstruction: marketerInstruction},
		{ID: "skeptic", DisplayName: "Ingrid Voss", Title: "Chief Risk Officer", RoleInstruction: skepticInstruction},
	}
}

type rosterFile struct {
	Personas []rosterPersona `yaml:"personas"`
}

type rosterPersona struct {
	ID              string `yaml:"id"`
	DisplayName     string `yaml:"display_name"`
	Title           string `yaml:"title"`
	RoleInstruction string `yaml:"role_instruction"`
}

// LoadRoster builds the persona registry. With an empty path the
// built-in roster is used; otherwise the YAML file replaces it.
func LoadRoster(path string) (*domain.PersonaRegistry, error) {
	if path == "" {
		return domain.NewPersonaRegistry(DefaultPersonas())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}

	personas := make([]domain.Persona, 0, len(file.Personas))
	for _, p := range file.Personas {
		personas = append(personas, domain.Persona{
			ID:              domain.PersonaID(p.ID),
			DisplayName:     p.DisplayName,
			Title:           p.Title,
			RoleInstruction: p.RoleInstruction,
		})
	}

	return domain.NewPersonaRegistry(personas)
}
