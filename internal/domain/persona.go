package domain

import "fmt"

// Persona is a fixed expert role used to condition a model call.
// Personas are defined once at startup and never change afterwards.
type Persona struct {
	ID              PersonaID `json:"id"`
	DisplayName     string    `json:"display_name"`
	Title           string    `json:"title"`
	RoleInstruction string    `json:"role_instruction"`
}

// PersonaRegistry is the immutable roster of personas for a process.
// Registry order is the speaking order in full-board runs.
type PersonaRegistry struct {
	ordered []Persona
	byID    map[PersonaID]Persona
}

func NewPersonaRegistry(personas []Persona) (*PersonaRegistry, error) {
	if len(personas) == 0 {
		return nil, fmt.Errorf("persona registry needs at least one persona")
	}

	byID := make(map[PersonaID]Persona, len(personas))
	ordered := make([]Persona, 0, len(personas))
	for _, p := range personas {
		if p.ID == "" {
			return nil, fmt.Errorf("persona %q has an empty id", p.DisplayName)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate persona id %q", p.ID)
		}
		byID[p.ID] = p
		ordered = append(ordered, p)
	}

	return &PersonaRegistry{ordered: ordered, byID: byID}, nil
}

// All returns the roster in registry order. The slice is a copy.
func (r *PersonaRegistry) All() []Persona {
	out := make([]Persona, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *PersonaRegistry) Get(id PersonaID) (Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *PersonaRegistry) Len() int {
	return len(r.ordered)
}
