package domain

type DeliberationID string
type PersonaID string
type MessageID string

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderSystem    Sender = "system"
)

// Mode selects the participant subset and the round count of a run.
type Mode string

const (
	ModeFull          Mode = "full"           // every registry persona, 3 rounds
	ModeSinglePersona Mode = "single_persona" // one designated persona, 1 round
	ModeDebate        Mode = "debate"         // two designated personas, 3 rounds
)

// User is the stubbed identity of whoever is driving the session.
type User struct {
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref"`
}
