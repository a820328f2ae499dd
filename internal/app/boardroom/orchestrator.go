package boardroom

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/quorum-agent/internal/domain"
	"github.com/PabloGalante/quorum-agent/internal/observability"
)

const (
	fullRounds   = 3
	singleRounds = 1
	debateRounds = 3

	// chairID tags the synthesis call in error minutes; it is not a
	// roster persona.
	chairID domain.PersonaID = "chair"

	maxTitleRunes = 80
)

// Orchestrator drives one deliberation run at a time: it resolves the
// mode policy, sequences persona turns strictly one after another,
// grows the shared transcript, captures failures as error minutes and
// hands the terminal record to the history store.
type Orchestrator struct {
	llm      domain.LLMClient
	registry *domain.PersonaRegistry
	history  domain.HistoryStore

	model          string
	thinkingBudget int32

	now   func() time.Time
	newID func() string
}

func NewOrchestrator(
	llm domain.LLMClient,
	registry *domain.PersonaRegistry,
	history domain.HistoryStore,
	model string,
	thinkingBudget int32,
) *Orchestrator {
	return &Orchestrator{
		llm:            llm,
		registry:       registry,
		history:        history,
		model:          model,
		thinkingBudget: thinkingBudget,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// RunInput is a submitted proposal.
type RunInput struct {
	Prompt      string
	Attachments []domain.Attachment
	Mode        domain.Mode

	// Designated names the participants for single-persona (exactly
	// one) and debate (exactly two, speaking in the given order) runs.
	// Full-board runs use the whole registry and ignore it.
	Designated []domain.PersonaID

	// Observer receives progress events. May be nil.
	Observer Observer
}

// Run executes a deliberation to its terminal state and stores it.
//
// An error is returned only when the input is rejected before the run
// starts. A turn failure does not produce an error here: it is
// captured as an error minute, the run is aborted, and the partial
// record is stored and returned like any other.
func (o *Orchestrator) Run(ctx context.Context, in RunInput) (*domain.Deliberation, error) {
	if strings.TrimSpace(in.Prompt) == "" && len(in.Attachments) == 0 {
		return nil, domain.NewValidationError("a proposal needs a prompt or at least one attachment")
	}

	participants, rounds, err := o.plan(in.Mode, in.Designated)
	if err != nil {
		return nil, err
	}

	d := &domain.Deliberation{
		ID:             domain.DeliberationID(o.newID()),
		Title:          titleFromProposal(in.Prompt, in.Attachments),
		OriginalPrompt: in.Prompt,
		Attachments:    in.Attachments,
		Mode:           in.Mode,
		CreatedAt:      o.now(),
	}

	log := observability.LoggerFromContext(ctx).With(
		"deliberation_id", d.ID,
		"mode", in.Mode,
	)
	log.Info("deliberation started",
		"participants", len(participants),
		"rounds", rounds,
	)

	transcript := NewTranscript(in.Prompt, in.Attachments)

	for round := 1; round <= rounds; round++ {
		for _, p := range participants {
			emit(in.Observer, TurnStarted{PersonaID: p.ID, Round: round})
			log.Info("turn started", "persona", p.ID, "round", round)

			text, err := o.generateText(ctx, domain.GenerateRequest{
				Model:             o.model,
				Parts:             transcript.Turn(turnInstruction(p, round, rounds)),
				SystemInstruction: p.RoleInstruction,
				EnableSearch:      true,
				ThinkingBudget:    o.thinkingBudget,
			}, "minute")
			if err != nil {
				log.Error("turn failed", "persona", p.ID, "round", round, "error", err)
				return o.abort(ctx, in.Observer, d, p.ID, round, err)
			}

			minute := domain.Minute{PersonaID: p.ID, Round: round, Text: text}
			d.Minutes = append(d.Minutes, minute)
			transcript.AppendMinute(p, minute)
			emit(in.Observer, MinuteAdded{Minute: minute})
		}
	}

	// Chair synthesis: one extra call over the full transcript.
	emit(in.Observer, TurnStarted{PersonaID: chairID, Round: rounds})
	decision, err := o.generateText(ctx, domain.GenerateRequest{
		Model:             o.model,
		Parts:             transcript.Turn(chairSynthesisInstruction),
		SystemInstruction: chairSystemInstruction,
		EnableSearch:      true,
		ThinkingBudget:    o.thinkingBudget,
	}, "synthesis")
	if err != nil {
		log.Error("synthesis failed", "error", err)
		return o.abort(ctx, in.Observer, d, chairID, rounds, err)
	}

	d.FinalDecision = decision

	if err := o.store(ctx, d); err != nil {
		return nil, err
	}

	emit(in.Observer, RunFinalized{Decision: decision})
	log.Info("deliberation finalized", "minutes", len(d.Minutes))

	return d, nil
}

// generateText performs one model call and normalizes "succeeded but
// said nothing" into an EmptyOutputError.
func (o *Orchestrator) generateText(ctx context.Context, req domain.GenerateRequest, op string) (string, error) {
	res, err := o.llm.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Text) == "" {
		return "", &domain.EmptyOutputError{Op: op}
	}
	return res.Text, nil
}

// abort captures a failed turn as an error minute tagged with the
// round in progress, stores the partial record and ends the run.
// There are no retries: the first failure is terminal.
func (o *Orchestrator) abort(
	ctx context.Context,
	obs Observer,
	d *domain.Deliberation,
	persona domain.PersonaID,
	round int,
	cause error,
) (*domain.Deliberation, error) {
	minute := domain.Minute{
		PersonaID: persona,
		Round:     round,
		Text:      cause.Error(),
		IsError:   true,
	}
	d.Minutes = append(d.Minutes, minute)
	emit(obs, MinuteAdded{Minute: minute})

	if err := o.store(ctx, d); err != nil {
		return nil, err
	}

	emit(obs, RunFailed{Round: round, Err: cause})
	return d, nil
}

func (o *Orchestrator) store(ctx context.Context, d *domain.Deliberation) error {
	if err := o.history.Upsert(d.Clone()); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to store deliberation",
			"deliberation_id", d.ID, "error", err)
		return err
	}
	return nil
}

// plan resolves the mode policy: which personas speak, in what order,
// and how many rounds they get.
func (o *Orchestrator) plan(mode domain.Mode, designated []domain.PersonaID) ([]domain.Persona, int, error) {
	switch mode {
	case domain.ModeFull:
		return o.registry.All(), fullRounds, nil

	case domain.ModeSinglePersona:
		if len(designated) != 1 {
			return nil, 0, domain.NewValidationError("single-persona mode needs exactly one designated persona, got %d", len(designated))
		}
		p, ok := o.registry.Get(designated[0])
		if !ok {
			return nil, 0, domain.NewValidationError("unknown persona %q", designated[0])
		}
		return []domain.Persona{p}, singleRounds, nil

	case domain.ModeDebate:
		if len(designated) != 2 {
			return nil, 0, domain.NewValidationError("debate mode needs exactly two designated personas, got %d", len(designated))
		}
		if designated[0] == designated[1] {
			return nil, 0, domain.NewValidationError("debate mode needs two distinct personas")
		}
		pair := make([]domain.Persona, 0, 2)
		for _, id := range designated {
			p, ok := o.registry.Get(id)
			if !ok {
				return nil, 0, domain.NewValidationError("unknown persona %q", id)
			}
			pair = append(pair, p)
		}
		return pair, debateRounds, nil

	default:
		return nil, 0, domain.NewValidationError("unknown deliberation mode %q", mode)
	}
}

func titleFromProposal(prompt string, attachments []domain.Attachment) string {
	line := strings.TrimSpace(prompt)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" && len(attachments) > 0 {
		line = attachments[0].Name
	}

	runes := []rune(line)
	if len(runes) > maxTitleRunes {
		line = string(runes[:maxTitleRunes]) + "..."
	}
	return line
}
