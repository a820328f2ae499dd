package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

// Store keeps the deliberation history in Firestore, one document per
// deliberation with minutes and attachments embedded. Documents are
// written whole, which gives Upsert its replace-or-insert semantics.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (QUORUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) deliberationsCol() *firestore.CollectionRef {
	return s.client.Collection("deliberations")
}

func (s *Store) deliberationDoc(id domain.DeliberationID) *firestore.DocumentRef {
	return s.deliberationsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type minuteDoc struct {
	PersonaID string `firestore:"persona_id"`
	Round     int    `firestore:"round"`
	Text      string `firestore:"text"`
	IsError   bool   `firestore:"is_error"`
}

type attachmentDoc struct {
	Name     string `firestore:"name"`
	Kind     string `firestore:"kind"`
	Data     []byte `firestore:"data"`
	MIMEType string `firestore:"mime_type"`
}

type deliberationDoc struct {
	Title          string          `firestore:"title"`
	OriginalPrompt string          `firestore:"original_prompt"`
	Mode           string          `firestore:"mode"`
	Minutes        []minuteDoc     `firestore:"minutes"`
	Attachments    []attachmentDoc `firestore:"attachments"`
	FinalDecision  string          `firestore:"final_decision"`
	CreatedAt      time.Time       `firestore:"created_at"`
}

func toDoc(d *domain.Deliberation) deliberationDoc {
	minutes := make([]minuteDoc, 0, len(d.Minutes))
	for _, m := range d.Minutes {
		minutes = append(minutes, minuteDoc{
			PersonaID: string(m.PersonaID),
			Round:     m.Round,
			Text:      m.Text,
			IsError:   m.IsError,
		})
	}

	attachments := make([]attachmentDoc, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, attachmentDoc{
			Name:     a.Name,
			Kind:     string(a.Kind),
			Data:     a.Data,
			MIMEType: a.MIMEType,
		})
	}

	return deliberationDoc{
		Title:          d.Title,
		OriginalPrompt: d.OriginalPrompt,
		Mode:           string(d.Mode),
		Minutes:        minutes,
		Attachments:    attachments,
		FinalDecision:  d.FinalDecision,
		CreatedAt:      d.CreatedAt,
	}
}

func fromDoc(id domain.DeliberationID, doc deliberationDoc) *domain.Deliberation {
	minutes := make([]domain.Minute, 0, len(doc.Minutes))
	for _, m := range doc.Minutes {
		minutes = append(minutes, domain.Minute{
			PersonaID: domain.PersonaID(m.PersonaID),
			Round:     m.Round,
			Text:      m.Text,
			IsError:   m.IsError,
		})
	}

	attachments := make([]domain.Attachment, 0, len(doc.Attachments))
	for _, a := range doc.Attachments {
		attachments = append(attachments, domain.Attachment{
			Name:     a.Name,
			Kind:     domain.AttachmentKind(a.Kind),
			Data:     a.Data,
			MIMEType: a.MIMEType,
		})
	}

	return &domain.Deliberation{
		ID:             id,
		Title:          doc.Title,
		OriginalPrompt: doc.OriginalPrompt,
		Mode:           domain.Mode(doc.Mode),
		Minutes:        minutes,
		Attachments:    attachments,
		FinalDecision:  doc.FinalDecision,
		CreatedAt:      doc.CreatedAt,
	}
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) Upsert(d *domain.Deliberation) error {
	ctx := context.Background()

	_, err := s.deliberationDoc(d.ID).Set(ctx, toDoc(d))
	if err != nil {
		return fmt.Errorf("firestore Upsert: %w", err)
	}
	return nil
}

func (s *Store) Get(id domain.DeliberationID) (*domain.Deliberation, error) {
	ctx := context.Background()

	snap, err := s.deliberationDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc deliberationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}

	return fromDoc(id, doc), nil
}

func (s *Store) List() ([]*domain.Deliberation, error) {
	ctx := context.Background()

	q := s.deliberationsCol().OrderBy("created_at", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Deliberation
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List: %w", err)
		}

		var doc deliberationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode deliberationDoc: %w", err)
		}

		out = append(out, fromDoc(domain.DeliberationID(snap.Ref.ID), doc))
	}
	return out, nil
}
