package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/quorum-agent/internal/app/assistant"
	"github.com/PabloGalante/quorum-agent/internal/app/boardroom"
	"github.com/PabloGalante/quorum-agent/internal/app/creative"
	"github.com/PabloGalante/quorum-agent/internal/domain"
)

type Server struct {
	orchestrator *boardroom.Orchestrator
	router       *assistant.Router
	creative     *creative.Generator
	history      domain.HistoryStore
	chat         domain.ChatLog
	identity     domain.IdentityProvider
}

func NewServer(
	orchestrator *boardroom.Orchestrator,
	router *assistant.Router,
	generator *creative.Generator,
	history domain.HistoryStore,
	chat domain.ChatLog,
	identity domain.IdentityProvider,
) http.Handler {
	s := &Server{
		orchestrator: orchestrator,
		router:       router,
		creative:     generator,
		history:      history,
		chat:         chat,
		identity:     identity,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /deliberations        → POST: submit proposal, GET: history list
	// /deliberations/{id}   → GET: single record
	mux.HandleFunc("/deliberations", s.handleDeliberations)
	mux.HandleFunc("/deliberations/", s.handleDeliberationWithID)

	// /chat          → POST: ask the assistant, GET: chat log
	// /chat/creative → POST: dispatch a fallback action
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/chat/creative", s.handleCreative)

	mux.HandleFunc("/auth/signin", s.handleSignIn)
	mux.HandleFunc("/auth/signout", s.handleSignOut)

	return chainMiddlewares(mux, withCORS, withLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type attachmentRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Data     []byte `json:"data,omitempty"` // base64 on the wire
	MIMEType string `json:"mime_type,omitempty"`
}

type createDeliberationRequest struct {
	Prompt      string              `json:"prompt"`
	Mode        string              `json:"mode,omitempty"`
	PersonaIDs  []string            `json:"persona_ids,omitempty"`
	Attachments []attachmentRequest `json:"attachments,omitempty"`
}

type minuteResponse struct {
	PersonaID string `json:"persona_id"`
	Round     int    `json:"round"`
	Text      string `json:"text"`
	IsError   bool   `json:"is_error,omitempty"`
}

type deliberationResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	OriginalPrompt string           `json:"original_prompt"`
	Mode           string           `json:"mode"`
	Minutes        []minuteResponse `json:"minutes"`
	FinalDecision  string           `json:"final_decision,omitempty"`
	Failed         bool             `json:"failed"`
	CreatedAt      time.Time        `json:"created_at"`
}

type chatRequest struct {
	Text           string `json:"text"`
	DeliberationID string `json:"deliberation_id,omitempty"`
}

type creativeRequest struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

type actionResponse struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

type chatMessageResponse struct {
	ID            string           `json:"id"`
	Sender        string           `json:"sender"`
	Text          string           `json:"text"`
	Image         []byte           `json:"image,omitempty"` // base64 on the wire
	ImageMIMEType string           `json:"image_mime_type,omitempty"`
	Actions       []actionResponse `json:"actions,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type chatLogResponse struct {
	Messages []chatMessageResponse `json:"messages"`
}

type userResponse struct {
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeliberations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateDeliberation(w, r)
	case http.MethodGet:
		s.handleListDeliberations(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDeliberationWithID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/deliberations/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	d, err := s.history.Get(domain.DeliberationID(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeliberationResponse(d))
}

func (s *Server) handleCreateDeliberation(w http.ResponseWriter, r *http.Request) {
	var req createDeliberationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	designated := make([]domain.PersonaID, 0, len(req.PersonaIDs))
	for _, id := range req.PersonaIDs {
		designated = append(designated, domain.PersonaID(id))
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, domain.Attachment{
			Name:     a.Name,
			Kind:     parseAttachmentKind(a.Kind),
			Data:     a.Data,
			MIMEType: a.MIMEType,
		})
	}

	d, err := s.orchestrator.Run(r.Context(), boardroom.RunInput{
		Prompt:      req.Prompt,
		Attachments: attachments,
		Mode:        parseMode(req.Mode),
		Designated:  designated,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// A failed run still returns 201: the record exists, the error
	// minute tells the story.
	writeJSON(w, http.StatusCreated, toDeliberationResponse(d))
}

func (s *Server) handleListDeliberations(w http.ResponseWriter, r *http.Request) {
	list, err := s.history.List()
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]deliberationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliberationResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleChatMessage(w, r)
	case http.MethodGet:
		s.handleChatLog(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	// A deliberation id makes that record the active context: the
	// assistant answers in analyst mode, scoped to it.
	var active *domain.Deliberation
	if req.DeliberationID != "" {
		d, err := s.history.Get(domain.DeliberationID(req.DeliberationID))
		if err != nil {
			writeError(w, err)
			return
		}
		active = d
	}

	msg, err := s.router.Handle(r.Context(), req.Text, active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatMessageResponse(msg))
}

func (s *Server) handleChatLog(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.chat.Messages()
	if err != nil {
		writeError(w, err)
		return
	}

	out := chatLogResponse{Messages: make([]chatMessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		out.Messages = append(out.Messages, toChatMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreative(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req creativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	msg, err := s.creative.Generate(r.Context(), domain.CreativeKind(req.Kind), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatMessageResponse(msg))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	user, err := s.identity.SignIn()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Name: user.Name, AvatarRef: user.AvatarRef})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := s.identity.SignOut(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// ─────────────────────────────────────────────
// Mapping helpers
// ─────────────────────────────────────────────

func toDeliberationResponse(d *domain.Deliberation) deliberationResponse {
	minutes := make([]minuteResponse, 0, len(d.Minutes))
	for _, m := range d.Minutes {
		minutes = append(minutes, minuteResponse{
			PersonaID: string(m.PersonaID),
			Round:     m.Round,
			Text:      m.Text,
			IsError:   m.IsError,
		})
	}

	return deliberationResponse{
		ID:             string(d.ID),
		Title:          d.Title,
		OriginalPrompt: d.OriginalPrompt,
		Mode:           string(d.Mode),
		Minutes:        minutes,
		FinalDecision:  d.FinalDecision,
		Failed:         d.Failed(),
		CreatedAt:      d.CreatedAt,
	}
}

func toChatMessageResponse(m domain.ChatMessage) chatMessageResponse {
	out := chatMessageResponse{
		ID:        string(m.ID),
		Sender:    string(m.Sender),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if m.Image != nil {
		out.Image = m.Image.Data
		out.ImageMIMEType = m.Image.MIMEType
	}
	for _, a := range m.Actions {
		out.Actions = append(out.Actions, actionResponse{Kind: string(a.Kind), Prompt: a.Prompt})
	}
	return out
}

func parseMode(s string) domain.Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single_persona", "single":
		return domain.ModeSinglePersona
	case "debate":
		return domain.ModeDebate
	case "full", "":
		fallthrough
	default:
		return domain.ModeFull
	}
}

func parseAttachmentKind(s string) domain.AttachmentKind {
	if strings.ToLower(strings.TrimSpace(s)) == "image" {
		return domain.AttachmentImage
	}
	return domain.AttachmentFile
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		badRequest(w, verr.Msg)
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
