package memory

import (
	"sync"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

// ChatLog holds the single per-process chat session. Append-only;
// switching the active deliberation never erases prior messages.
type ChatLog struct {
	mu   sync.RWMutex
	msgs []domain.ChatMessage
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

func (l *ChatLog) Append(msg domain.ChatMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.msgs = append(l.msgs, msg)
	return nil
}

func (l *ChatLog) Messages() ([]domain.ChatMessage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.ChatMessage, len(l.msgs))
	copy(out, l.msgs)
	return out, nil
}
