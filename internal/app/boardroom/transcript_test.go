package boardroom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/quorum-agent/internal/app/boardroom"
	"github.com/PabloGalante/quorum-agent/internal/domain"
)

func TestTranscriptSeeding(t *testing.T) {
	img := []byte{1, 2, 3}
	tr := boardroom.NewTranscript("Ship the mobile app", []domain.Attachment{
		{Name: "sketch.png", Kind: domain.AttachmentImage, Data: img, MIMEType: "image/png"},
		{Name: "notes.docx", Kind: domain.AttachmentFile},
		{Name: "budget.xlsx", Kind: domain.AttachmentFile},
	})

	parts := tr.Parts()
	require.Len(t, parts, 3)

	assert.Contains(t, parts[0].Text, "Ship the mobile app")
	require.True(t, parts[1].IsBinary())
	assert.Equal(t, img, parts[1].Data)
	assert.Contains(t, parts[2].Text, "notes.docx")
	assert.Contains(t, parts[2].Text, "budget.xlsx")
}

func TestTranscriptTurnDoesNotMutate(t *testing.T) {
	tr := boardroom.NewTranscript("Prompt", nil)

	turn1 := tr.Turn("first instruction")
	turn2 := tr.Turn("second instruction")

	// A turn adds only its own instruction; the transcript itself
	// stays untouched.
	require.Len(t, turn1, 2)
	require.Len(t, turn2, 2)
	assert.Equal(t, "first instruction", turn1[1].Text)
	assert.Equal(t, "second instruction", turn2[1].Text)
	assert.Len(t, tr.Parts(), 1)
}

func TestTranscriptAppendMinuteKeepsOrder(t *testing.T) {
	p1 := domain.Persona{ID: "a", DisplayName: "Ada", Title: "CTO"}
	p2 := domain.Persona{ID: "b", DisplayName: "Vera", Title: "CEO"}

	tr := boardroom.NewTranscript("Prompt", nil)
	tr.AppendMinute(p1, domain.Minute{PersonaID: "a", Round: 1, Text: "build it"})
	tr.AppendMinute(p2, domain.Minute{PersonaID: "b", Round: 1, Text: "fund it"})

	parts := tr.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, "Ada (CTO), round 1:\nbuild it", parts[1].Text)
	assert.Equal(t, "Vera (CEO), round 1:\nfund it", parts[2].Text)
}
