package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedHasInterviewPersona(t *testing.T) {
	items := Seed()
	require.NotEmpty(t, items)

	p := items[0]
	assert.Equal(t, "aswanth-lal", p.ID)
	assert.Contains(t, p.Instruction, "voice-based interview")

	for _, topic := range []string{"life", "superpower", "growth", "misconception", "boundaries"} {
		q, ok := p.Question(topic)
		assert.True(t, ok, topic)
		assert.NotEmpty(t, q, topic)
	}
}

func TestParseRejectsInvalidCatalogue(t *testing.T) {
	cases := map[string]string{
		"empty":          "personas: []",
		"missing id":     "personas:\n  - instruction: hi",
		"missing prompt": "personas:\n  - id: a",
		"duplicate":      "personas:\n  - id: a\n    instruction: x\n  - id: a\n    instruction: y",
		"malformed yaml": "personas: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	doc := "personas:\n  - id: tester\n    name: Tester\n    instruction: Answer as a tester.\n    questions:\n      life: Who are you?\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Answer as a tester.", items[0].Instruction)

	_, ok := items[0].Question("growth")
	assert.False(t, ok)
}

func TestMemoryStoreResolve(t *testing.T) {
	store := NewMemoryStore([]Persona{{ID: "a", Instruction: "x"}, {ID: "b", Instruction: "y"}})

	p, ok := store.Resolve("")
	require.True(t, ok)
	assert.Equal(t, "a", p.ID)

	p, ok = store.Resolve("b")
	require.True(t, ok)
	assert.Equal(t, "b", p.ID)

	_, ok = store.Resolve("missing")
	assert.False(t, ok)

	_, ok = NewMemoryStore(nil).Resolve("")
	assert.False(t, ok)
}
