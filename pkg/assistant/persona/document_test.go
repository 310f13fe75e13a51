package persona

import (
	"os"
	"path/filepath"
	"testing"

	"jarvina-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDocument = `{
  "persona_data": {
    "name": "Jarvina",
    "mode": "a personal strategist",
    "personalities": ["sharp", "calm"],
    "voice_tone": {"style": "measured"},
    "jarvina_rules": ["Be brief", "Cite sources"],
    "contextual_defaults": {"user_name": "Asha", "motivation": "ship the product"}
  },
  "custom_replies": [
    {"response": "I am Jarvina.", "phrases": ["What's your name?"]},
    {"response": "", "phrases": ["skipped"]}
  ]
}`

const yamlDocument = `
persona_data:
  name: Jarvina
  jarvina_rules:
    - Be brief
custom_replies:
  - response: Hello!
    phrases: ["Hi there", "hey"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONDocument(t *testing.T) {
	mem := Load(writeFile(t, "memory.json", jsonDocument), logger.NewNopLogger())

	require.NotNil(t, mem.Persona)
	assert.Equal(t, "Jarvina", mem.Persona.Name)
	assert.Equal(t, []string{"Be brief", "Cite sources"}, mem.Persona.Rules)
	assert.Equal(t, "Asha", mem.Persona.ContextualDefaults.UserName)

	got, ok := mem.Replies.Match("whats your name")
	assert.True(t, ok)
	assert.Equal(t, "I am Jarvina.", got)
	assert.Equal(t, 1, mem.Replies.Len())
}

func TestLoadYAMLDocument(t *testing.T) {
	mem := Load(writeFile(t, "memory.yaml", yamlDocument), logger.NewNopLogger())

	require.NotNil(t, mem.Persona)
	assert.Equal(t, "Jarvina", mem.Persona.Name)

	got, ok := mem.Replies.Match("hey")
	assert.True(t, ok)
	assert.Equal(t, "Hello!", got)
}

func TestLoadFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string { return writeFile(t, "memory.json", "{not json") },
		},
		{
			name: "wrong persona type",
			path: func(t *testing.T) string { return writeFile(t, "memory.json", `{"persona_data": "oops"}`) },
		},
		{
			name: "empty object",
			path: func(t *testing.T) string { return writeFile(t, "memory.json", `{}`) },
		},
		{
			name: "empty persona object",
			path: func(t *testing.T) string { return writeFile(t, "memory.json", `{"persona_data": {}}`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := Load(tt.path(t), logger.NewNopLogger())
			assert.Nil(t, mem.Persona)
			require.NotNil(t, mem.Replies)
			assert.Equal(t, 0, mem.Replies.Len())
		})
	}
}

func TestLoadPersonaWithUnknownKeysUsesDefaults(t *testing.T) {
	mem := Load(writeFile(t, "memory.json", `{"persona_data": {"nickname": "J"}}`), logger.NewNopLogger())

	require.NotNil(t, mem.Persona)
	r := mem.Persona.Resolved()
	assert.Equal(t, "AI Assistant", r.Name)
	assert.Equal(t, "a helpful companion", r.Mode)
	assert.Equal(t, "natural", r.VoiceTone.Style)
}

func TestProfileResolved(t *testing.T) {
	t.Run("defaults fill missing fields", func(t *testing.T) {
		r := (&Profile{Name: "Jarvina"}).Resolved()
		assert.Equal(t, "Jarvina", r.Name)
		assert.Equal(t, "a helpful companion", r.Mode)
		assert.Equal(t, []string{"helpful", "friendly"}, r.Personalities)
		assert.Equal(t, "natural", r.VoiceTone.Style)
		assert.Equal(t, "user", r.ContextualDefaults.UserName)
		assert.Equal(t, "to assist you", r.ContextualDefaults.Motivation)
		assert.Empty(t, r.Rules)
	})

	t.Run("explicit empty personalities stay empty", func(t *testing.T) {
		r := (&Profile{Name: "x", Personalities: []string{}}).Resolved()
		assert.Empty(t, r.Personalities)
	})

	t.Run("partial contextual defaults", func(t *testing.T) {
		r := (&Profile{ContextualDefaults: &ContextualDefaults{UserName: "Asha"}}).Resolved()
		assert.Equal(t, "Asha", r.ContextualDefaults.UserName)
		assert.Equal(t, "to assist you", r.ContextualDefaults.Motivation)
	})
}
