package persona

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/assistant/reply"

	"gopkg.in/yaml.v3"
)

const logModule = "PERSONA"

// Document is the startup memory file: persona plus custom replies.
type Document struct {
	Persona       *Profile      `json:"persona_data" yaml:"persona_data"`
	CustomReplies []reply.Entry `json:"custom_replies" yaml:"custom_replies"`

	// personaKeys counts the keys of persona_data, recognised or not.
	personaKeys int
}

type personaShape struct {
	Persona map[string]interface{} `json:"persona_data" yaml:"persona_data"`
}

// HasPersona reports whether persona_data was a non-empty object. Unknown
// keys still count, so such a persona resolves to all defaults.
func (d *Document) HasPersona() bool {
	return d.Persona != nil && d.personaKeys > 0
}

// Memory is the immutable startup state shared by every request.
type Memory struct {
	Persona *Profile
	Replies *reply.Table
}

// ParseDocument decodes data as YAML when format is "yaml" or "yml" and as
// JSON otherwise.
func ParseDocument(data []byte, format string) (*Document, error) {
	var doc Document
	var keys personaShape
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml memory document: %w", err)
		}
		_ = yaml.Unmarshal(data, &keys)
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json memory document: %w", err)
		}
		_ = json.Unmarshal(data, &keys)
	}
	doc.personaKeys = len(keys.Persona)
	return &doc, nil
}

// LoadDocument reads path and picks the decoder from its extension.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Load never fails: an absent or malformed document yields no persona and
// an empty reply table, and the problem is logged.
func Load(path string, log logger.ILogger) Memory {
	empty := Memory{Replies: reply.NewTable(nil)}

	doc, err := LoadDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn(logModule, "Memory document not found, using default persona and no custom replies", map[string]interface{}{
				"path": path,
			})
		} else {
			log.Error(logModule, "Memory document unreadable, using default persona and no custom replies", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return empty
	}

	mem := Memory{Replies: reply.NewTable(doc.CustomReplies)}
	if doc.HasPersona() {
		mem.Persona = doc.Persona
		log.Info(logModule, "Persona loaded", map[string]interface{}{
			"path": path,
			"name": doc.Persona.Name,
		})
	} else {
		log.Warn(logModule, "persona_data missing, using default persona", map[string]interface{}{"path": path})
	}

	if mem.Replies.Len() > 0 {
		log.Info(logModule, "Custom replies loaded", map[string]interface{}{"phrases": mem.Replies.Len()})
	} else {
		log.Warn(logModule, "custom_replies missing or empty", map[string]interface{}{"path": path})
	}

	return mem
}
