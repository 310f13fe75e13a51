package prompt

import (
	"context"
	"fmt"
	"strings"

	"jarvina-be/internal/constant"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/assistant/persona"
)

// InstructionsReader is the read half of instructions.Store.
type InstructionsReader interface {
	Read(ctx context.Context) (string, error)
}

// ContextBuilder renders the system context placed ahead of every
// generation request.
type ContextBuilder struct {
	persona      *persona.Profile
	instructions InstructionsReader
	logger       logger.ILogger
}

// NewContextBuilder accepts a nil profile, meaning the default persona.
func NewContextBuilder(profile *persona.Profile, instructions InstructionsReader, log logger.ILogger) *ContextBuilder {
	return &ContextBuilder{
		persona:      profile,
		instructions: instructions,
		logger:       log,
	}
}

// Build re-reads custom instructions on every call. A read failure is
// logged and treated as no instructions.
func (b *ContextBuilder) Build(ctx context.Context) string {
	var prompt strings.Builder

	writeLine(&prompt, constant.FormalToneDirective)
	b.writeCustomInstructions(ctx, &prompt)

	if b.persona == nil {
		writeLine(&prompt, constant.DefaultPersonaDescription)
	} else {
		b.writePersona(&prompt)
	}

	return prompt.String()
}

func (b *ContextBuilder) writeCustomInstructions(ctx context.Context, prompt *strings.Builder) {
	if b.instructions == nil {
		return
	}

	text, err := b.instructions.Read(ctx)
	if err != nil {
		b.logger.Warn("PROMPT", "Custom instructions unreadable, continuing without them", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if text == "" {
		return
	}

	writeLine(prompt, constant.CustomInstructionsLabel+text)
}

func (b *ContextBuilder) writePersona(prompt *strings.Builder) {
	p := b.persona.Resolved()

	writeLine(prompt, fmt.Sprintf(constant.PersonaIdentityFormat,
		p.Name, p.Mode, strings.Join(p.Personalities, constant.PersonaPersonalitiesDelim)))
	writeLine(prompt, fmt.Sprintf(constant.PersonaVoiceToneFormat, p.VoiceTone.Style))
	writeLine(prompt, fmt.Sprintf(constant.PersonaUserProfileFormat,
		p.ContextualDefaults.UserName, p.ContextualDefaults.Motivation))

	if len(p.Rules) == 0 {
		return
	}
	writeLine(prompt, constant.PersonaRulesHeader)
	for _, rule := range p.Rules {
		writeLine(prompt, fmt.Sprintf(constant.PersonaRuleLineFormat, rule))
	}
}

func writeLine(prompt *strings.Builder, line string) {
	if prompt.Len() > 0 {
		prompt.WriteString("\n")
	}
	prompt.WriteString(line)
}
