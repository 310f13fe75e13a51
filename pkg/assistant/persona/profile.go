package persona

import "jarvina-be/internal/constant"

type VoiceTone struct {
	Style string `json:"style" yaml:"style"`
}

type ContextualDefaults struct {
	UserName   string `json:"user_name" yaml:"user_name"`
	Motivation string `json:"motivation" yaml:"motivation"`
}

// Profile is the assistant's configured identity. A nil *Profile means no
// persona was configured.
type Profile struct {
	Name               string              `json:"name" yaml:"name"`
	Mode               string              `json:"mode" yaml:"mode"`
	Personalities      []string            `json:"personalities" yaml:"personalities"`
	VoiceTone          *VoiceTone          `json:"voice_tone" yaml:"voice_tone"`
	Rules              []string            `json:"jarvina_rules" yaml:"jarvina_rules"`
	ContextualDefaults *ContextualDefaults `json:"contextual_defaults" yaml:"contextual_defaults"`
}

// Resolved returns a copy with every missing field replaced by its default.
// An explicitly empty personalities list stays empty.
func (p *Profile) Resolved() Profile {
	r := Profile{
		Name:          orDefault(p.Name, constant.PersonaDefaultName),
		Mode:          orDefault(p.Mode, constant.PersonaDefaultMode),
		Personalities: p.Personalities,
		VoiceTone:     &VoiceTone{Style: constant.PersonaDefaultVoiceTone},
		Rules:         append([]string(nil), p.Rules...),
		ContextualDefaults: &ContextualDefaults{
			UserName:   constant.PersonaDefaultUserName,
			Motivation: constant.PersonaDefaultMotivation,
		},
	}

	if r.Personalities == nil {
		r.Personalities = constant.PersonaDefaultPersonalities
	}
	r.Personalities = append([]string(nil), r.Personalities...)

	if p.VoiceTone != nil && p.VoiceTone.Style != "" {
		r.VoiceTone.Style = p.VoiceTone.Style
	}
	if p.ContextualDefaults != nil {
		r.ContextualDefaults.UserName = orDefault(p.ContextualDefaults.UserName, constant.PersonaDefaultUserName)
		r.ContextualDefaults.Motivation = orDefault(p.ContextualDefaults.Motivation, constant.PersonaDefaultMotivation)
	}

	return r
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
