package conversation

import (
	"context"
	"errors"
	"fmt"

	"jarvina-be/internal/constant"
	"jarvina-be/pkg/llm"
)

var ErrUnknownRole = errors.New("unknown message role")

// SystemContext produces the system context text for one request.
type SystemContext interface {
	Build(ctx context.Context) string
}

// Assembler turns history plus the new utterance into the turn sequence the
// model consumes. Every sequence starts with one synthetic user/model pair
// that carries the system context.
type Assembler struct {
	system SystemContext
}

func NewAssembler(system SystemContext) *Assembler {
	return &Assembler{system: system}
}

// Assemble maps "assistant" and "model" to model turns, keeps "user",
// skips "system" and empty turns, and rejects any other role. The utterance
// is appended as the last user turn unless it is empty or equal to the text
// of the last history turn.
func (a *Assembler) Assemble(ctx context.Context, history []llm.Message, utterance string) ([]llm.Message, error) {
	turns := make([]llm.Message, 0, len(history)+3)
	turns = append(turns,
		llm.Message{Role: llm.RoleUser, Content: constant.InstructionsMarker + a.system.Build(ctx)},
		llm.Message{Role: llm.RoleModel, Content: constant.InstructionsAcknowledgement},
	)
	primed := len(turns)

	for i, msg := range history {
		role, keep, err := mapRole(msg.Role)
		if err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
		if !keep || msg.Content == "" {
			continue
		}
		turns = append(turns, llm.Message{Role: role, Content: msg.Content})
	}

	if utterance == "" {
		return turns, nil
	}
	if len(turns) > primed && turns[len(turns)-1].Content == utterance {
		return turns, nil
	}

	return append(turns, llm.Message{Role: llm.RoleUser, Content: utterance}), nil
}

func mapRole(role string) (string, bool, error) {
	switch role {
	case llm.RoleUser:
		return llm.RoleUser, true, nil
	case llm.RoleAssistant, llm.RoleModel:
		return llm.RoleModel, true, nil
	case llm.RoleSystem:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}
