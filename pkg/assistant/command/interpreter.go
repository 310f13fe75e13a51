package command

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"jarvina-be/internal/constant"
	"jarvina-be/pkg/assistant/normalize"
)

type Kind string

const (
	KindNone         Kind = ""
	KindClearHistory Kind = "clear_history"
	KindClearNotes   Kind = "clear_notes"
	KindSaveNote     Kind = "save_note"
	KindCurrentTime  Kind = "current_time"
)

// Outcome is either handled, carrying the reply text, or a pass-through.
type Outcome struct {
	Handled  bool
	Kind     Kind
	Response string
	// Note holds the saved note content for KindSaveNote.
	Note string
}

func handled(kind Kind, response string) Outcome {
	return Outcome{Handled: true, Kind: kind, Response: response}
}

// Store is the persistence the commands act on.
type Store interface {
	TruncateHistory(ctx context.Context) error
	TruncateNotes(ctx context.Context) error
	SaveNote(ctx context.Context, content string) error
}

// Input is one utterance in both raw and normalized form.
type Input struct {
	Raw        string
	Normalized string
}

// Handler returns a pass-through Outcome when the input is not its command.
type Handler func(ctx context.Context, in Input) (Outcome, error)

// Interpreter runs its handlers in order and stops at the first one that
// handles the input.
type Interpreter struct {
	handlers []Handler
}

// NewInterpreter wires the built-in commands in priority order:
// clear history, clear notes, save:, current time.
func NewInterpreter(store Store, clock func() time.Time) *Interpreter {
	if clock == nil {
		clock = time.Now
	}
	return &Interpreter{
		handlers: []Handler{
			clearHistory(store),
			clearNotes(store),
			saveNote(store),
			currentTime(clock),
		},
	}
}

func (i *Interpreter) Interpret(ctx context.Context, raw string) (Outcome, error) {
	in := Input{Raw: raw, Normalized: normalize.Text(raw)}
	for _, h := range i.handlers {
		out, err := h(ctx, in)
		if err != nil {
			return Outcome{}, err
		}
		if out.Handled {
			return out, nil
		}
	}
	return Outcome{}, nil
}

func clearHistory(store Store) Handler {
	return func(ctx context.Context, in Input) (Outcome, error) {
		if in.Normalized != constant.CommandClearHistory {
			return Outcome{}, nil
		}
		if err := store.TruncateHistory(ctx); err != nil {
			return Outcome{}, fmt.Errorf("clear history: %w", err)
		}
		return handled(KindClearHistory, constant.ClearHistoryConfirmation), nil
	}
}

func clearNotes(store Store) Handler {
	return func(ctx context.Context, in Input) (Outcome, error) {
		if in.Normalized != constant.CommandClearNotes {
			return Outcome{}, nil
		}
		if err := store.TruncateNotes(ctx); err != nil {
			return Outcome{}, fmt.Errorf("clear notes: %w", err)
		}
		return handled(KindClearNotes, constant.ClearNotesConfirmation), nil
	}
}

// saveNote matches the prefix case-sensitively on the raw text; only
// leading whitespace is ignored.
func saveNote(store Store) Handler {
	return func(ctx context.Context, in Input) (Outcome, error) {
		raw := strings.TrimLeftFunc(in.Raw, unicode.IsSpace)
		if !strings.HasPrefix(raw, constant.CommandSavePrefix) {
			return Outcome{}, nil
		}

		content := strings.TrimSpace(strings.TrimPrefix(raw, constant.CommandSavePrefix))
		if content == "" {
			return handled(KindSaveNote, constant.EmptyNoteGuidance), nil
		}

		if err := store.SaveNote(ctx, content); err != nil {
			return Outcome{}, fmt.Errorf("save note: %w", err)
		}

		out := handled(KindSaveNote, fmt.Sprintf(constant.NoteSavedFormat, content))
		out.Note = content
		return out, nil
	}
}

func currentTime(clock func() time.Time) Handler {
	return func(ctx context.Context, in Input) (Outcome, error) {
		for _, trigger := range constant.CurrentTimeTriggers {
			if strings.Contains(in.Normalized, trigger) {
				now := clock().Format(constant.CurrentTimeLayout)
				return handled(KindCurrentTime, fmt.Sprintf(constant.CurrentTimeFormat, now)), nil
			}
		}
		return Outcome{}, nil
	}
}
