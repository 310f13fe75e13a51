package reply

import "jarvina-be/pkg/assistant/normalize"

// Entry is one custom reply as written in the memory document.
type Entry struct {
	Response string   `json:"response" yaml:"response"`
	Phrases  []string `json:"phrases" yaml:"phrases"`
}

// Table maps normalized phrases to canned responses. It is built once and
// never mutated, so it is safe for concurrent readers.
type Table struct {
	replies map[string]string
}

// NewTable normalizes every phrase of every entry into a key. Later entries
// overwrite earlier ones on key collision. Entries without a response or
// without phrases are skipped.
func NewTable(entries []Entry) *Table {
	replies := make(map[string]string)
	for _, entry := range entries {
		if entry.Response == "" || len(entry.Phrases) == 0 {
			continue
		}
		for _, phrase := range entry.Phrases {
			replies[normalize.Text(phrase)] = entry.Response
		}
	}
	return &Table{replies: replies}
}

// Match looks up already-normalized text.
func (t *Table) Match(normalized string) (string, bool) {
	if t == nil || normalized == "" {
		return "", false
	}
	response, ok := t.replies[normalized]
	return response, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.replies)
}
