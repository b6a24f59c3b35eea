package tutor

// Author identifies who produced a transcript entry.
type Author int

const (
	AuthorUser Author = iota
	AuthorAssistant
)

// Entry is a single chat message. Entries are immutable after append.
type Entry struct {
	Author Author
	Text   string
}

// Transcript is the append-only ordered log of chat entries and the
// single source of truth for conversation history. Entries are totally
// ordered by append time; nothing is ever mutated, removed, or
// deduplicated. Retries append new entries rather than editing history.
type Transcript struct {
	entries []Entry
	busy    bool
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AppendUser appends a user-authored entry. Never fails.
func (t *Transcript) AppendUser(text string) {
	t.entries = append(t.entries, Entry{Author: AuthorUser, Text: text})
}

// AppendAssistant appends an assistant-authored entry. Never fails.
func (t *Transcript) AppendAssistant(text string) {
	t.entries = append(t.entries, Entry{Author: AuthorAssistant, Text: text})
}

// Messages returns a snapshot of the full ordered sequence. The returned
// slice is a copy; it stays valid across later appends.
func (t *Transcript) Messages() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int { return len(t.entries) }

// SetBusy toggles the "assistant is responding" indicator. The indicator
// drives a transient placeholder in the view and is never persisted as
// a real entry.
func (t *Transcript) SetBusy(busy bool) { t.busy = busy }

// Busy reports whether an assistant-producing action is in flight.
func (t *Transcript) Busy() bool { return t.busy }
