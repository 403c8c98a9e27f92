package history

import "slices"

// Log is the in-memory copy of the append-only attempt history,
// ordered oldest first.
type Log struct {
	entries []Entry
}

// NewLog wraps existing entries loaded from the store.
func NewLog(entries []Entry) *Log {
	return &Log{entries: slices.Clone(entries)}
}

// Append adds an entry to the end of the log.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry, or a zero Entry when empty.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
