// Package testlog captures log output in memory so tests can assert on the
// messages and fields a component emitted.
package testlog

import (
	"sync"

	"textbook-logistics/internal/logx"
)

// Entry is one captured log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the last value logged under key.
func (e Entry) Field(key string) (any, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// Recorder is safe for use from the goroutines a test starts.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return bound{r: r}
}

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the first entry with msg.
func (r *Recorder) Find(msg string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether msg was logged at level. An empty level matches any.
func (r *Recorder) Has(level, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Msg == msg && (level == "" || e.Level == level) {
			return true
		}
	}
	return false
}

// Messages lists logged messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Msg)
	}
	return out
}

func (r *Recorder) add(level, msg string, base, fields []logx.Field) {
	all := make([]logx.Field, 0, len(base)+len(fields))
	all = append(all, base...)
	all = append(all, fields...)

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: all})
	r.mu.Unlock()
}

type bound struct {
	r    *Recorder
	base []logx.Field
}

func (b bound) Debug(msg string, f ...logx.Field) { b.r.add("debug", msg, b.base, f) }
func (b bound) Info(msg string, f ...logx.Field)  { b.r.add("info", msg, b.base, f) }
func (b bound) Warn(msg string, f ...logx.Field)  { b.r.add("warn", msg, b.base, f) }
func (b bound) Error(msg string, f ...logx.Field) { b.r.add("error", msg, b.base, f) }

func (b bound) With(f ...logx.Field) logx.Logger {
	base := make([]logx.Field, 0, len(b.base)+len(f))
	base = append(base, b.base...)
	base = append(base, f...)
	return bound{r: b.r, base: base}
}

func (b bound) Sync() error { return nil }

var _ logx.Logger = bound{}
