package modules

import "sort"

// Entry is one imported module.
type Entry struct {
	Name string
	Kind Kind
}

// Std reports whether the entry was imported std-qualified.
func (e Entry) Std() bool {
	return e.Kind != KindSource
}

type ledgerKey struct {
	name string
	std  bool
}

// Ledger records the modules an interpreter has imported. Bare imports (user
// source files) and std-qualified imports are tracked under separate keys.
type Ledger struct {
	entries map[ledgerKey]Entry
	order   []ledgerKey
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[ledgerKey]Entry)}
}

// Imported reports whether name was imported bare (std=false) or
// std-qualified (std=true).
func (l *Ledger) Imported(name string, std bool) (Entry, bool) {
	e, ok := l.entries[ledgerKey{name: name, std: std}]
	return e, ok
}

// Record adds name; recording an existing key is a no-op.
func (l *Ledger) Record(name string, kind Kind) {
	key := ledgerKey{name: name, std: kind != KindSource}
	if _, ok := l.entries[key]; ok {
		return
	}
	l.entries[key] = Entry{Name: name, Kind: kind}
	l.order = append(l.order, key)
}

// Entries returns the imports in the order they happened.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.entries[key])
	}
	return out
}

// Names returns the imported names in sorted order, std-qualified ones
// prefixed with "Std ".
func (l *Ledger) Names() []string {
	out := make([]string, 0, len(l.order))
	for _, key := range l.order {
		if key.std {
			out = append(out, "Std "+key.name)
			continue
		}
		out = append(out, key.name)
	}
	sort.Strings(out)
	return out
}
