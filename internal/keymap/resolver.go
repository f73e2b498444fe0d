package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
	order    []Binding
}

// NewResolver creates a resolver from bindings. When two bindings claim
// the same key, the first wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		order:    bindings,
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.bindings[key]; taken {
				continue
			}
			r.bindings[key] = b.Action
			r.byAction[b.Action] = append(r.byAction[b.Action], key)
		}
	}
	return r
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpEntry is one "key description" pair of a help line.
type HelpEntry struct {
	Key         string
	Description string
}

// Help returns one entry per binding, showing its first key. With full
// set, every key of the binding is listed.
func (r *Resolver) Help(full bool) []HelpEntry {
	entries := make([]HelpEntry, 0, len(r.order))
	for _, b := range r.order {
		keys := r.byAction[b.Action]
		if len(keys) == 0 {
			continue
		}
		if !full {
			keys = keys[:1]
		}
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = KeyName(k)
		}
		entries = append(entries, HelpEntry{Key: strings.Join(names, "/"), Description: b.Description})
	}
	return entries
}
