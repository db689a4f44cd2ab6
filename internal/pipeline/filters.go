package pipeline

import "sort"

// FilterState is the tri-state toggle attached to a tag or repository.
type FilterState int

const (
	Ignore FilterState = iota
	Include
	Exclude
)

func (s FilterState) String() string {
	switch s {
	case Include:
		return "Include"
	case Exclude:
		return "Exclude"
	default:
		return "Ignore"
	}
}

// Cycle advances s one step. Forward runs Ignore→Include→Exclude→Ignore;
// backward is the inverse.
func Cycle(s FilterState, forward bool) FilterState {
	if forward {
		switch s {
		case Ignore:
			return Include
		case Include:
			return Exclude
		default:
			return Ignore
		}
	}
	switch s {
	case Ignore:
		return Exclude
	case Exclude:
		return Include
	default:
		return Ignore
	}
}

// Filters maps a tag or repository name to its state. Missing keys are Ignore.
type Filters map[string]FilterState

// Get returns the state for key.
func (f Filters) Get(key string) FilterState {
	return f[key]
}

// Set stores state for key; Ignore removes the entry.
func (f Filters) Set(key string, state FilterState) {
	if state == Ignore {
		delete(f, key)
		return
	}
	f[key] = state
}

// Cycle advances key and returns its new state.
func (f Filters) Cycle(key string, forward bool) FilterState {
	next := Cycle(f.Get(key), forward)
	f.Set(key, next)
	return next
}

// Reset clears every entry.
func (f Filters) Reset() {
	for k := range f {
		delete(f, k)
	}
}

// Keys returns the sorted keys holding state.
func (f Filters) Keys(state FilterState) []string {
	var keys []string
	for k, v := range f {
		if v == state {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
