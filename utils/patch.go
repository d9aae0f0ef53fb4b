package utils

import "encoding/json"

// Patch is a three-state partial-update field. A missing JSON key leaves the
// stored value unchanged, an explicit null clears it, and a value sets it.
// Collapsing these to a pointer loses the unchanged/cleared distinction, so
// edit payloads carry Patch fields instead.
type Patch[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// SetPatch returns a Patch carrying a value.
func SetPatch[T any](value T) Patch[T] {
	return Patch[T]{Present: true, Value: value}
}

// NullPatch returns a Patch that clears the field.
func NullPatch[T any]() Patch[T] {
	return Patch[T]{Present: true, Null: true}
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Present = true
	if string(data) == "null" {
		p.Null = true
		var zero T
		p.Value = zero
		return nil
	}
	return json.Unmarshal(data, &p.Value)
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if !p.Present || p.Null {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Apply resolves the patch against the currently stored value.
func (p Patch[T]) Apply(current T) T {
	if !p.Present {
		return current
	}
	if p.Null {
		var zero T
		return zero
	}
	return p.Value
}

// IsSet reports whether the patch carries a non-null value.
func (p Patch[T]) IsSet() bool {
	return p.Present && !p.Null
}
