package prefs

// Phase is the mount state of a Gate.
type Phase int

const (
	// Unresolved: the persisted value is not yet known to the renderer.
	Unresolved Phase = iota
	// Resolved: the value is known and may drive visual output.
	Resolved
)

func (p Phase) String() string {
	if p == Resolved {
		return "resolved"
	}
	return "unresolved"
}

// Gate guards value-dependent rendering. A zero Gate is Unresolved; Mount
// moves it to Resolved exactly once and nothing moves it back, so a
// resolved gate always carries a value.
type Gate[T any] struct {
	phase Phase
	value T
}

// Mounted returns a gate already resolved to v.
func Mounted[T any](v T) Gate[T] {
	return Gate[T]{phase: Resolved, value: v}
}

// Mount resolves the gate to v. It reports whether this call performed the
// transition; later calls are ignored.
func (g *Gate[T]) Mount(v T) bool {
	if g.phase == Resolved {
		return false
	}
	g.phase = Resolved
	g.value = v
	return true
}

// Update replaces the value of a resolved gate. Unresolved gates stay
// unresolved and Update reports false.
func (g *Gate[T]) Update(v T) bool {
	if g.phase != Resolved {
		return false
	}
	g.value = v
	return true
}

// Get returns the value and whether the gate is resolved.
func (g Gate[T]) Get() (T, bool) {
	return g.value, g.phase == Resolved
}

func (g Gate[T]) Phase() Phase {
	return g.phase
}
