// Package geom holds the light-participating primitives: straight segments and
// circular arcs, each tagged with a material and a handle to its owner.
//
// Primitives are plain values. The scene owns world objects; a primitive only
// carries a Handle that indexes the scene's object table.
package geom

// Material is a bit set describing how a primitive interacts with light.
type Material uint8

const (
	Opaque     Material = 1 << iota // blocks light
	Reflective                      // mirrors the ray about the surface normal
	Refractive                      // bends the ray through glass (arcs only)
	Receiver                        // charges the owning receiver
	Trigger                         // alerts the owning enemy
)

// Kind is the single interaction branch a material resolves to.
type Kind uint8

const (
	KindAbsorb Kind = iota
	KindReflect
	KindRefract
	KindReceive
	KindTrigger
)

// String returns the branch name.
func (k Kind) String() string {
	switch k {
	case KindAbsorb:
		return "absorb"
	case KindReflect:
		return "reflect"
	case KindRefract:
		return "refract"
	case KindReceive:
		return "receive"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Has reports whether every flag in f is set.
func (m Material) Has(f Material) bool {
	return m&f == f
}

// Kind resolves the flags to one interaction branch.
// Priority: reflective, receiver, trigger, refractive, then absorb.
func (m Material) Kind() Kind {
	switch {
	case m.Has(Reflective):
		return KindReflect
	case m.Has(Receiver):
		return KindReceive
	case m.Has(Trigger):
		return KindTrigger
	case m.Has(Refractive):
		return KindRefract
	default:
		return KindAbsorb
	}
}

// Handle is a non-owning reference to a world object: an index into the
// scene's object table. NoOwner marks free-standing primitives.
type Handle int

// NoOwner is the handle of a primitive that belongs to no object.
const NoOwner Handle = -1

// Valid reports whether the handle refers to an object.
func (h Handle) Valid() bool {
	return h >= 0
}
