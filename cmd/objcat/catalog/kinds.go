package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrKindConflict = errors.New("kind already registered with another type")

// builtinKinds are the object kinds instruction sources may name when
// starting an object. Each kind only selects an ObjectType.
var builtinKinds = map[string]ObjectType{
	"ammo":      Prop,
	"item":      Prop,
	"pile":      Prop,
	"plant":     Prop,
	"prop":      Prop,
	"rock":      Prop,
	"shield":    Prop,
	"tree":      Prop,
	"weapon":    Prop,
	"character": Character,
	"creature":  Character,
	"human":     Character,
}

// Kinds maps kind names used by instruction sources to object types.
type Kinds struct {
	types map[string]ObjectType
}

// NewKinds returns a registry holding the built-in kinds.
func NewKinds() *Kinds {
	k := &Kinds{types: make(map[string]ObjectType, len(builtinKinds))}
	for name, t := range builtinKinds {
		k.types[name] = t
	}
	return k
}

// Register adds a kind. Registering an existing kind again is allowed only
// with the same type.
func (k *Kinds) Register(name string, t ObjectType) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("register kind: empty name")
	}
	if !t.Valid() {
		return fmt.Errorf("register kind %q: %w: %d", name, ErrInvalidType, int(t))
	}
	if prev, exists := k.types[name]; exists && prev != t {
		return fmt.Errorf("register kind %q as %s: %w (%s)", name, t, ErrKindConflict, prev)
	}
	k.types[name] = t
	return nil
}

// Lookup returns the object type for a kind name.
func (k *Kinds) Lookup(name string) (ObjectType, bool) {
	t, ok := k.types[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Resolve is Lookup with a descriptive error listing the known kinds.
func (k *Kinds) Resolve(name string) (ObjectType, error) {
	if t, ok := k.Lookup(name); ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown kind %q (known: %s)", name, strings.Join(k.Names(), ", "))
}

// Names returns the registered kind names in ascending order.
func (k *Kinds) Names() []string {
	names := make([]string, 0, len(k.types))
	for name := range k.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
