// FILE: appconf/trait.go
package appconf

import "fmt"

// Trait describes one named setting a component exposes: its default
// value, help text, whether it may be set from external sources, and
// an optional validator run against incoming values.
type Trait struct {
	Name         string
	Default      any
	Help         string
	Configurable bool
	Validate     func(value any) error
}

// Component is the registration capability every exposed component
// supplies at startup. The engine depends only on this interface; it
// never inspects the component's concrete type.
type Component interface {
	// ComponentName returns the name settings are addressed by, the
	// "Component" half of a "Component.setting" path.
	ComponentName() string

	// Traits returns the component's setting descriptors.
	Traits() []Trait
}

// traitIndex maps component name -> setting name -> descriptor for
// fast path resolution during CLI parsing and change diffing.
type traitIndex map[string]map[string]Trait

func buildTraitIndex(components []Component) (traitIndex, error) {
	idx := make(traitIndex, len(components))
	for _, c := range components {
		name := c.ComponentName()
		if name == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("component %T has an empty name", c)}
		}
		if _, dup := idx[name]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("component %q registered twice", name)}
		}
		traits := make(map[string]Trait)
		for _, tr := range c.Traits() {
			if tr.Name == "" {
				return nil, &ConfigError{Reason: fmt.Sprintf("component %q declares a trait with an empty name", name)}
			}
			if _, dup := traits[tr.Name]; dup {
				return nil, &ConfigError{Reason: fmt.Sprintf("component %q declares trait %q twice", name, tr.Name)}
			}
			traits[tr.Name] = tr
		}
		idx[name] = traits
	}
	return idx, nil
}

// lookup returns the descriptor for a fully-qualified path if the
// component is exposed and the setting is externally configurable.
func (idx traitIndex) lookup(path string) (Trait, error) {
	component, setting, ok := splitPath(path)
	if !ok {
		return Trait{}, &UnknownSettingError{Path: path}
	}
	traits, ok := idx[component]
	if !ok {
		return Trait{}, &UnknownSettingError{Path: path}
	}
	tr, ok := traits[setting]
	if !ok || !tr.Configurable {
		return Trait{}, &UnknownSettingError{Path: path}
	}
	return tr, nil
}

// defaultFor returns the registered default for a path, if any.
func (idx traitIndex) defaultFor(component, setting string) (any, bool) {
	traits, ok := idx[component]
	if !ok {
		return nil, false
	}
	tr, ok := traits[setting]
	if !ok {
		return nil, false
	}
	return tr.Default, true
}
