// FILE: appconf/flag.go
package appconf

import "fmt"

// AliasTable maps short command-line tokens to fully-qualified
// "Component.setting" paths. Every target must name an exposed
// component and a configurable setting; this is checked when the
// application is built, not when the alias is first used.
type AliasTable map[string]string

// Flag is one entry of a FlagTable: a pre-built configuration patch
// applied when the corresponding "--name" token is given, plus the
// help text shown for it.
type Flag struct {
	Patch map[string]any
	Help  string
}

// FlagTable maps flag tokens (without the leading "--") to patches.
type FlagTable map[string]Flag

// validate checks structural well-formedness of every entry: the patch
// must be a mapping of mappings and the help text must be non-empty.
// A malformed table makes all later CLI parsing unsafe, so violations
// are fatal construction-time errors.
func (ft FlagTable) validate() error {
	for name, f := range ft {
		if name == "" {
			return &ConfigError{Reason: "flag table contains an empty flag name"}
		}
		if f.Help == "" {
			return &ConfigError{Reason: fmt.Sprintf("flag %q has no help text", name)}
		}
		if f.Patch == nil {
			return &ConfigError{Reason: fmt.Sprintf("flag %q has no patch", name)}
		}
		if _, err := TreeFromMap(f.Patch); err != nil {
			return &ConfigError{Reason: fmt.Sprintf("flag %q has a malformed patch: %v", name, err)}
		}
	}
	return nil
}

// patchTree converts a validated entry's patch into a Tree fragment.
func (f Flag) patchTree() Tree {
	t, err := TreeFromMap(f.Patch)
	if err != nil {
		// validate ran at construction; a malformed patch cannot
		// reach this point.
		panic(fmt.Sprintf("appconf: unvalidated flag patch: %v", err))
	}
	return t
}

// BoolFlag builds the conventional "--name" / "--no-name" pair that
// sets and unsets one boolean trait. path is the "Component.setting"
// target; the help strings default to "set path=true/false".
func BoolFlag(name, path, setHelp, unsetHelp string) FlagTable {
	component, setting, ok := splitPath(path)
	if !ok {
		panic(fmt.Sprintf("appconf: BoolFlag target %q is not a Component.setting path", path))
	}
	if setHelp == "" {
		setHelp = fmt.Sprintf("set %s=true", path)
	}
	if unsetHelp == "" {
		unsetHelp = fmt.Sprintf("set %s=false", path)
	}
	return FlagTable{
		name: {
			Patch: map[string]any{component: map[string]any{setting: true}},
			Help:  setHelp,
		},
		"no-" + name: {
			Patch: map[string]any{component: map[string]any{setting: false}},
			Help:  unsetHelp,
		},
	}
}

// MergeFlagTables combines several flag tables into one. Later tables
// win on duplicate names, mirroring Tree merge bias.
func MergeFlagTables(tables ...FlagTable) FlagTable {
	out := make(FlagTable)
	for _, ft := range tables {
		for name, f := range ft {
			out[name] = f
		}
	}
	return out
}
