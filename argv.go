// FILE: appconf/argv.go
package appconf

import "strings"

// ArgvLoader builds a configuration fragment from an ordered list of
// command-line tokens. Two token shapes are accepted:
//
//	--name            a flag; its canned patch is merged in
//	name=value        an assignment; name is an alias or a full
//	--name=value      "Component.setting" path, value is a literal
//
// Token order is precedence: a later token of either kind overrides an
// earlier one touching the same path. Anything else is a parse error,
// never silently skipped.
type ArgvLoader struct {
	args     []string
	resolver *aliasFlagResolver
}

// NewArgvLoader returns a loader over args. The alias and flag tables
// and the trait index must already be validated; the application's
// builder does this before any loader is constructed.
func NewArgvLoader(args []string, aliases AliasTable, flags FlagTable, traits traitIndex) *ArgvLoader {
	return &ArgvLoader{
		args: args,
		resolver: &aliasFlagResolver{
			aliases: aliases,
			flags:   flags,
			traits:  traits,
		},
	}
}

// Load parses the token list into a fragment.
func (l *ArgvLoader) Load() (Tree, error) {
	frag := NewTree()

	for _, token := range l.args {
		switch {
		case strings.HasPrefix(token, "--") && !strings.Contains(token, "="):
			patch, ok := l.resolver.flagPatch(strings.TrimPrefix(token, "--"))
			if !ok {
				return nil, &ParseError{Token: token}
			}
			frag = Merge(frag, patch)

		case strings.Contains(token, "="):
			name, raw, _ := strings.Cut(strings.TrimPrefix(token, "--"), "=")
			if name == "" || strings.HasPrefix(name, "-") {
				return nil, &ParseError{Token: token}
			}

			path, tr, err := l.resolver.resolvePath(name)
			if err != nil {
				return nil, err
			}

			value, err := evalLiteral(raw)
			if err != nil {
				return nil, &ValueParseError{Token: token, Err: err}
			}
			if tr.Validate != nil {
				if err := tr.Validate(value); err != nil {
					return nil, &ValueParseError{Token: token, Err: err}
				}
			}

			component, setting, _ := splitPath(path)
			frag.Set(component, setting, value)

		default:
			return nil, &ParseError{Token: token}
		}
	}

	return frag, nil
}

// aliasFlagResolver maps short tokens to canned patches (flags) or
// fully-qualified paths (aliases). The two occupy disjoint namespaces:
// a flag token never carries "=", an assignment always does.
type aliasFlagResolver struct {
	aliases AliasTable
	flags   FlagTable
	traits  traitIndex
}

// flagPatch returns the patch for a flag token.
func (r *aliasFlagResolver) flagPatch(name string) (Tree, bool) {
	f, ok := r.flags[name]
	if !ok {
		return nil, false
	}
	return f.patchTree(), true
}

// resolvePath expands an alias into its target path, or verifies that
// name is already a fully-qualified path to an exposed, configurable
// setting. It returns the matching trait descriptor alongside the
// path so callers can validate values and render help.
func (r *aliasFlagResolver) resolvePath(name string) (string, Trait, error) {
	path := name
	if target, ok := r.aliases[name]; ok {
		path = target
	}

	tr, err := r.traits.lookup(path)
	if err != nil {
		return "", Trait{}, err
	}
	return path, tr, nil
}
