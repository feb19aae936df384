// FILE: appconf/help.go
package appconf

import (
	"fmt"
	"sort"
	"strings"
)

const flagDescription = `Flags are command-line arguments passed as '--<flag>'.
They take no parameters and merge a pre-built configuration patch,
typically toggling booleans or enabling modes that set several
options together.`

const aliasDescription = `Aliases are abbreviated names for commonly set parameters. They are
given in the same name=value form, where the name stands in for the
full Component.setting path it targets.`

const keyvalueDescription = `Parameters are set from command-line arguments of the form
Component.setting=value. The value is a literal: a number, string,
boolean, or a bracketed sequence or mapping.`

// printDescription writes the application description.
func (a *App) printDescription() {
	fmt.Fprintln(a.out, a.description)
	fmt.Fprintln(a.out)
}

// printVersion writes the version string.
func (a *App) printVersion() {
	fmt.Fprintln(a.out, a.version)
}

// printHelp writes the flag and alias sections, and with all set, the
// per-component trait listing as well.
func (a *App) printHelp(all bool) {
	a.printFlagHelp()
	a.printAliasHelp()

	if !all {
		fmt.Fprintln(a.out, "To see help for every configurable setting, use `--help-all`.")
		fmt.Fprintln(a.out)
		return
	}

	fmt.Fprintln(a.out, "Component parameters")
	fmt.Fprintln(a.out, "--------------------")
	fmt.Fprintln(a.out, keyvalueDescription)
	fmt.Fprintln(a.out)

	for _, c := range a.Components() {
		a.printComponentHelp(c)
	}
}

func (a *App) printFlagHelp() {
	if len(a.flags) == 0 {
		return
	}

	fmt.Fprintln(a.out, "Flags")
	fmt.Fprintln(a.out, "-----")
	fmt.Fprintln(a.out, flagDescription)
	fmt.Fprintln(a.out)

	for _, name := range sortedKeys(a.flags) {
		fmt.Fprintf(a.out, "--%s\n", name)
		fmt.Fprintln(a.out, indent(a.flags[name].Help))
	}
	fmt.Fprintln(a.out)
}

func (a *App) printAliasHelp() {
	if len(a.aliases) == 0 {
		return
	}

	fmt.Fprintln(a.out, "Aliases")
	fmt.Fprintln(a.out, "-------")
	fmt.Fprintln(a.out, aliasDescription)
	fmt.Fprintln(a.out)

	for _, alias := range sortedKeys(a.aliases) {
		target := a.aliases[alias]
		fmt.Fprintf(a.out, "%s (%s)\n", alias, target)
		if tr, err := a.traits.lookup(target); err == nil && tr.Help != "" {
			fmt.Fprintln(a.out, indent(tr.Help))
		}
	}
	fmt.Fprintln(a.out)
}

func (a *App) printComponentHelp(c Component) {
	name := c.ComponentName()
	traits := c.Traits()

	var configurable []Trait
	for _, tr := range traits {
		if tr.Configurable {
			configurable = append(configurable, tr)
		}
	}
	if len(configurable) == 0 {
		return
	}
	sort.Slice(configurable, func(i, j int) bool {
		return configurable[i].Name < configurable[j].Name
	})

	fmt.Fprintf(a.out, "%s options\n", name)
	for _, tr := range configurable {
		fmt.Fprintf(a.out, "  %s.%s (default: %v)\n", name, tr.Name, tr.Default)
		if tr.Help != "" {
			fmt.Fprintln(a.out, indent(indent(tr.Help)))
		}
	}
	fmt.Fprintln(a.out)
}

// indent prefixes every line of s with four spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
