// FILE: appconf/builder.go
package appconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ValidatorFunc validates the fully loaded application. It runs at the
// end of Build, after every configured source has been merged.
type ValidatorFunc func(a *App) error

// Builder provides a fluent interface for assembling the application
// singleton: identity, exposed components, alias and flag tables, and
// the load sequence (config file, then command line).
type Builder struct {
	name        string
	description string
	version     string

	components []Component
	aliases    AliasTable
	flags      FlagTable

	configFile string
	searchPath []string
	args       []string
	parseArgs  bool

	out        io.Writer
	exit       func(int)
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a builder with the default identity and the
// standard "log-level" alias.
func NewBuilder() *Builder {
	return &Builder{
		name:        "application",
		description: "This is an application.",
		version:     "0.0",
		aliases:     AliasTable{"log-level": appComponentName + "." + logLevelSetting},
	}
}

// WithName sets the application name shown in help output.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithDescription sets the description printed at the top of help.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithVersion sets the version string printed for --version.
func (b *Builder) WithVersion(version string) *Builder {
	b.version = version
	return b
}

// WithComponents appends components whose configurable traits are
// exposed on the command line and in configuration files. The
// application itself is always exposed first; these follow in the
// order given.
func (b *Builder) WithComponents(components ...Component) *Builder {
	b.components = append(b.components, components...)
	return b
}

// WithAliases merges alias entries into the table. Later calls win on
// duplicate alias names.
func (b *Builder) WithAliases(aliases AliasTable) *Builder {
	if b.aliases == nil {
		b.aliases = make(AliasTable)
	}
	for name, target := range aliases {
		b.aliases[name] = target
	}
	return b
}

// WithFlags merges flag entries into the table. Later calls win on
// duplicate flag names.
func (b *Builder) WithFlags(flags FlagTable) *Builder {
	if b.flags == nil {
		b.flags = make(FlagTable)
	}
	for name, f := range flags {
		b.flags[name] = f
	}
	return b
}

// WithConfigFile requests a file load before command-line parsing.
func (b *Builder) WithConfigFile(filename string) *Builder {
	b.configFile = filename
	return b
}

// WithSearchPath sets the directories searched for the config file.
func (b *Builder) WithSearchPath(dirs ...string) *Builder {
	b.searchPath = append(b.searchPath, dirs...)
	return b
}

// WithArgs sets the command-line tokens to parse during Build. Pass
// os.Args[1:] for the real process arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	b.parseArgs = true
	return b
}

// WithOutput redirects help and version text. Defaults to stdout.
func (b *Builder) WithOutput(w io.Writer) *Builder {
	b.out = w
	return b
}

// WithExit replaces the process-exit collaborator. Defaults to
// os.Exit; tests inject a recorder here.
func (b *Builder) WithExit(fn func(int)) *Builder {
	b.exit = fn
	return b
}

// WithValidator adds a validation function run at the end of Build.
// Multiple validators execute in the order added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build constructs the application singleton and runs the load
// sequence: flag-table validation first, then alias validation, then
// the config file (if requested), then the command line. If an
// application already exists, Build returns it; re-initializing with
// a different name is a ConfigError.
func (b *Builder) Build() (*App, error) {
	if b.err != nil {
		return nil, b.err
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		if b.name != instance.name {
			return nil, &ConfigError{Reason: fmt.Sprintf(
				"application %q already initialized; cannot re-initialize as %q",
				instance.name, b.name)}
		}
		return instance, nil
	}

	app, err := newApp(b)
	if err != nil {
		return nil, err
	}

	if b.configFile != "" {
		if err := app.LoadConfigFile(b.configFile); err != nil {
			// A file that simply does not exist is not fatal here;
			// the application proceeds on defaults. Parse and format
			// failures abort.
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
	}
	if b.parseArgs {
		if err := app.ParseCommandLine(b.args); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(app); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	instance = app
	return app, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *App {
	app, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("appconf: application build failed: %v", err))
	}
	return app
}

// newApp constructs and validates an App without touching the
// singleton slot. The flag table is checked before any other
// configuration step because a malformed table makes all later CLI
// parsing unsafe.
func newApp(b *Builder) (*App, error) {
	if err := b.flags.validate(); err != nil {
		return nil, err
	}

	app := &App{
		name:        b.name,
		description: b.description,
		version:     b.version,
		state:       StateConstructed,
		aliases:     make(AliasTable, len(b.aliases)),
		flags:       make(FlagTable, len(b.flags)),
		canonical:   NewTree(),
		logLevel:    new(slog.LevelVar),
		searchPath:  b.searchPath,
		out:         b.out,
		exit:        b.exit,
	}
	if app.out == nil {
		app.out = os.Stdout
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	for name, target := range b.aliases {
		app.aliases[name] = target
	}
	for name, f := range b.flags {
		app.flags[name] = f
	}

	// Self-register at index 0 so Application.* settings are always
	// reachable.
	app.components = append([]Component{app}, b.components...)

	traits, err := buildTraitIndex(app.components)
	if err != nil {
		return nil, err
	}
	app.traits = traits

	for alias, target := range app.aliases {
		if _, err := traits.lookup(target); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf(
				"alias %q targets %q, which is not an exposed configurable setting", alias, target)}
		}
	}

	app.logLevel.Set(slogLevel(30))
	return app, nil
}
