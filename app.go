// FILE: appconf/app.go
package appconf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// State tracks the application through its process lifetime.
type State int

const (
	StateConstructed State = iota
	StateConfigured
	StateRunning
	StateExited
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Change describes one effective configuration change: the resolved
// value of Component.Setting went from Old to New.
type Change struct {
	Component string
	Setting   string
	Old       any
	New       any
}

// The application's own settings are always addressed under this
// component name, regardless of the application's display name.
const (
	appComponentName = "Application"
	logLevelSetting  = "log_level"
)

// App is the orchestrating singleton. It owns the canonical Tree, the
// ordered list of exposed components (itself always first), the alias
// and flag tables, and the reactive log-level projection. Exactly one
// live instance exists per process; see Builder.Build and Instance.
type App struct {
	name        string
	description string
	version     string

	mu         sync.RWMutex
	state      State
	exitStatus int

	components []Component
	traits     traitIndex

	aliases AliasTable
	flags   FlagTable

	canonical Tree

	observers []func(Change)

	logLevel   *slog.LevelVar
	searchPath []string

	out  io.Writer
	exit func(int)
}

var (
	instanceMu sync.Mutex
	instance   *App
)

// Instance returns the live application, creating a bare default one
// if none has been built yet.
func Instance() *App {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		app, err := newApp(NewBuilder())
		if err != nil {
			// A builder with no user-supplied tables cannot fail
			// validation.
			panic(fmt.Sprintf("appconf: default application construction failed: %v", err))
		}
		instance = app
	}
	return instance
}

// Reset discards the singleton so a fresh application can be built.
// Intended for tests and for hosts that fully tear down between runs.
func Reset() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
}

// ComponentName implements Component. The application's settings are
// reachable as "Application.<setting>".
func (a *App) ComponentName() string { return appComponentName }

// Traits implements Component.
func (a *App) Traits() []Trait {
	return []Trait{{
		Name:         logLevelSetting,
		Default:      30,
		Help:         "Set the log level: 0, 10 (debug), 20 (info), 30 (warn), 40 (error), 50 (critical).",
		Configurable: true,
		Validate:     validateLogLevel,
	}}
}

func validateLogLevel(value any) error {
	n, err := toInt64(value)
	if err != nil {
		return fmt.Errorf("log level must be numeric: %w", err)
	}
	switch n {
	case 0, 10, 20, 30, 40, 50:
		return nil
	default:
		return fmt.Errorf("log level %d is not one of 0, 10, 20, 30, 40, 50", n)
	}
}

// slogLevel projects the numeric log level onto the slog scale.
func slogLevel(n int64) slog.Level {
	switch {
	case n <= 10:
		return slog.LevelDebug
	case n <= 20:
		return slog.LevelInfo
	case n <= 30:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Description returns the application description.
func (a *App) Description() string { return a.description }

// Version returns the application version string.
func (a *App) Version() string { return a.version }

// State returns the current lifecycle state.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// ExitStatus returns the status recorded when the application exited.
func (a *App) ExitStatus() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.exitStatus
}

// LogLevel returns the reactive log threshold. Hand it to a
// slog.HandlerOptions.Level; it is updated synchronously whenever the
// resolved Application.log_level setting changes.
func (a *App) LogLevel() *slog.LevelVar { return a.logLevel }

// Components returns the exposed components in registration order,
// the application itself first.
func (a *App) Components() []Component {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.components)
}

// Subscribe registers an observer invoked synchronously, once per
// effective change, after each canonical-tree swap.
func (a *App) Subscribe(fn func(Change)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// Config returns a deep copy of the canonical tree.
func (a *App) Config() Tree {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.canonical.Clone()
}

// Setting returns the resolved value for a "Component.setting" path:
// the canonical tree's value if one was loaded, otherwise the
// registered trait default.
func (a *App) Setting(path string) (any, bool) {
	component, setting, ok := splitPath(path)
	if !ok {
		return nil, false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if v, ok := a.canonical.Get(component, setting); ok {
		return copyValue(v), true
	}
	if d, ok := a.traits.defaultFor(component, setting); ok {
		return copyValue(d), true
	}
	return nil, false
}

// UpdateConfig merges a fragment into the canonical tree. The merge
// happens on a deep copy and the canonical tree is swapped only after
// it succeeds, so readers never observe a partially merged tree and a
// failed load leaves previously resolved state intact. Observers are
// notified for every setting whose resolved value differs from before;
// a log_level change updates the active threshold before any external
// observer runs.
func (a *App) UpdateConfig(fragment Tree) error {
	a.mu.Lock()
	if a.state == StateExited {
		a.mu.Unlock()
		return &ConfigError{Reason: "application has exited; configuration is frozen"}
	}

	old := a.canonical
	merged := Merge(old, fragment)
	changes := a.resolveChanges(old, merged)

	a.canonical = merged
	if a.state == StateConstructed {
		a.state = StateConfigured
	}
	observers := slices.Clone(a.observers)
	a.mu.Unlock()

	for _, ch := range changes {
		if ch.Component == appComponentName && ch.Setting == logLevelSetting {
			if n, err := toInt64(ch.New); err == nil {
				a.logLevel.Set(slogLevel(n))
			}
		}
		for _, fn := range observers {
			fn(ch)
		}
	}
	return nil
}

// resolveChanges computes the effective changes between two canonical
// trees, resolving absent settings through trait defaults so that
// loading a value equal to its default fires no notification. Caller
// holds the write lock.
func (a *App) resolveChanges(old, updated Tree) []Change {
	seen := make(map[string]bool)
	var changes []Change

	consider := func(component, setting string) {
		path := component + "." + setting
		if seen[path] {
			return
		}
		seen[path] = true

		oldVal, oldOK := old.Get(component, setting)
		newVal, newOK := updated.Get(component, setting)
		if !oldOK {
			oldVal, oldOK = a.traits.defaultFor(component, setting)
		}
		if !newOK {
			newVal, newOK = a.traits.defaultFor(component, setting)
		}
		if oldOK == newOK && reflect.DeepEqual(oldVal, newVal) {
			return
		}
		changes = append(changes, Change{
			Component: component,
			Setting:   setting,
			Old:       copyValue(oldVal),
			New:       copyValue(newVal),
		})
	}

	for component, settings := range updated {
		for setting := range settings {
			consider(component, setting)
		}
	}
	for component, settings := range old {
		for setting := range settings {
			consider(component, setting)
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Component != changes[j].Component {
			return changes[i].Component < changes[j].Component
		}
		return changes[i].Setting < changes[j].Setting
	})
	return changes
}

// ParseCommandLine parses process tokens into the canonical tree.
// Help and version requests short-circuit before any merge: the
// corresponding text is printed and the application exits with status
// zero. Any parse failure aborts configuration and is returned for
// user-facing reporting; the canonical tree is untouched.
func (a *App) ParseCommandLine(args []string) error {
	if args == nil {
		args = os.Args[1:]
	}

	for _, token := range args {
		switch token {
		case "-h", "--help", "--help-all":
			a.printDescription()
			a.printHelp(token == "--help-all")
			a.Exit(0)
			return nil
		case "--version":
			a.printVersion()
			a.Exit(0)
			return nil
		}
	}

	a.mu.RLock()
	loader := NewArgvLoader(args, a.aliases, a.flags, a.traits)
	a.mu.RUnlock()

	fragment, err := loader.Load()
	if err != nil {
		return err
	}
	return a.UpdateConfig(fragment)
}

// LoadConfigFile loads a configuration file and merges its fragment
// into the canonical tree. When no explicit search path is given, the
// application's own search path applies. A failure to load an
// explicitly requested file is returned to the caller and leaves the
// canonical tree at its last valid state.
func (a *App) LoadConfigFile(filename string, searchPath ...string) error {
	if len(searchPath) == 0 {
		a.mu.RLock()
		searchPath = slices.Clone(a.searchPath)
		a.mu.RUnlock()
	}

	fragment, err := NewFileLoader(filename, searchPath...).Load()
	if err != nil {
		return err
	}
	return a.UpdateConfig(fragment)
}

// Start transitions the application into the running state. Components
// read their resolved settings from this point on.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateExited {
		return &ConfigError{Reason: "application has exited"}
	}
	a.state = StateRunning
	return nil
}

// Exit records the exit status, moves to the terminal state, and hands
// the status to the process-exit collaborator (os.Exit unless the
// builder injected a replacement).
func (a *App) Exit(status int) {
	a.mu.Lock()
	a.state = StateExited
	a.exitStatus = status
	exit := a.exit
	a.mu.Unlock()

	exit(status)
}
