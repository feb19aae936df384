// FILE: appconf/doc.go

// Package appconf is a declarative configuration engine for
// command-line applications. Components declare typed, named settings
// (traits), the application merges overrides from defaults, a config
// file, and command-line arguments with well-defined precedence, and
// change notifications propagate resolved values to live state.
//
// Features:
//   - Hierarchical, mergeable configuration trees with pure,
//     right-biased structural merge
//   - File loading (TOML, JSON, YAML) with search-path resolution
//   - Command-line loading with alias and flag tables; token order is
//     precedence
//   - Restricted literal grammar for CLI values (numbers, strings,
//     booleans, bracketed sequences/mappings), never expressions
//   - Singleton application with atomic canonical-tree swaps and
//     synchronous change observers
//   - Reactive log-level projection onto a slog.LevelVar
//   - Help and version short-circuits that exit with status zero
//
// Quick start:
//
//	type serverComponent struct{ host string }
//
//	func (s *serverComponent) ComponentName() string { return "Server" }
//	func (s *serverComponent) Traits() []appconf.Trait {
//	    return []appconf.Trait{
//	        {Name: "host", Default: "localhost", Configurable: true,
//	         Help: "Address the server binds to."},
//	    }
//	}
//
//	app, err := appconf.NewBuilder().
//	    WithName("myapp").
//	    WithComponents(&serverComponent{}).
//	    WithAliases(appconf.AliasTable{"host": "Server.host"}).
//	    WithFlags(appconf.FlagTable{
//	        "debug": {
//	            Patch: map[string]any{"Application": map[string]any{"log_level": 10}},
//	            Help:  "Set the log level to debug.",
//	        },
//	    }).
//	    WithConfigFile("myapp.toml").
//	    WithSearchPath(appconf.SearchPath("myapp")...).
//	    WithArgs(os.Args[1:]).
//	    Build()
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    os.Exit(1)
//	}
//
//	host, _ := app.String("Server.host")
//
// Precedence (highest to lowest): later command-line tokens, earlier
// command-line tokens, configuration file, trait defaults.
//
// Thread safety: the canonical tree has a single writer (the
// application, via UpdateConfig) and many readers; every merge happens
// on a deep copy and is swapped in atomically under a write lock, so
// readers never observe a partially merged tree.
package appconf
