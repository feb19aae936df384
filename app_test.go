// FILE: appconf/app_test.go
package appconf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exitRecorder stands in for os.Exit so tests observe the requested
// status instead of dying.
type exitRecorder struct {
	called bool
	status int
}

func (r *exitRecorder) exit(status int) {
	r.called = true
	r.status = status
}

// buildApp resets the singleton, applies test plumbing, and builds.
func buildApp(t *testing.T, b *Builder) (*App, *exitRecorder, *bytes.Buffer) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	recorder := &exitRecorder{}
	out := &bytes.Buffer{}
	app, err := b.WithExit(recorder.exit).WithOutput(out).Build()
	require.NoError(t, err)
	return app, recorder, out
}

func TestSingletonReentrantConstruction(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithName("myapp"))

	again, err := NewBuilder().WithName("myapp").Build()
	require.NoError(t, err)
	assert.Same(t, app, again)

	assert.Same(t, app, Instance())
}

func TestSingletonRejectsConflictingReinit(t *testing.T) {
	buildApp(t, NewBuilder().WithName("myapp"))

	_, err := NewBuilder().WithName("otherapp").Build()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestAppSelfRegistersFirst(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))

	components := app.Components()
	require.Len(t, components, 2)
	assert.Equal(t, "Application", components[0].ComponentName())
	assert.Equal(t, "X", components[1].ComponentName())
}

func TestMalformedFlagTableIsFatal(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := NewBuilder().
		WithFlags(FlagTable{"bad": {Patch: map[string]any{"X": "oops"}, Help: "h"}}).
		Build()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, instance, "a malformed flag table must prevent startup")
}

func TestAliasValidationAtConstruction(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := NewBuilder().
		WithAliases(AliasTable{"bogus": "Nowhere.at_all"}).
		Build()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "bogus")
}

func TestUpdateConfigNotifiesOncePerEffectiveChange(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))

	var changes []Change
	app.Subscribe(func(ch Change) { changes = append(changes, ch) })

	require.NoError(t, app.UpdateConfig(Tree{"X": {"n": 5}}))
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Component: "X", Setting: "n", Old: 0, New: 5}, changes[0])

	// Merging the same value again is not an effective change.
	changes = nil
	require.NoError(t, app.UpdateConfig(Tree{"X": {"n": 5}}))
	assert.Empty(t, changes)
}

func TestUpdateConfigValueEqualToDefaultFiresNothing(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))

	var changes []Change
	app.Subscribe(func(ch Change) { changes = append(changes, ch) })

	// X.n defaults to 0; loading an explicit 0 resolves to the same value.
	require.NoError(t, app.UpdateConfig(Tree{"X": {"n": 0}}))
	assert.Empty(t, changes)
}

func TestLogLevelHook(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder())

	assert.Equal(t, slog.LevelWarn, app.LogLevel().Level())

	require.NoError(t, app.UpdateConfig(Tree{"Application": {"log_level": 10}}))
	assert.Equal(t, slog.LevelDebug, app.LogLevel().Level())

	require.NoError(t, app.UpdateConfig(Tree{"Application": {"log_level": 40}}))
	assert.Equal(t, slog.LevelError, app.LogLevel().Level())
}

func TestLogLevelAliasEquivalence(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder())
	require.NoError(t, app.ParseCommandLine([]string{"log-level=10"}))
	direct, ok := app.Setting("Application.log_level")
	require.True(t, ok)

	Reset()
	app2, _, _ := buildApp(t, NewBuilder())
	require.NoError(t, app2.ParseCommandLine([]string{"Application.log_level=10"}))
	aliased, ok := app2.Setting("Application.log_level")
	require.True(t, ok)

	assert.Equal(t, direct, aliased)
}

func TestLogLevelRejectsBadValue(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder())

	err := app.ParseCommandLine([]string{"log-level=17"})

	var valueErr *ValueParseError
	require.ErrorAs(t, err, &valueErr)
}

func TestHelpShortCircuit(t *testing.T) {
	for _, token := range []string{"-h", "--help", "--help-all"} {
		t.Run(token, func(t *testing.T) {
			app, recorder, out := buildApp(t, NewBuilder().
				WithDescription("Test application.").
				WithComponents(xComponent()))

			var notified bool
			app.Subscribe(func(Change) { notified = true })

			err := app.ParseCommandLine([]string{token, "X.n=5"})
			require.NoError(t, err)

			assert.True(t, recorder.called)
			assert.Equal(t, 0, recorder.status)
			assert.Equal(t, StateExited, app.State())
			assert.Contains(t, out.String(), "Test application.")

			// Help never reaches merge or notify.
			assert.False(t, notified)
			assert.Empty(t, app.Config())
		})
	}
}

func TestHelpAllListsComponentTraits(t *testing.T) {
	app, _, out := buildApp(t, NewBuilder().WithComponents(xComponent()))

	require.NoError(t, app.ParseCommandLine([]string{"--help-all"}))

	assert.Contains(t, out.String(), "X.n")
	assert.NotContains(t, out.String(), "X.hidden", "non-configurable traits stay out of help")
}

func TestVersionShortCircuit(t *testing.T) {
	app, recorder, out := buildApp(t, NewBuilder().WithVersion("2.5.1"))

	require.NoError(t, app.ParseCommandLine([]string{"--version"}))

	assert.True(t, recorder.called)
	assert.Equal(t, 0, recorder.status)
	assert.Contains(t, out.String(), "2.5.1")
}

func TestParseErrorLeavesCanonicalIntact(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))
	require.NoError(t, app.UpdateConfig(Tree{"X": {"n": 5}}))

	err := app.ParseCommandLine([]string{"X.n=7", "bogus-token"})
	require.Error(t, err)

	// The failed parse merged nothing, not even the valid leading token.
	n, _ := app.Setting("X.n")
	assert.Equal(t, 5, n)
}

func TestUpdateConfigAfterExit(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder())
	app.Exit(3)

	assert.Equal(t, 3, app.ExitStatus())
	err := app.UpdateConfig(Tree{"Application": {"log_level": 10}})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestStateTransitions(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder())
	assert.Equal(t, StateConstructed, app.State())

	require.NoError(t, app.UpdateConfig(Tree{"Application": {"log_level": 10}}))
	assert.Equal(t, StateConfigured, app.State())

	require.NoError(t, app.Start())
	assert.Equal(t, StateRunning, app.State())

	app.Exit(0)
	assert.Equal(t, StateExited, app.State())
	assert.Error(t, app.Start())
}

func TestSettingFallsBackToDefault(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))

	v, ok := app.Setting("X.n")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = app.Setting("X.nope")
	assert.False(t, ok)
}

func TestConfigReturnsDeepCopy(t *testing.T) {
	app, _, _ := buildApp(t, NewBuilder().WithComponents(xComponent()))
	require.NoError(t, app.UpdateConfig(Tree{"X": {"n": 5}}))

	snapshot := app.Config()
	snapshot.Set("X", "n", 99)

	n, _ := app.Setting("X.n")
	assert.Equal(t, 5, n)
}
