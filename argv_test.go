// FILE: appconf/argv_test.go
package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testComponent is a minimal registration capability for tests.
type testComponent struct {
	name   string
	traits []Trait
}

func (c *testComponent) ComponentName() string { return c.name }
func (c *testComponent) Traits() []Trait       { return c.traits }

func xComponent() *testComponent {
	return &testComponent{
		name: "X",
		traits: []Trait{
			{Name: "n", Default: 0, Help: "A number.", Configurable: true},
			{Name: "debug", Default: false, Help: "Debug toggle.", Configurable: true},
			{Name: "hidden", Default: "secret", Help: "Not settable externally."},
		},
	}
}

func newTestArgvLoader(t *testing.T, args []string, aliases AliasTable, flags FlagTable) *ArgvLoader {
	t.Helper()
	require.NoError(t, flags.validate())
	traits, err := buildTraitIndex([]Component{xComponent()})
	require.NoError(t, err)
	return NewArgvLoader(args, aliases, flags, traits)
}

func TestArgvKeyValue(t *testing.T) {
	loader := newTestArgvLoader(t, []string{"X.n=5"}, nil, nil)

	frag, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, Tree{"X": {"n": 5}}, frag)
}

func TestArgvDoubleDashKeyValue(t *testing.T) {
	loader := newTestArgvLoader(t, []string{"--X.n=5"}, nil, nil)

	frag, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, Tree{"X": {"n": 5}}, frag)
}

func TestArgvAliasResolution(t *testing.T) {
	aliases := AliasTable{"n": "X.n"}

	direct, err := newTestArgvLoader(t, []string{"X.n=10"}, aliases, nil).Load()
	require.NoError(t, err)
	aliased, err := newTestArgvLoader(t, []string{"n=10"}, aliases, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, direct, aliased)
}

func TestArgvFlagOrderPrecedence(t *testing.T) {
	flags := BoolFlag("debug", "X.debug", "", "")

	frag, err := newTestArgvLoader(t, []string{"--debug", "X.n=1", "--no-debug"}, nil, flags).Load()
	require.NoError(t, err)

	// The last flag wins; the key-value applies regardless of flag order.
	debug, ok := frag.Get("X", "debug")
	require.True(t, ok)
	assert.Equal(t, false, debug)

	n, ok := frag.Get("X", "n")
	require.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestArgvLaterTokenWinsOnSamePath(t *testing.T) {
	flags := BoolFlag("debug", "X.debug", "", "")

	frag, err := newTestArgvLoader(t, []string{"--no-debug", "X.debug=true"}, nil, flags).Load()
	require.NoError(t, err)

	debug, _ := frag.Get("X", "debug")
	assert.Equal(t, true, debug)

	frag, err = newTestArgvLoader(t, []string{"X.debug=true", "--no-debug"}, nil, flags).Load()
	require.NoError(t, err)

	debug, _ = frag.Get("X", "debug")
	assert.Equal(t, false, debug)
}

func TestArgvUnknownComponent(t *testing.T) {
	_, err := newTestArgvLoader(t, []string{"Foo.bar=1"}, nil, nil).Load()

	var unknownErr *UnknownSettingError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Foo.bar", unknownErr.Path)
}

func TestArgvNonConfigurableSetting(t *testing.T) {
	_, err := newTestArgvLoader(t, []string{"X.hidden=nope"}, nil, nil).Load()

	var unknownErr *UnknownSettingError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "X.hidden", unknownErr.Path)
}

func TestArgvUnknownFlag(t *testing.T) {
	_, err := newTestArgvLoader(t, []string{"--frobnicate"}, nil, nil).Load()

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "--frobnicate", parseErr.Token)
}

func TestArgvBadToken(t *testing.T) {
	_, err := newTestArgvLoader(t, []string{"whatever"}, nil, nil).Load()

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "whatever", parseErr.Token)
}

func TestArgvBadValue(t *testing.T) {
	_, err := newTestArgvLoader(t, []string{"X.n=[1,"}, nil, nil).Load()

	var valueErr *ValueParseError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, "X.n=[1,", valueErr.Token)
}

func TestArgvTraitValidatorRejectsValue(t *testing.T) {
	traits, err := buildTraitIndex([]Component{&testComponent{
		name: "X",
		traits: []Trait{{
			Name:         "n",
			Default:      0,
			Configurable: true,
			Validate: func(v any) error {
				if _, err := toInt64(v); err != nil {
					return err
				}
				return nil
			},
		}},
	}})
	require.NoError(t, err)

	_, err = NewArgvLoader([]string{"X.n=not-a-number"}, nil, nil, traits).Load()

	var valueErr *ValueParseError
	require.ErrorAs(t, err, &valueErr)
}

func TestArgvLoadIsIdempotent(t *testing.T) {
	loader := newTestArgvLoader(t, []string{"X.n=5", "X.debug=true"}, nil, nil)

	first, err := loader.Load()
	require.NoError(t, err)
	second, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
