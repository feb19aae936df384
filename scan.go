// FILE: appconf/scan.go
package appconf

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes one component's resolved settings (trait defaults
// overlaid by the canonical tree) into the target struct or map. The
// target must be a non-nil pointer. Field mapping uses the "toml"
// struct tag.
func (a *App) Scan(component string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	a.mu.RLock()
	traits, known := a.traits[component]
	if !known {
		a.mu.RUnlock()
		return &UnknownSettingError{Path: component}
	}

	resolved := make(map[string]any, len(traits))
	for name, tr := range traits {
		resolved[name] = copyValue(tr.Default)
	}
	for name, value := range a.canonical[component] {
		resolved[name] = copyValue(value)
	}
	a.mu.RUnlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(resolved); err != nil {
		return fmt.Errorf("failed to scan component %q into %T: %w", component, target, err)
	}
	return nil
}
