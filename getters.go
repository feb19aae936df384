// FILE: appconf/getters.go
package appconf

import (
	"fmt"
	"reflect"
	"strconv"
)

// String retrieves the resolved value for a "Component.setting" path
// as a string, converting from common scalar types where needed.
func (a *App) String(path string) (string, error) {
	val, found := a.Setting(path)
	if !found {
		return "", &UnknownSettingError{Path: path}
	}
	if val == nil {
		return "", nil
	}

	if s, ok := val.(string); ok {
		return s, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
	}
}

// Int64 retrieves the resolved value for a path as an int64.
func (a *App) Int64(path string) (int64, error) {
	val, found := a.Setting(path)
	if !found {
		return 0, &UnknownSettingError{Path: path}
	}
	n, err := toInt64(val)
	if err != nil {
		return 0, fmt.Errorf("path %s: %w", path, err)
	}
	return n, nil
}

// Bool retrieves the resolved value for a path as a bool. Numeric
// values map zero to false and everything else to true.
func (a *App) Bool(path string) (bool, error) {
	val, found := a.Setting(path)
	if !found {
		return false, &UnknownSettingError{Path: path}
	}
	if val == nil {
		return false, fmt.Errorf("value for path %s is nil, cannot convert to bool", path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		b, err := strconv.ParseBool(v.String())
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for path %s: %w", v.String(), path, err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// Float64 retrieves the resolved value for a path as a float64.
func (a *App) Float64(path string) (float64, error) {
	val, found := a.Setting(path)
	if !found {
		return 0.0, &UnknownSettingError{Path: path}
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for path %s is nil, cannot convert to float64", path)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", v.String(), path, err)
		}
		return f, nil
	}
	return 0.0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// toInt64 converts any numeric-ish value to int64. Strings parse with
// base auto-detection, booleans map to 0/1.
func toInt64(val any) (int64, error) {
	if val == nil {
		return 0, fmt.Errorf("value is nil, cannot convert to int64")
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := uint64(^uint64(0) >> 1)
		if u > maxInt64 {
			return 0, fmt.Errorf("cannot convert %d to int64: overflow", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("cannot convert string %q to int64", s)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64", val)
}
