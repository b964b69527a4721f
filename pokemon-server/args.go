package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tool arguments arrive as untyped JSON values so that a wrongly typed
// argument is reported as an {"error"} payload by the handler rather than
// rejected by schema validation before the handler runs.

// intArg reads an optional integer argument. JSON numbers with no fractional
// part and numeric strings are accepted; nil yields def.
func intArg(v any, name string, def int) (int, error) {
	switch n := v.(type) {
	case nil:
		return def, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%s must be an integer, got %v", name, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		return intArg(string(n), name, def)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", name, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}

// stringArg reads an optional string argument. Numbers are rendered in their
// shortest form so that numeric ids work for id_or_name.
func stringArg(v any, name string) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case json.Number:
		return s.String(), nil
	default:
		return "", fmt.Errorf("%s must be a string", name)
	}
}
