package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// run evaluates the compiled program against a binding snapshot. The
// snapshot is read-only; evaluation never mutates it.
func (p *Program) run(data map[string]any) (any, error) {
	var current any = data

	for _, seg := range p.segments {
		switch seg.kind {
		case segMember:
			current = member(current, seg.name)
		case segIndex:
			current = index(current, seg.index)
		case segCall:
			fn := methods[seg.name]
			value, err := fn(current, seg.args)
			if err != nil {
				return nil, fmt.Errorf("expr: %s(): %w", seg.name, err)
			}
			current = value
		}
		// A dead-end path is a miss, not an error; the renderer default
		// applies. default() still gets a chance to replace the nil.
	}

	return current, nil
}

func member(value any, name string) any {
	switch typed := value.(type) {
	case map[string]any:
		return typed[name]
	case map[string]string:
		if v, ok := typed[name]; ok {
			return v
		}
		return nil
	default:
		return nil
	}
}

func index(value any, i int) any {
	switch typed := value.(type) {
	case []any:
		if i < 0 || i >= len(typed) {
			return nil
		}
		return typed[i]
	case []string:
		if i < 0 || i >= len(typed) {
			return nil
		}
		return typed[i]
	case []map[string]any:
		if i < 0 || i >= len(typed) {
			return nil
		}
		return typed[i]
	default:
		return nil
	}
}

type method func(recv any, args []any) (any, error)

var methods = map[string]method{
	"format":  methodFormat,
	"upper":   methodUpper,
	"lower":   methodLower,
	"trim":    methodTrim,
	"round":   methodRound,
	"default": methodDefault,
}

// Layouts tried when formatting a string-typed date binding.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func methodFormat(recv any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 layout argument, got %d", len(args))
	}
	layout, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("layout must be a string")
	}
	if recv == nil {
		return nil, nil
	}

	switch v := recv.(type) {
	case time.Time:
		return v.Format(layout), nil
	case string:
		for _, parseLayout := range dateLayouts {
			if t, err := time.Parse(parseLayout, strings.TrimSpace(v)); err == nil {
				return t.Format(layout), nil
			}
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot format %T as a date", recv)
	}
}

func methodUpper(recv any, args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("takes no arguments")
	}
	if recv == nil {
		return nil, nil
	}
	return strings.ToUpper(CoerceString(recv)), nil
}

func methodLower(recv any, args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("takes no arguments")
	}
	if recv == nil {
		return nil, nil
	}
	return strings.ToLower(CoerceString(recv)), nil
}

func methodTrim(recv any, args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("takes no arguments")
	}
	if recv == nil {
		return nil, nil
	}
	return strings.TrimSpace(CoerceString(recv)), nil
}

func methodRound(recv any, args []any) (any, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most 1 argument, got %d", len(args))
	}
	digits := 0.0
	if len(args) == 1 {
		d, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("digits must be a number")
		}
		digits = d
	}
	if recv == nil {
		return nil, nil
	}
	value, ok := CoerceNumber(recv)
	if !ok {
		return nil, fmt.Errorf("cannot round %T", recv)
	}
	factor := math.Pow(10, digits)
	return math.Round(value*factor) / factor, nil
}

func methodDefault(recv any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	if recv == nil {
		return args[0], nil
	}
	if s, ok := recv.(string); ok && strings.TrimSpace(s) == "" {
		return args[0], nil
	}
	return recv, nil
}

// CoerceString renders any binding value as a string.
func CoerceString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// CoerceNumber converts numeric binding values to float64.
func CoerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CoerceBool converts binding values to their truthiness.
func CoerceBool(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
