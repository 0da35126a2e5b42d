package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Program is a compiled expression: a chain of member, index, and call
// segments applied left to right to the binding snapshot. Programs are
// immutable after parsing and safe to share between passes.
type Program struct {
	source   string
	segments []segment
}

type segmentKind int

const (
	segMember segmentKind = iota
	segIndex
	segCall
)

type segment struct {
	kind  segmentKind
	name  string
	index int
	args  []any
}

// Source returns the expression body the program was compiled from.
func (p *Program) Source() string { return p.source }

// Root returns the leading member path up to the first index or call
// segment, e.g. "data.customer.name" for {{ data.customer.name.upper() }}.
func (p *Program) Root() string {
	var parts []string
	for _, seg := range p.segments {
		if seg.kind != segMember {
			break
		}
		parts = append(parts, seg.name)
	}
	return strings.Join(parts, ".")
}

func parse(source string) (*Program, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("expr: empty expression")
	}

	var segments []segment
	i := 0

	next := func() byte {
		if i >= len(source) {
			return 0
		}
		return source[i]
	}

	for i < len(source) {
		start := i
		for i < len(source) {
			c := source[i]
			if c == '.' || c == '(' {
				break
			}
			i++
		}
		name := strings.TrimSpace(source[start:i])
		if name == "" {
			return nil, fmt.Errorf("expr: empty path segment in %q", source)
		}

		if next() == '(' {
			i++ // consume '('
			args, end, err := parseArgs(source, i)
			if err != nil {
				return nil, err
			}
			i = end
			segments = append(segments, segment{kind: segCall, name: strings.ToLower(name), args: args})
		} else if idx, err := strconv.Atoi(name); err == nil {
			segments = append(segments, segment{kind: segIndex, index: idx, name: name})
		} else {
			if !validIdentifier(name) {
				return nil, fmt.Errorf("expr: invalid identifier %q in %q", name, source)
			}
			segments = append(segments, segment{kind: segMember, name: name})
		}

		if next() == '.' {
			i++
			if i >= len(source) {
				return nil, fmt.Errorf("expr: trailing '.' in %q", source)
			}
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("expr: empty expression")
	}
	if segments[0].kind != segMember {
		return nil, fmt.Errorf("expr: expression must start with a binding path: %q", source)
	}
	for _, seg := range segments {
		if seg.kind == segCall {
			if _, ok := methods[seg.name]; !ok {
				return nil, fmt.Errorf("expr: unknown method %q in %q", seg.name, source)
			}
		}
	}

	return &Program{source: source, segments: segments}, nil
}

// parseArgs consumes literal call arguments starting after '(' and returns
// the position just past the closing ')'.
func parseArgs(source string, pos int) ([]any, int, error) {
	var args []any
	i := pos

	skipSpace := func() {
		for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(source) {
			return nil, 0, fmt.Errorf("expr: missing ')' in %q", source)
		}
		if source[i] == ')' {
			i++
			return args, i, nil
		}
		if len(args) > 0 {
			if source[i] != ',' {
				return nil, 0, fmt.Errorf("expr: expected ',' between arguments in %q", source)
			}
			i++
			skipSpace()
		}

		switch c := source[i]; {
		case c == '"' || c == '\'':
			quote := c
			i++
			start := i
			for i < len(source) && source[i] != quote {
				i++
			}
			if i >= len(source) {
				return nil, 0, fmt.Errorf("expr: unterminated string literal in %q", source)
			}
			args = append(args, source[start:i])
			i++
		default:
			start := i
			for i < len(source) && source[i] != ',' && source[i] != ')' {
				i++
			}
			raw := strings.TrimSpace(source[start:i])
			switch strings.ToLower(raw) {
			case "true":
				args = append(args, true)
			case "false":
				args = append(args, false)
			default:
				f, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("expr: invalid argument %q in %q", raw, source)
				}
				args = append(args, f)
			}
		}
	}
}

func validIdentifier(name string) bool {
	for idx, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
		case r >= '0' && r <= '9':
			if idx == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}
