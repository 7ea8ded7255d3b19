// Package rules applies user-defined substitutions to final text, after
// the rewrite pass. Rules load from a plain text file: literal rules
// ("from => to", case-insensitive) and sed-style regex rules
// (s/pattern/replacement/flags).
package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// maxPasses bounds the fixed-point loop so mutually recursive rules
// cannot spin forever.
const maxPasses = 30

type rule struct {
	re          *regexp.Regexp
	replacement string
	firstOnly   bool
}

// Engine applies deterministic substitutions loaded from a rules file.
type Engine struct {
	rules []rule
}

// NewEngine loads rules from path. An empty path or a missing file
// yields an engine that passes text through unchanged.
func NewEngine(path string) (*Engine, error) {
	if strings.TrimSpace(path) == "" {
		return &Engine{}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Engine{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	engine := &Engine{}
	for index, raw := range strings.Split(string(contents), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := parseRule(line)
		if err != nil {
			return nil, fmt.Errorf("rules file %q line %d: %w", path, index+1, err)
		}
		engine.rules = append(engine.rules, r)
	}
	return engine, nil
}

// Apply runs the rules to a fixed point and returns the transformed
// text.
func (e *Engine) Apply(text string) (string, error) {
	if len(e.rules) == 0 {
		return text, nil
	}

	result := text
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, r := range e.rules {
			next := r.apply(result)
			if next != result {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result, nil
}

func (r rule) apply(input string) string {
	if !r.firstOnly {
		return r.re.ReplaceAllString(input, r.replacement)
	}
	loc := r.re.FindStringIndex(input)
	if loc == nil {
		return input
	}
	segment := input[loc[0]:loc[1]]
	return input[:loc[0]] + r.re.ReplaceAllString(segment, r.replacement) + input[loc[1]:]
}

func parseRule(line string) (rule, error) {
	if isRegexRule(line) {
		return parseRegexRule(line)
	}
	if strings.Contains(line, "=>") {
		return parseLiteralRule(line)
	}
	return rule{}, errors.New("unsupported rule format")
}

func parseLiteralRule(line string) (rule, error) {
	parts := strings.SplitN(line, "=>", 2)
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" {
		return rule{}, errors.New("literal rule source cannot be empty")
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(from))
	if err != nil {
		return rule{}, fmt.Errorf("invalid literal source: %w", err)
	}
	return rule{re: re, replacement: to}, nil
}

func parseRegexRule(line string) (rule, error) {
	delim := line[1]

	pattern, pos, err := readUntil(line, 2, delim)
	if err != nil {
		return rule{}, fmt.Errorf("invalid regex pattern: %w", err)
	}
	replacement, pos, err := readUntil(line, pos, delim)
	if err != nil {
		return rule{}, fmt.Errorf("invalid regex replacement: %w", err)
	}

	global := false
	prefix := "i"
	for _, flag := range strings.TrimSpace(line[pos:]) {
		switch flag {
		case 'i':
			// Already the default.
		case 'g':
			global = true
		case 'm':
			prefix += "m"
		case 's':
			prefix += "s"
		default:
			return rule{}, fmt.Errorf("unsupported regex flag %q", flag)
		}
	}

	re, err := regexp.Compile("(?" + prefix + ")" + pattern)
	if err != nil {
		return rule{}, fmt.Errorf("invalid regex: %w", err)
	}
	return rule{re: re, replacement: replacement, firstOnly: !global}, nil
}

func readUntil(line string, start int, delim byte) (string, int, error) {
	if start >= len(line) {
		return "", 0, errors.New("unexpected end of expression")
	}

	var builder strings.Builder
	escaped := false
	for index := start; index < len(line); index++ {
		char := line[index]
		if escaped {
			builder.WriteByte(char)
			escaped = false
			continue
		}
		switch char {
		case '\\':
			escaped = true
			builder.WriteByte(char)
		case delim:
			return builder.String(), index + 1, nil
		default:
			builder.WriteByte(char)
		}
	}
	return "", 0, errors.New("unterminated expression")
}

func isRegexRule(line string) bool {
	if len(line) < 2 || line[0] != 's' {
		return false
	}
	delim := line[1]
	switch {
	case delim >= 'a' && delim <= 'z', delim >= 'A' && delim <= 'Z':
		return false
	case delim >= '0' && delim <= '9', delim == ' ', delim == '\t':
		return false
	}
	return true
}
