package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRE = regexp.MustCompile("(?is)```(?:json)?\\s*(.+?)\\s*```")

// DecodeLLMJSON decodes JSON out of model output, which often wraps the
// payload in prose or markdown fences. It tries the raw input first, then a
// fenced block, then the first balanced object or array.
func DecodeLLMJSON(input string, target interface{}) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}

	if m := codeFenceRE.FindStringSubmatch(trimmed); m != nil {
		if err := json.Unmarshal([]byte(m[1]), target); err == nil {
			return nil
		}
	}

	if candidate := isolateJSON(trimmed); candidate != "" {
		if err := json.Unmarshal([]byte(candidate), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no decodable JSON found in input (%s)", clip(trimmed, 80))
}

// isolateJSON returns the first balanced {...} or [...] region, whichever
// starts earlier.
func isolateJSON(s string) string {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		return balanced(s[objStart:], '{', '}')
	}
	if arrStart >= 0 {
		return balanced(s[arrStart:], '[', ']')
	}
	return ""
}

// balanced scans from the opening delimiter at s[0] and returns the prefix
// up to its matching close, skipping delimiters inside string literals.
func balanced(s string, open, close byte) string {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
