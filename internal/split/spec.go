// Package split partitions one document into N self-contained documents
// under one of five policies: heading level, target word count, fixed part
// count, literal delimiter, or an automatic policy picking between them.
// A single block node is never split: every paragraph, table or code block
// belongs wholly to exactly one output part.
package split

import (
	"fmt"
	"strconv"
	"strings"
)

// Strategy names one splitting policy.
type Strategy string

const (
	StrategyHeading   Strategy = "heading"
	StrategyLength    Strategy = "length"
	StrategyParts     Strategy = "parts"
	StrategyDelimiter Strategy = "delimiter"
	StrategyAuto      Strategy = "auto"
)

// DefaultAutoTargetWords is the per-part target Auto uses when the caller
// does not supply one.
const DefaultAutoTargetWords = 1000

// Spec is a parsed split specification.
type Spec struct {
	Strategy  Strategy
	Level     int    // heading level for StrategyHeading
	Words     int    // target words per part for StrategyLength (and Auto)
	Parts     int    // part count for StrategyParts
	Delimiter string // literal for StrategyDelimiter
}

// ParseSpec parses the split spec grammar: "h1".."h6", "length=<n>",
// "parts=<n>", "delimiter=<literal>" (with \n, \t, \r and \\ escapes), or
// "auto". Malformed specs fail with an error naming the offending token;
// there is no silent default. Bare keywords such as "none" belong to
// callers, not to this grammar.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Spec{}, fmt.Errorf("empty split spec")
	}

	if s == "auto" {
		return Spec{Strategy: StrategyAuto}, nil
	}

	if rest, ok := strings.CutPrefix(s, "h"); ok && !strings.Contains(rest, "=") {
		level, err := strconv.Atoi(rest)
		if err != nil {
			return Spec{}, fmt.Errorf("split spec %q: heading level is not a number", s)
		}
		if level < 1 || level > 6 {
			return Spec{}, fmt.Errorf("split spec %q: heading level must be between 1 and 6", s)
		}
		return Spec{Strategy: StrategyHeading, Level: level}, nil
	}

	if value, ok := strings.CutPrefix(s, "length="); ok {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return Spec{}, fmt.Errorf("split spec %q: length must be a positive integer", s)
		}
		return Spec{Strategy: StrategyLength, Words: n}, nil
	}

	if value, ok := strings.CutPrefix(s, "parts="); ok {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return Spec{}, fmt.Errorf("split spec %q: parts must be a positive integer", s)
		}
		return Spec{Strategy: StrategyParts, Parts: n}, nil
	}

	if value, ok := strings.CutPrefix(s, "delimiter="); ok {
		delim := unescapeDelimiter(value)
		if delim == "" {
			return Spec{}, fmt.Errorf("split spec %q: delimiter must not be empty", s)
		}
		return Spec{Strategy: StrategyDelimiter, Delimiter: delim}, nil
	}

	return Spec{}, fmt.Errorf("unknown split spec token %q", s)
}

func unescapeDelimiter(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			case 't':
				sb.WriteByte('\t')
				i++
				continue
			case 'r':
				sb.WriteByte('\r')
				i++
				continue
			case '\\':
				sb.WriteByte('\\')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
