package match

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/gosimple/unidecode"
)

// noiseTokens are qualifier words that carry no identity: edition labels,
// featuring markers, remaster tags.
var noiseTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"demo":       {},
	"edit":       {},
	"edition":    {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"single":     {},
	"stereo":     {},
	"version":    {},
}

// Normalize folds diacritics, lowercases, drops bracketed qualifiers and
// noise tokens, and collapses separators, so that catalog and query titles
// compare on identity rather than packaging.
func Normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	lower := strings.ToLower(unidecode.Unidecode(input))
	filtered := stripBracketedSegments(lower)
	tokens := strings.Fields(cleanSeparators(filtered))

	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, drop := noiseTokens[token]; drop {
			continue
		}
		cleaned = append(cleaned, token)
	}

	return strings.Join(cleaned, " ")
}

// Tokens returns the normalized words of input with length >= minLen.
func Tokens(input string, minLen int) []string {
	fields := strings.Fields(Normalize(input))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minLen {
			out = append(out, f)
		}
	}
	return out
}

func stripBracketedSegments(input string) string {
	var out strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}

	return out.String()
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}

	return out.String()
}

// similarity returns 1 - normalizedEditDistance over the longer input.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}
