package hkid

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Format renders partial or complete input in the display form LL999999(C)
// while the user types.
//
// Everything outside A-Z and 0-9 is dropped. Up to two leading letters are
// kept, followed by up to six characters; a seventh character is wrapped in
// brackets as the check character and anything after it is discarded. Input
// without a leading letter is returned cleaned but otherwise untouched.
//
// Format is idempotent and a prefix of a well-formed value formats to a
// prefix of that value's formatted form.
func Format(raw string) string {
	cleaned := alnum(raw)
	if cleaned == "" {
		return ""
	}

	n := 0
	for n < len(cleaned) && n < maxLetterRun && isLetter(cleaned[n]) {
		n++
	}
	if n == 0 {
		return cleaned
	}

	prefix, rest := cleaned[:n], cleaned[n:]
	if len(rest) <= digitCount {
		return prefix + rest
	}
	return prefix + rest[:digitCount] + openBracket + rest[digitCount:digitCount+1] + closeBracket
}

func alnum(raw string) string {
	folded := norm.NFKC.String(raw)
	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		r = upperASCII(r)
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
