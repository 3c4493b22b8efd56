package hkid

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var grammar = regexp.MustCompile(`^([A-Z]{1,2})([0-9]{6})([0-9A])?$`)

const grammarDetail = "expected 1-2 letters, 6 digits and an optional check character"

// Normalize cleans raw user text and matches it against the HKID grammar.
//
// Full-width characters are folded to ASCII, parentheses and whitespace are
// removed anywhere in the string and letters are upper-cased. A trailing
// check character is returned unverified in Candidate.Check.
func Normalize(raw string) (Candidate, error) {
	m := grammar.FindStringSubmatch(clean(raw))
	if m == nil {
		return Candidate{}, &Error{Kind: KindMalformedInput, Raw: raw, Detail: grammarDetail}
	}
	c := Candidate{Body: Body{letters: m[1], digits: m[2]}}
	if m[3] != "" {
		c.Check = CheckCharacter(m[3][0])
	}
	return c, nil
}

// clean folds compatibility forms (IME full-width input), drops brackets and
// whitespace and upper-cases ASCII letters. Non-ASCII letters are left alone
// so the grammar rejects them.
func clean(raw string) string {
	folded := norm.NFKC.String(raw)
	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		if r == '(' || r == ')' || unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(upperASCII(r))
	}
	return sb.String()
}

func isBlank(raw string) bool {
	return clean(raw) == ""
}

func upperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
