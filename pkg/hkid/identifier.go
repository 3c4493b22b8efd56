package hkid

import "strings"

const (
	digitCount   = 6
	maxLetterRun = 2
	checkLetter  = 'A'
	openBracket  = "("
	closeBracket = ")"
)

// CheckCharacter is the trailing checksum character: '0'..'9' or 'A'.
// The zero value means "absent".
type CheckCharacter byte

// NoCheck is the absent check character.
const NoCheck CheckCharacter = 0

// ParseCheckCharacter accepts exactly one digit or the letter A (either case).
func ParseCheckCharacter(s string) (CheckCharacter, bool) {
	if len(s) != 1 {
		return NoCheck, false
	}
	c := CheckCharacter(upperASCII(rune(s[0])))
	if !c.IsValid() {
		return NoCheck, false
	}
	return c, true
}

// IsValid reports whether c is one of the eleven permitted characters.
func (c CheckCharacter) IsValid() bool {
	return (c >= '0' && c <= '9') || c == checkLetter
}

func (c CheckCharacter) String() string {
	if c == NoCheck {
		return ""
	}
	return string(rune(c))
}

// Body is the letters+digits portion of an identifier, before the check
// character.
//
// Invariant: letters holds 1-2 of A-Z and digits holds exactly six of 0-9.
// Only Normalize and ParseBody construct a non-zero Body.
type Body struct {
	letters string
	digits  string
}

// ParseBody parses text that must contain a body and nothing else.
func ParseBody(raw string) (Body, error) {
	c, err := Normalize(raw)
	if err != nil {
		return Body{}, err
	}
	if c.HasCheck() {
		return Body{}, &Error{
			Kind:   KindMalformedInput,
			Raw:    raw,
			Detail: "body must not include a check character",
		}
	}
	return c.Body, nil
}

// Letters returns the one- or two-letter prefix.
func (b Body) Letters() string { return b.letters }

// Digits returns the six-digit run.
func (b Body) Digits() string { return b.digits }

// IsZero reports whether b was never parsed.
func (b Body) IsZero() bool { return b.letters == "" && b.digits == "" }

func (b Body) String() string { return b.letters + b.digits }

// Candidate is the result of Normalize: a body and, when the input carried
// one, a claimed check character that has not been verified yet.
type Candidate struct {
	Body  Body
	Check CheckCharacter
}

// HasCheck reports whether the input carried a check character.
func (c Candidate) HasCheck() bool { return c.Check != NoCheck }

// Identifier is a body paired with its check character.
type Identifier struct {
	body  Body
	check CheckCharacter
}

// Issue returns the identifier for body with its computed check character.
func Issue(body Body) Identifier {
	return Identifier{body: body, check: ComputeCheckDigit(body)}
}

func (i Identifier) Body() Body { return i.body }

func (i Identifier) Check() CheckCharacter { return i.check }

// IsZero reports whether i is the zero Identifier.
func (i Identifier) IsZero() bool { return i.body.IsZero() && i.check == NoCheck }

// String renders the canonical display form, e.g. K123456(8).
func (i Identifier) String() string {
	if i.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(i.body.letters) + digitCount + 3)
	sb.WriteString(i.body.String())
	sb.WriteString(openBracket)
	sb.WriteByte(byte(i.check))
	sb.WriteString(closeBracket)
	return sb.String()
}

// Compact renders the identifier without brackets, e.g. K1234568.
func (i Identifier) Compact() string {
	if i.IsZero() {
		return ""
	}
	return i.body.String() + i.check.String()
}
