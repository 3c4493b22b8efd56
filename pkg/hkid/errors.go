package hkid

import "fmt"

// ErrorKind classifies why input was rejected.
type ErrorKind int

const (
	// KindNone marks a valid outcome.
	KindNone ErrorKind = iota
	// KindEmpty means nothing was entered.
	KindEmpty
	// KindMalformedInput means the cleaned text does not match the grammar.
	KindMalformedInput
	// KindMissingCheckCharacter means the body is present but no check
	// character was supplied anywhere.
	KindMissingCheckCharacter
	// KindChecksumMismatch means the claimed check character is wrong.
	KindChecksumMismatch
)

var kindNames = map[ErrorKind]string{
	KindNone:                  "",
	KindEmpty:                 "empty",
	KindMalformedInput:        "malformed_input",
	KindMissingCheckCharacter: "missing_check_character",
	KindChecksumMismatch:      "checksum_mismatch",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON payloads stay stable.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is the error form of an invalid Outcome.
type Error struct {
	Kind     ErrorKind
	Raw      string
	Detail   string
	Expected CheckCharacter
	Actual   CheckCharacter
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrEmpty                 = &Error{Kind: KindEmpty}
	ErrMalformedInput        = &Error{Kind: KindMalformedInput}
	ErrMissingCheckCharacter = &Error{Kind: KindMissingCheckCharacter}
	ErrChecksumMismatch      = &Error{Kind: KindChecksumMismatch}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindChecksumMismatch:
		return fmt.Sprintf("hkid: checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
	case KindEmpty:
		return "hkid: empty input"
	}
	if e.Detail != "" {
		return fmt.Sprintf("hkid: %s: %s", e.Kind, e.Detail)
	}
	return "hkid: " + e.Kind.String()
}

// Is matches on kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
