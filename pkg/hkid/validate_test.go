package hkid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("valid identifiers", func(t *testing.T) {
		for _, raw := range []string{"K123456(8)", "KA123456(4)", "M000000(0)", "W123456(A)", "w123456(a)"} {
			o := Validate(raw)
			assert.True(t, o.Valid(), "%q: %v", raw, o.Err())
			assert.NoError(t, o.Err())
		}
	})

	t.Run("identifier is canonical", func(t *testing.T) {
		o := Validate(" k123456 8 ")
		require.True(t, o.Valid())
		assert.Equal(t, "K123456(8)", o.Identifier.String())
		assert.Equal(t, "K1234568", o.Identifier.Compact())
		assert.Equal(t, " k123456 8 ", o.Raw)
	})

	t.Run("case, whitespace and bracket variants agree", func(t *testing.T) {
		want := Validate("K123456(8)")
		for _, raw := range []string{"k123456(8)", "K1234568", " K123456 8 "} {
			got := Validate(raw)
			assert.Equal(t, want.Valid(), got.Valid(), raw)
			assert.Equal(t, want.Identifier, got.Identifier, raw)
		}
	})

	t.Run("checksum mismatch reports both characters", func(t *testing.T) {
		o := Validate("K123456(7)")
		assert.False(t, o.Valid())
		assert.Equal(t, KindChecksumMismatch, o.Kind)
		assert.Equal(t, CheckCharacter('8'), o.Expected)
		assert.Equal(t, CheckCharacter('7'), o.Actual)
		assert.ErrorIs(t, o.Err(), ErrChecksumMismatch)
		assert.Contains(t, o.Err().Error(), "expected 8, got 7")
		assert.True(t, o.Identifier.IsZero())
		assert.Equal(t, "K123456", o.Body.String(), "body is kept for diagnostics")
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, raw := range []string{"K12345(8)", "1234567", "hello", "KK"} {
			o := Validate(raw)
			assert.Equal(t, KindMalformedInput, o.Kind, raw)
			assert.ErrorIs(t, o.Err(), ErrMalformedInput, raw)
		}
	})

	t.Run("empty input is distinct from malformed", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "()", " ( ) "} {
			o := Validate(raw)
			assert.Equal(t, KindEmpty, o.Kind, "%q", raw)
			assert.ErrorIs(t, o.Err(), ErrEmpty)
		}
	})

	t.Run("missing check character", func(t *testing.T) {
		o := Validate("K123456")
		assert.Equal(t, KindMissingCheckCharacter, o.Kind)
		assert.Equal(t, "K123456", o.Body.String())
		assert.ErrorIs(t, o.Err(), ErrMissingCheckCharacter)
	})
}

func TestValidateParts(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		check string
		want  ErrorKind
	}{
		{"valid", "K123456", "8", KindNone},
		{"valid two letters", "KA123456", "4", KindNone},
		{"lower-case check letter", "W123456", "a", KindNone},
		{"bracketed check", "W123456", "(A)", KindNone},
		{"both empty", "", "", KindEmpty},
		{"both blank", "  ", " ", KindEmpty},
		{"body missing", "", "8", KindMalformedInput},
		{"check missing", "K123456", "", KindMissingCheckCharacter},
		{"check embedded in body", "K1234568", "", KindNone},
		{"embedded check repeated", "K1234568", "8", KindNone},
		{"embedded check conflicts", "K1234568", "7", KindMalformedInput},
		{"bad check character", "K123456", "X", KindMalformedInput},
		{"two check characters", "K123456", "77", KindMalformedInput},
		{"short body", "A12345", "7", KindMalformedInput},
		{"letter in digits", "A12345B", "7", KindMalformedInput},
		{"no prefix", "1234567", "7", KindMalformedInput},
		{"wrong check", "K123456", "7", KindChecksumMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := ValidateParts(tc.body, tc.check)
			assert.Equal(t, tc.want, o.Kind, "detail: %s", o.Detail)
		})
	}

	t.Run("valid parts produce the same identifier as a single field", func(t *testing.T) {
		parts := ValidateParts("k123456", "8")
		single := Validate("K123456(8)")
		require.True(t, parts.Valid())
		assert.Equal(t, single.Identifier, parts.Identifier)
	})
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "checksum_mismatch", KindChecksumMismatch.String())
	assert.Equal(t, "kind(42)", ErrorKind(42).String())

	text, err := KindEmpty.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "empty", string(text))
}
