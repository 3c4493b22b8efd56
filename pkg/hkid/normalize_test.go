package hkid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("body and check character", func(t *testing.T) {
		c, err := Normalize("K123456(8)")
		require.NoError(t, err)
		assert.Equal(t, "K", c.Body.Letters())
		assert.Equal(t, "123456", c.Body.Digits())
		assert.True(t, c.HasCheck())
		assert.Equal(t, CheckCharacter('8'), c.Check)
	})

	t.Run("body only", func(t *testing.T) {
		c, err := Normalize("KA123456")
		require.NoError(t, err)
		assert.Equal(t, "KA", c.Body.Letters())
		assert.False(t, c.HasCheck())
	})

	t.Run("tolerates case, whitespace and brackets anywhere", func(t *testing.T) {
		for _, raw := range []string{
			"k123456(8)",
			" K123456 8 ",
			"K 123 456 (8)",
			"(K)123456\t8\n",
			"K1234568",
		} {
			c, err := Normalize(raw)
			require.NoError(t, err, "%q", raw)
			assert.Equal(t, "K123456", c.Body.String(), "%q", raw)
			assert.Equal(t, CheckCharacter('8'), c.Check, "%q", raw)
		}
	})

	t.Run("folds full-width input", func(t *testing.T) {
		c, err := Normalize("Ｋ１２３４５６（８）")
		require.NoError(t, err)
		assert.Equal(t, "K123456", c.Body.String())
		assert.Equal(t, CheckCharacter('8'), c.Check)
	})

	t.Run("lower-case a is a check letter", func(t *testing.T) {
		c, err := Normalize("w123456(a)")
		require.NoError(t, err)
		assert.Equal(t, CheckCharacter('A'), c.Check)
	})

	t.Run("rejects grammar violations", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"K12345(8)",
			"1234567",
			"ABC123456",
			"K1234567(8)",
			"K12345B",
			"K123456(B)",
			"K123-456",
			"К123456(8)",
			"K１２３４５６\x00",
		} {
			_, err := Normalize(raw)
			require.Error(t, err, "%q", raw)
			assert.True(t, errors.Is(err, ErrMalformedInput), "%q", raw)

			var hErr *Error
			require.True(t, errors.As(err, &hErr))
			assert.Equal(t, raw, hErr.Raw, "malformed error keeps the raw input")
		}
	})
}

func TestParseBody(t *testing.T) {
	b, err := ParseBody(" ab987654 ")
	require.NoError(t, err)
	assert.Equal(t, "AB987654", b.String())
	assert.False(t, b.IsZero())

	_, err = ParseBody("K1234568")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)

	assert.True(t, Body{}.IsZero())
}
