package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSubject(t *testing.T) {
	assert.Empty(t, HashSubject(""))
	h := HashSubject("K1234568")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashSubject("K1234568"))
	assert.NotEqual(t, h, HashSubject("K1234567"))
}

func TestMaskHKID(t *testing.T) {
	assert.Equal(t, "K******(*)", MaskHKID("K123456(8)"))
	assert.Equal(t, "KA*******", MaskHKID("KA1234564"))
	assert.Equal(t, "*******", MaskHKID("1234567"))
	assert.Equal(t, "", MaskHKID(""))

	t.Run("full-width input is folded before masking", func(t *testing.T) {
		assert.Equal(t, "K******(*)", MaskHKID("Ｋ１２３４５６（８）"))
		assert.Equal(t, "KA *******", MaskHKID("ＫＡ　１２３４５６４"))
	})
}

func TestAnonymizeIP(t *testing.T) {
	assert.Equal(t, "192.0.2.0", AnonymizeIP("192.0.2.77"))
	assert.Equal(t, "2001:db8:1::", AnonymizeIP("2001:db8:1:2:3:4:5:6"))
	assert.Equal(t, "", AnonymizeIP("not-an-ip"))
}
