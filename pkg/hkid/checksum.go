package hkid

const (
	modulus    = 11
	leadWeight = 9
	letterBase = 10
)

// ComputeCheckDigit returns the check character for body.
//
// Body characters are weighted 9, 8, 7, ... from the left: letters count
// A=10 through Z=35 and digits their face value. A two-letter body therefore
// spans weights 9..2 and a one-letter body weights 9..3. The check character
// is '0' when the weighted sum is divisible by 11, 'A' when the remainder is
// 1 and the digit 11-remainder otherwise.
func ComputeCheckDigit(body Body) CheckCharacter {
	sum := 0
	weight := leadWeight
	for _, s := range [...]string{body.letters, body.digits} {
		for i := 0; i < len(s); i++ {
			sum += weight * charValue(s[i])
			weight--
		}
	}

	switch r := sum % modulus; r {
	case 0:
		return '0'
	case 1:
		return checkLetter
	default:
		return CheckCharacter('0' + byte(modulus-r))
	}
}

func charValue(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return int(c-'A') + letterBase
}
