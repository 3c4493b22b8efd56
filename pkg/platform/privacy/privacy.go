// Package privacy reduces identifiers and network addresses to forms that are
// safe to log or audit.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HashSubject returns the hex SHA-256 of an identifier. Audit events carry
// this instead of the raw value so records can be correlated without PII.
// An empty subject hashes to "".
func HashSubject(subject string) string {
	if subject == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}

// MaskHKID keeps the letter prefix and masks every other alphanumeric
// character, e.g. "K123456(8)" -> "K******(*)". Used for log lines.
// Input is NFKC-folded first so full-width digits are masked like ASCII ones.
func MaskHKID(s string) string {
	s = norm.NFKC.String(s)
	var sb strings.Builder
	sb.Grow(len(s))
	prefix := true
	for _, r := range s {
		switch {
		case prefix && ((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')):
			sb.WriteRune(r)
		case (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			prefix = false
			sb.WriteByte('*')
		default:
			if r != ' ' {
				prefix = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// AnonymizeIP zeroes the host part of an address: the last octet for IPv4
// and the last 80 bits for IPv6. Unparseable input is returned as "".
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return parsed.Mask(net.CIDRMask(48, 128)).String()
}
