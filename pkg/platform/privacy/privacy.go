// Package privacy reduces personal data to forms that are safe to put in logs
// and trace attributes.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// MaskMobileNumber keeps the last four digits of a mobile number and masks the rest.
// Inputs of four characters or fewer are fully masked.
func MaskMobileNumber(mobile string) string {
	if mobile == "" {
		return ""
	}
	if len(mobile) <= 4 {
		return strings.Repeat("*", len(mobile))
	}
	return strings.Repeat("*", len(mobile)-4) + mobile[len(mobile)-4:]
}

// HashMobileNumber returns a short SHA-256 digest of the mobile number so traces
// can be correlated without carrying the number itself.
func HashMobileNumber(mobile string) string {
	if mobile == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(mobile))
	return hex.EncodeToString(hash[:8])
}

// AnonymizeIP truncates an IP address to its network portion.
//
// IPv4 addresses keep their /24 prefix ("192.168.1.47" -> "192.168.1.0"), IPv6
// addresses their /48 prefix. Returns "invalid" for unparseable input and
// "unknown" for empty input.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}
