package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// NormalizeEmail trims and lowercases an address. Accounts are keyed on it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailDomain returns the part after the last @ of a syntactically valid
// bare address, or "" when the address is malformed.
func emailDomain(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return ""
	}
	return domain
}

// IsEmailDomainValid reports whether the address parses and its domain
// answers for MX or, failing that, A/AAAA records.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	r := net.DefaultResolver

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
