package service

import (
	"regexp"
	"strings"
)

// Domains of throwaway inbox providers that are rejected outright.
var disposableDomains = []string{
	"tempmail.com", "guerrillamail.com", "10minutemail.com", "throwaway.email",
	"mailinator.com", "trashmail.com", "fakeinbox.com", "yopmail.com",
	"getnada.com", "temp-mail.org", "maildrop.cc", "sharklasers.com",
	"spam4.me", "mintemail.com", "emailondeck.com", "dispostable.com",
}

// Frequently mistyped variants of popular mail domains.
var typoDomains = []string{"gmial.com", "gmai.com", "yahooo.com", "hotmial.com"}

var (
	emailFormatPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	testAddressPattern = regexp.MustCompile(`(?i)^(test|demo|fake|spam|noreply|example)\d*@`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// ValidateAddress runs the local sanity checks that do not need a
// network call: shape, length limits, disposable and typo domains, and
// obvious throwaway patterns. It returns the normalized (trimmed,
// lowercased) address, or a validation error with a user-facing message.
func ValidateAddress(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !emailFormatPattern.MatchString(email) || len(email) > 254 {
		return "", validationError("Please enter a valid email address")
	}

	localPart, domain, _ := strings.Cut(email, "@")
	if !validLocalPart(localPart) || !validDomain(domain) {
		return "", validationError("Please use a valid, non-disposable email address")
	}

	for _, d := range disposableDomains {
		if strings.HasSuffix(domain, d) {
			return "", validationError("Please use a valid, non-disposable email address")
		}
	}
	for _, d := range typoDomains {
		if domain == d {
			return "", validationError("Please use a valid, non-disposable email address")
		}
	}

	if suspiciousLocalPart(email, localPart) {
		return "", validationError("This email address appears to be invalid or for testing only")
	}

	return email, nil
}

func validLocalPart(localPart string) bool {
	if localPart == "" || len(localPart) > 64 {
		return false
	}
	if strings.HasPrefix(localPart, ".") || strings.HasSuffix(localPart, ".") {
		return false
	}
	return !strings.Contains(localPart, "..")
}

func validDomain(domain string) bool {
	if domain == "" || len(domain) > 253 {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}

	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return false
	}
	tld := parts[len(parts)-1]
	return len(tld) >= 2 && len(tld) <= 63
}

func suspiciousLocalPart(email, localPart string) bool {
	digits := len(digitPattern.FindAllString(localPart, -1))
	if float64(digits) > float64(len(localPart))*0.7 {
		return true
	}
	return testAddressPattern.MatchString(email)
}
