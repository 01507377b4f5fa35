package preview

import (
	"net/url"
	"regexp"
	"strings"
)

var httpURLPattern = regexp.MustCompile(`(?i)^https?://[^\s/?#]+[^\s]*$`)

// IsHTTPURL reports whether raw has the shape of an absolute HTTP(S) URL.
func IsHTTPURL(raw string) bool {
	if !httpURLPattern.MatchString(raw) {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Host != ""
}

// NormalizeDomain lowercases a domain and trims surrounding dots and spaces.
func NormalizeDomain(domain string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// DomainSet is a set of normalized domains.
type DomainSet map[string]struct{}

// NewDomainSet builds a set from domain lists, skipping empty entries.
func NewDomainSet(lists ...[]string) DomainSet {
	set := make(DomainSet)
	for _, list := range lists {
		for _, d := range list {
			if d = NormalizeDomain(d); d != "" {
				set[d] = struct{}{}
			}
		}
	}
	return set
}

// Contains reports whether domain is in the set.
func (s DomainSet) Contains(domain string) bool {
	_, ok := s[NormalizeDomain(domain)]
	return ok
}
