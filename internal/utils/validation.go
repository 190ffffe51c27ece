package utils

import (
	"net/url"
	"regexp"
	"strings"
)

// DomainRegex is the regex for validating domains
// It allows for subdomains and requires at least one dot (e.g. example.com)
// It does not allow for IP addresses or localhost
var DomainRegex = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsValidDomain checks if the provided string is a valid domain name
func IsValidDomain(domain string) bool {
	if len(domain) > 253 {
		return false
	}
	return DomainRegex.MatchString(domain)
}

// IsValidOrigin checks a CORS origin such as https://example.com.
// localhost is accepted so the form can be developed against a local site.
func IsValidOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "localhost" || IsValidDomain(host)
}
