package util

import (
	"net/url"
	"strings"
)

// HostOf returns the lowercased host of a raw URL, or "" when unparseable.
func HostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// SameHost reports whether two URLs point at the same network host.
// A www. prefix on either side is ignored; an empty host on either
// side never matches.
func SameHost(a, b string) bool {
	ha := strings.TrimPrefix(HostOf(a), "www.")
	hb := strings.TrimPrefix(HostOf(b), "www.")
	if ha == "" || hb == "" {
		return false
	}
	return ha == hb
}

// ResolveRef resolves href against base, returning "" when either side is
// unparseable. Fragments are dropped so anchors like /jobs#open do not
// produce near-duplicate URLs.
func ResolveRef(base, href string) string {
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return ""
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := b.ResolveReference(h)
	abs.Fragment = ""
	if abs.Scheme == "" || abs.Host == "" {
		return ""
	}
	return abs.String()
}
