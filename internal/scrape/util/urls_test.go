package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostOf(t *testing.T) {
	assert.Equal(t, "acme.com", HostOf("https://ACME.com/careers"))
	assert.Equal(t, "www.acme.com", HostOf("https://www.acme.com"))
	assert.Equal(t, "acme.com:8080", HostOf("http://acme.com:8080/x"))
	assert.Equal(t, "", HostOf("://not a url"))
	assert.Equal(t, "", HostOf("/relative/path"))
}

func TestSameHost(t *testing.T) {
	assert.True(t, SameHost("https://acme.com/a", "https://www.acme.com/b"))
	assert.True(t, SameHost("https://WWW.acme.com", "https://acme.com"))
	assert.False(t, SameHost("https://acme.com", "https://jobs.lever.co/acme"))
	assert.False(t, SameHost("https://acme.com", "/careers"))
	assert.False(t, SameHost("/a", "/b"))
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "https://acme.com/careers",
		ResolveRef("https://acme.com/about/", "/careers"))
	assert.Equal(t, "https://acme.com/about/team",
		ResolveRef("https://acme.com/about/", "team"))
	assert.Equal(t, "https://other.io/jobs",
		ResolveRef("https://acme.com", "https://other.io/jobs"))

	// Fragments never survive resolution.
	assert.Equal(t, "https://acme.com/jobs",
		ResolveRef("https://acme.com", "/jobs#open"))

	// A relative base cannot produce an absolute URL.
	assert.Equal(t, "", ResolveRef("/careers", "team"))
}
