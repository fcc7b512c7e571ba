package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitePolicyDefaultAllowsEverything(t *testing.T) {
	policy := NewSitePolicySection()

	assert.True(t, policy.IsSiteAllowed("https://example.com/apply"))
	assert.True(t, policy.IsSiteAllowed("http://internal.corp:8080/form"))
}

func TestSitePolicyAllowList(t *testing.T) {
	policy := NewSitePolicySection()
	require.NoError(t, policy.SetPatterns([]string{"*.example.com", "jobs.acme.io"}, nil))

	assert.True(t, policy.IsSiteAllowed("https://www.example.com/apply"))
	assert.True(t, policy.IsSiteAllowed("https://jobs.acme.io/form"))
	assert.False(t, policy.IsSiteAllowed("https://evil.com/apply"))
}

func TestSitePolicyDeniedWins(t *testing.T) {
	policy := NewSitePolicySection()
	require.NoError(t, policy.SetPatterns([]string{"*.example.com"}, []string{"admin.example.com"}))

	assert.True(t, policy.IsSiteAllowed("https://www.example.com/"))
	assert.False(t, policy.IsSiteAllowed("https://admin.example.com/"))
}

func TestSitePolicyPathPatterns(t *testing.T) {
	policy := NewSitePolicySection()
	require.NoError(t, policy.SetPatterns(nil, []string{"example.com/banking/*"}))

	assert.False(t, policy.IsSiteAllowed("https://example.com/banking/transfer"))
	assert.True(t, policy.IsSiteAllowed("https://example.com/careers"))
}

func TestSitePolicyHostMatchIsCaseInsensitive(t *testing.T) {
	policy := NewSitePolicySection()
	require.NoError(t, policy.SetPatterns([]string{"*.Example.COM"}, nil))

	assert.True(t, policy.IsSiteAllowed("https://WWW.EXAMPLE.COM/apply"))
}

func TestSitePolicyRejectsUnparseableURL(t *testing.T) {
	policy := NewSitePolicySection()

	assert.False(t, policy.IsSiteAllowed("not a url"))
	assert.False(t, policy.IsSiteAllowed(""))
}

func TestSitePolicyInvalidPattern(t *testing.T) {
	policy := NewSitePolicySection()

	err := policy.SetPatterns([]string{"[invalid"}, nil)
	assert.Error(t, err)
}

func TestSitePolicyDataRoundTrip(t *testing.T) {
	policy := NewSitePolicySection()
	require.NoError(t, policy.SetPatterns([]string{"*.example.com"}, []string{"evil.com"}))

	fresh := NewSitePolicySection()
	require.NoError(t, fresh.SetData(policy.Data()))

	assert.True(t, fresh.IsSiteAllowed("https://www.example.com/"))
	assert.False(t, fresh.IsSiteAllowed("https://evil.com/"))
}
