package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadProfile_ValidFile(t *testing.T) {
	path := writeProfile(t, `{
		"name": "Ada",
		"summary": "Backend engineer moving into web3",
		"skills": ["go", "solidity"],
		"target_roles": ["smart contract engineer"],
		"preferred_locations": ["remote", "Berlin"],
		"min_experience_years": 3,
		"deal_breakers": ["unpaid"]
	}`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"go", "solidity"}, p.Skills)
	assert.Equal(t, 3, p.MinExperienceYears)
	assert.Equal(t, []string{"unpaid"}, p.DealBreakers)
}

func TestLoadProfile_MissingFileFallsBackToDefault(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Skills)
	assert.NotEmpty(t, p.TargetRoles)
}

func TestLoadProfile_SchemaViolationFailsLoudly(t *testing.T) {
	path := writeProfile(t, `{"name": "Ada", "skills": ["go"]}`)

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_roles")
}

func TestLoadProfile_UnknownFieldRejected(t *testing.T) {
	path := writeProfile(t, `{
		"name": "Ada",
		"skills": ["go"],
		"target_roles": ["engineer"],
		"nickname": "A"
	}`)

	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestLoadProfile_MalformedJSONFails(t *testing.T) {
	path := writeProfile(t, `{"name": `)

	_, err := LoadProfile(path)
	require.Error(t, err)
}
