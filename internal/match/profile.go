package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Profile is the candidate every job gets scored against.
type Profile struct {
	Name               string   `json:"name"`
	Summary            string   `json:"summary"`
	Skills             []string `json:"skills"`
	TargetRoles        []string `json:"target_roles"`
	PreferredLocations []string `json:"preferred_locations"`
	MinExperienceYears int      `json:"min_experience_years"`
	DealBreakers       []string `json:"deal_breakers"`
}

const profileSchema = `{
  "type": "object",
  "required": ["name", "skills", "target_roles"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "summary": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "target_roles": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "preferred_locations": {"type": "array", "items": {"type": "string"}},
    "min_experience_years": {"type": "integer", "minimum": 0},
    "deal_breakers": {"type": "array", "items": {"type": "string"}}
  },
  "additionalProperties": false
}`

// LoadProfile reads and schema-checks the profile. A missing file falls back
// to the generic default so a fresh install can still run end to end; a
// present-but-broken file is a user error and fails loudly.
func LoadProfile(path string) (Profile, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[match] no profile at %s, scoring against the default profile", path)
		return DefaultProfile(), nil
	}
	if err != nil {
		return Profile{}, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileSchema),
		gojsonschema.NewBytesLoader(b),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("validate profile %s: %w", path, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Profile{}, fmt.Errorf("profile %s invalid: %s", path, strings.Join(msgs, "; "))
	}

	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

func DefaultProfile() Profile {
	return Profile{
		Name:               "Unnamed candidate",
		Summary:            "Generalist open to early-stage startup roles.",
		Skills:             []string{"communication", "project management"},
		TargetRoles:        []string{"operations", "product"},
		PreferredLocations: []string{"remote"},
	}
}
