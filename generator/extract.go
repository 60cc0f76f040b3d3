package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrNoPayload means no parsable JSON object was found in the response.
	ErrNoPayload = errors.New("no JSON object found in provider response")
	// ErrBadShape means the object parsed but misses the required structure.
	ErrBadShape = errors.New("provider response has wrong shape")
)

// packageSchema pins only the load-bearing shape. Extra fields are allowed
// and optional fields may be missing; providers are not trusted beyond this.
const packageSchema = `{
  "type": "object",
  "required": ["screenplay", "shot_design", "sound_design"],
  "properties": {
    "screenplay": {"type": "string"},
    "shot_design": {"type": "array"},
    "sound_design": {"type": "array"}
  }
}`

var compiledPackageSchema = jsonschema.MustCompileString("production_package.json", packageSchema)

// StripFences removes a wrapping markdown code block, if any. Models often
// fence their answer even when told not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop the language tag line, e.g. "json".
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractPackage recovers a ProductionPackage from untrusted provider text:
// strip fences, take the first "{" through the last "}", check the span
// against the lenient schema, unmarshal, then enforce that shot numbers are
// positive and unique within their scene.
func ExtractPackage(raw string) (ProductionPackage, error) {
	body := StripFences(raw)
	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return ProductionPackage{}, ErrNoPayload
	}
	span := body[start : end+1]

	var probe any
	if err := json.Unmarshal([]byte(span), &probe); err != nil {
		return ProductionPackage{}, fmt.Errorf("%w: %v", ErrNoPayload, err)
	}
	if err := compiledPackageSchema.Validate(probe); err != nil {
		return ProductionPackage{}, fmt.Errorf("%w: %v", ErrBadShape, err)
	}

	var pkg ProductionPackage
	if err := json.Unmarshal([]byte(span), &pkg); err != nil {
		return ProductionPackage{}, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	if pkg.ShotDesign == nil {
		pkg.ShotDesign = []SceneShots{}
	}
	if pkg.SoundDesign == nil {
		pkg.SoundDesign = []SceneSound{}
	}
	for _, scene := range pkg.ShotDesign {
		seen := make(map[int]bool, len(scene.Shots))
		for _, shot := range scene.Shots {
			if shot.Number <= 0 || seen[shot.Number] {
				return ProductionPackage{}, fmt.Errorf("%w: scene %q has invalid shot number %d", ErrBadShape, scene.ID, shot.Number)
			}
			seen[shot.Number] = true
		}
	}
	return pkg, nil
}
