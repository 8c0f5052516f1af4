package extract

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultPrompt is the extraction instruction used when no profile is
// selected.
const DefaultPrompt = `Identify the most insightful passages in this document: concrete tools, referenced media, clear explanations, illuminating analogies, and mental models. Prefer short, self-contained passages over long quotes.`

// Profile is a named extraction instruction, optionally pinning a sampling
// temperature.
type Profile struct {
	Instruction string   `yaml:"instruction"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// DefaultProfile returns the built-in extraction profile.
func DefaultProfile() Profile {
	return Profile{Instruction: DefaultPrompt}
}

// LoadProfiles reads named extraction profiles from a YAML file:
//
//	profiles:
//	  research:
//	    instruction: "Extract methodology insights..."
//	    temperature: 0.1
//
// Profiles with an empty instruction inherit the default one.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read profiles %s", path)
	}

	var wrapper struct {
		Profiles map[string]Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "extract: parse profiles")
	}

	for name, p := range wrapper.Profiles {
		if p.Instruction == "" {
			p.Instruction = DefaultPrompt
			wrapper.Profiles[name] = p
		}
	}

	return wrapper.Profiles, nil
}
