// Package scenario loads YAML-driven test scenarios and executes them
// through the wrapped page actions.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step actions understood by the runner.
const (
	ActionNavigate     = "navigate"
	ActionClick        = "click"
	ActionFill         = "fill"
	ActionWaitVisible  = "wait_visible"
	ActionAssertText   = "assert_text"
	ActionCheckVisible = "check_visible"
)

// Step is a single scripted interaction.
type Step struct {
	Action   string `yaml:"action"`
	URL      string `yaml:"url,omitempty"`
	Selector string `yaml:"selector,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Expected string `yaml:"expected,omitempty"`
}

// Scenario is one scripted test flow.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load parses and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the scenario shape before anything touches a browser.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario has no steps")
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st *Step) validate() error {
	switch st.Action {
	case ActionNavigate:
		if st.URL == "" {
			return fmt.Errorf("navigate requires url")
		}
	case ActionClick, ActionWaitVisible, ActionCheckVisible:
		if st.Selector == "" {
			return fmt.Errorf("%s requires selector", st.Action)
		}
	case ActionFill:
		if st.Selector == "" {
			return fmt.Errorf("fill requires selector")
		}
	case ActionAssertText:
		if st.Selector == "" {
			return fmt.Errorf("assert_text requires selector")
		}
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}
