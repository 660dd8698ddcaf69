// Package replay drives an editor from a scripted sequence of device
// actions. A script is the headless counterpart of a user at a keyboard:
// every step edits the surface the way a browser would and then delivers
// the matching device events.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/fsutil"
)

// ErrInvalidStep is returned for a step that names no action or several.
var ErrInvalidStep = errors.New("invalid step")

// Script is a named sequence of steps with optional expectations.
type Script struct {
	Name string `yaml:"name"`

	// Config overrides the editor configuration for this script only.
	Config *config.Config `yaml:"config,omitempty"`

	Steps []Step `yaml:"steps"`

	Expect *Expect `yaml:"expect,omitempty"`

	// Path is the file the script was loaded from, if any.
	Path string `yaml:"-"`
}

// Step is one user action. Exactly one field is set.
type Step struct {
	// Type inserts text at the caret.
	Type *string `yaml:"type,omitempty"`

	// Enter presses the Enter key this many times.
	Enter int `yaml:"enter,omitempty"`

	// Backspace deletes this many runes before the caret.
	Backspace int `yaml:"backspace,omitempty"`

	// Click places the caret and clicks.
	Click *Position `yaml:"click,omitempty"`

	// Select sets a range selection without any device event.
	Select *Position `yaml:"select,omitempty"`

	// Arrow presses an arrow key: left, right, up or down.
	Arrow string `yaml:"arrow,omitempty"`

	// Key presses an arbitrary key.
	Key string `yaml:"key,omitempty"`
}

// Position addresses a block by id, by a CSS selector matching the block
// or an element inside it, or by its index in the document.
type Position struct {
	Block    string `yaml:"block,omitempty"`
	Selector string `yaml:"selector,omitempty"`
	Index    int    `yaml:"index,omitempty"`
	Offset   int    `yaml:"offset,omitempty"`

	// End extends Select into a range. Ignored by Click.
	End *int `yaml:"end,omitempty"`
}

// Expect lists outputs a script run must produce.
type Expect struct {
	Markdown *string  `yaml:"markdown,omitempty"`
	HTML     *string  `yaml:"html,omitempty"`
	Active   string   `yaml:"active,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// Parse decodes a script from YAML and validates its steps.
func Parse(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range script.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return script, nil
}

// Load reads and parses the script at path.
func Load(ctx context.Context, path string) (*Script, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	script, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	script.Path = path
	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// Action names the step's action.
func (s Step) Action() string {
	actions := s.actions()
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

func (s Step) actions() []string {
	var set []string
	if s.Type != nil {
		set = append(set, "type")
	}
	if s.Enter != 0 {
		set = append(set, "enter")
	}
	if s.Backspace != 0 {
		set = append(set, "backspace")
	}
	if s.Click != nil {
		set = append(set, "click")
	}
	if s.Select != nil {
		set = append(set, "select")
	}
	if s.Arrow != "" {
		set = append(set, "arrow")
	}
	if s.Key != "" {
		set = append(set, "key")
	}
	return set
}

// Validate checks that the step names exactly one well-formed action.
func (s Step) Validate() error {
	actions := s.actions()
	switch len(actions) {
	case 0:
		return fmt.Errorf("%w: no action", ErrInvalidStep)
	case 1:
	default:
		return fmt.Errorf("%w: several actions (%s)", ErrInvalidStep, strings.Join(actions, ", "))
	}

	switch {
	case s.Enter < 0 || s.Backspace < 0:
		return fmt.Errorf("%w: negative count", ErrInvalidStep)
	case s.Arrow != "":
		if _, ok := arrowKeys[strings.ToLower(s.Arrow)]; !ok {
			return fmt.Errorf("%w: unknown arrow %q", ErrInvalidStep, s.Arrow)
		}
	case s.Click != nil:
		return s.Click.validate()
	case s.Select != nil:
		return s.Select.validate()
	}
	return nil
}

func (p *Position) validate() error {
	if p.Offset < 0 || p.Index < 0 || (p.End != nil && *p.End < 0) {
		return fmt.Errorf("%w: negative position", ErrInvalidStep)
	}
	if p.Block != "" && p.Selector != "" {
		return fmt.Errorf("%w: both block and selector given", ErrInvalidStep)
	}
	if p.Selector != "" {
		if _, err := cascadia.Compile(p.Selector); err != nil {
			return fmt.Errorf("%w: selector %q: %w", ErrInvalidStep, p.Selector, err)
		}
	}
	return nil
}
