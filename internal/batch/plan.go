package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
	"github.com/shinji-kodama/max-parent-pfx-len/internal/sizer"
)

// Plan is a named collection of prefix-length sets.
type Plan struct {
	// Family is the default address family for sets that do not name one.
	// Empty means the caller's default applies.
	Family string `yaml:"family,omitempty" json:"family,omitempty"`

	// Sets are computed independently, in order.
	Sets []Set `yaml:"sets" json:"sets"`
}

// Set is one computation within a plan.
type Set struct {
	// Name identifies the set in output. Defaults to "set N" (1-based).
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Family overrides the plan family for this set.
	Family string `yaml:"family,omitempty" json:"family,omitempty"`

	// Lengths holds the child prefix lengths. It can be a list of numbers
	// or strings, or a single comma-separated string, so interface{} is
	// used to accept all of them during decoding.
	Lengths interface{} `yaml:"lengths" json:"lengths"`
}

// stdinPath is the path that selects standard input in Load.
const stdinPath = "-"

// Load reads a plan from path, picking the format from its extension.
// A path of "-" reads line format from os.Stdin.
func Load(path string) (*Plan, error) {
	if path == stdinPath {
		return ParseLines(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("plan file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json", ".jsonc":
		return ParseJSONC(data)
	default:
		return ParseLines(strings.NewReader(string(data)))
	}
}

// ParseYAML decodes a YAML plan document.
func ParseYAML(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML plan: %w", err)
	}
	return &plan, nil
}

// ParseJSONC decodes a JSON plan document, tolerating // and /* */
// comments and trailing commas.
func ParseJSONC(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(jsonc.ToJSON(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse JSON plan: %w", err)
	}
	return &plan, nil
}

// ParseLines reads line format: each non-blank line is a comma-separated
// list of prefix lengths. Text after '#' is a comment. Sets are named
// after their 1-based line number.
func ParseLines(r io.Reader) (*Plan, error) {
	plan := &Plan{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		plan.Sets = append(plan.Sets, Set{
			Name:    fmt.Sprintf("line %d", lineNo),
			Lengths: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plan lines: %w", err)
	}
	return plan, nil
}

// lengthStrings normalizes the decoded Lengths field into the textual
// form accepted by sizer.Compute.
//
// YAML decodes integers as int and JSON decodes numbers as float64;
// fmt.Sprint renders both without a fractional part when they are whole,
// and leaves a fractional part in place so it fails parsing.
func lengthStrings(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return sizer.SplitList(val), nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case string, int, int64, uint64, float64:
				out = append(out, fmt.Sprint(item))
			default:
				return nil, fmt.Errorf("unsupported lengths element %v (%T)", item, item)
			}
		}
		return out, nil
	case int, int64, uint64, float64:
		return []string{fmt.Sprint(val)}, nil
	default:
		return nil, fmt.Errorf("unsupported lengths value %v (%T)", v, v)
	}
}
