package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const variableTarget = "variable"

// WordTarget is a chapter's word-count goal. A variable target has no fixed
// number and is left out of aggregate progress.
type WordTarget struct {
	Words    int
	Variable bool
}

// NumericTarget returns a fixed target of n words.
func NumericTarget(n int) WordTarget {
	return WordTarget{Words: n}
}

// VariableTarget returns a target without a fixed word count.
func VariableTarget() WordTarget {
	return WordTarget{Variable: true}
}

// IsNumeric reports whether the target has a fixed word count.
func (t WordTarget) IsNumeric() bool {
	return !t.Variable
}

// String renders the target as a number or "variable".
func (t WordTarget) String() string {
	if t.Variable {
		return variableTarget
	}
	return strconv.Itoa(t.Words)
}

// ParseWordTarget parses "variable" or a non-negative integer.
func ParseWordTarget(s string) (WordTarget, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, variableTarget) {
		return VariableTarget(), nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return WordTarget{}, fmt.Errorf("word target must be a number or %q, got %q", variableTarget, s)
	}
	if n < 0 {
		return WordTarget{}, fmt.Errorf("word target must not be negative, got %d", n)
	}
	return NumericTarget(n), nil
}

// MarshalJSON emits a number, or the string "variable".
func (t WordTarget) MarshalJSON() ([]byte, error) {
	if t.Variable {
		return json.Marshal(variableTarget)
	}
	return json.Marshal(t.Words)
}

// UnmarshalJSON accepts a number or a string.
func (t *WordTarget) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed, err := ParseWordTarget(strconv.Itoa(n))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("word target: %w", err)
	}
	parsed, err := ParseWordTarget(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML emits a number, or the string "variable".
func (t WordTarget) MarshalYAML() (interface{}, error) {
	if t.Variable {
		return variableTarget, nil
	}
	return t.Words, nil
}

// UnmarshalYAML accepts a scalar number or "variable".
func (t *WordTarget) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("word target must be a scalar at line %d", value.Line)
	}
	parsed, err := ParseWordTarget(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
