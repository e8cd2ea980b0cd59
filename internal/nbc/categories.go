package nbc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportanceCategory is the building importance category of Table 4.1.2.1.
// The zero value is Normal.
type ImportanceCategory int

const (
	Normal ImportanceCategory = iota
	Low
	High
	PostDisaster
)

var importanceNames = map[ImportanceCategory]string{
	Low:          "low",
	Normal:       "normal",
	High:         "high",
	PostDisaster: "post-disaster",
}

func (c ImportanceCategory) String() string {
	if s, ok := importanceNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ImportanceCategory(%d)", int(c))
}

// Valid reports whether c is one of the four code categories.
func (c ImportanceCategory) Valid() bool {
	_, ok := importanceNames[c]
	return ok
}

// ParseImportance accepts the category names used on the command line
// ("low", "normal", "high", "post-disaster"), case-insensitively.
func ParseImportance(s string) (ImportanceCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "postdisaster" {
		key = "post-disaster"
	}
	for c, name := range importanceNames {
		if name == key {
			return c, nil
		}
	}
	return Normal, fmt.Errorf("%w: unknown importance category %q", ErrInvalidInput, s)
}

// UnmarshalYAML accepts the names understood by ParseImportance.
func (c *ImportanceCategory) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseImportance(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// LimitState selects the ultimate or serviceability check.
type LimitState int

const (
	ULS LimitState = iota
	SLS
)

func (s LimitState) String() string {
	switch s {
	case ULS:
		return "ULS"
	case SLS:
		return "SLS"
	}
	return fmt.Sprintf("LimitState(%d)", int(s))
}

// Valid reports whether s is ULS or SLS.
func (s LimitState) Valid() bool {
	return s == ULS || s == SLS
}

// ParseLimitState accepts "uls" or "sls", case-insensitively.
func ParseLimitState(s string) (LimitState, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ULS":
		return ULS, nil
	case "SLS":
		return SLS, nil
	}
	return ULS, fmt.Errorf("%w: unknown limit state %q", ErrInvalidInput, s)
}

// UnmarshalYAML accepts "uls" or "sls".
func (s *LimitState) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	v, err := ParseLimitState(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
