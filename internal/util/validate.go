package util

import (
	"fmt"
	"regexp"
	"strings"
)

// Check is a single predicate applied to one request field.
type Check func(field, value string) error

// Rule binds a field name and its submitted value to the checks it must pass.
// Handlers declare each operation's required-field contract as one rule table
// instead of repeated inline conditionals.
type Rule struct {
	Field  string
	Value  string
	Checks []Check
}

// Validate evaluates rules in order and returns the first violation.
func Validate(rules ...Rule) error {
	for _, rule := range rules {
		for _, check := range rule.Checks {
			if err := check(rule.Field, rule.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func EmailFormat(field, value string) error {
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("invalid %s format", field)
	}
	return nil
}

func MinLen(n int) Check {
	return func(field, value string) error {
		if len(value) < n {
			return fmt.Errorf("%s must be at least %d characters long", field, n)
		}
		return nil
	}
}
