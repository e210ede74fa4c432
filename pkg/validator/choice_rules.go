package validator

import (
	"fmt"
	"strings"
)

// InListCaseInsensitive requires value to equal one of allowed, ignoring case.
func InListCaseInsensitive(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return containsFold(allowed, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of (case-insensitive): %s", strings.Join(allowed, ", ")),
		},
	}
}

// EachInListCaseInsensitive applies InListCaseInsensitive to every element.
// An empty slice passes. The message names the first offending value.
func EachInListCaseInsensitive(field string, values, allowed []string) Rule {
	bad, found := "", false
	for _, v := range values {
		if !containsFold(allowed, v) {
			bad, found = v, true
			break
		}
	}

	return Rule{
		Check: func() bool {
			return !found
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("unknown value %q, must be one of (case-insensitive): %s", bad, strings.Join(allowed, ", ")),
		},
	}
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
