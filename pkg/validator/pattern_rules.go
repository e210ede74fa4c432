package validator

import (
	"fmt"
	"regexp"
)

// Matches requires value to match re. The pattern is precompiled by the
// caller; description names it in the message.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			return value != "" && re.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a valid %s", description),
		},
	}
}

// Satisfies wraps an arbitrary predicate, for checks no built-in rule covers.
func Satisfies(field string, ok bool, message string) Rule {
	return Rule{
		Check: func() bool {
			return ok
		},
		Error: ValidationError{Field: field, Message: message},
	}
}
