package domain

import (
	"sort"
	"strings"
)

// ValidationErrors is a field-keyed map of validation messages returned by
// mutating intents. A non-empty map means the intent was rejected and no
// state was written.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for i, field := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(v[field])
	}
	return b.String()
}
