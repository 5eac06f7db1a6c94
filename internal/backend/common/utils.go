package common

import (
	"regexp"
	"sort"
)

// Collection and column names are interpolated into queries and URL paths,
// so they must be plain identifiers.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func ValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// Columns returns the record's column names in a stable order, so every
// row of a multi-row insert binds values in the same sequence.
func Columns(record map[string]any) []string {
	columns := make([]string, 0, len(record))
	for col := range record {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
