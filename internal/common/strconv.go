package common

import "strconv"

// AtoiDefault converts a query parameter to an integer, falling back to the
// default when empty or unparsable. Report handlers use it for month/year.
func AtoiDefault(value string, def int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
