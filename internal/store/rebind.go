package store

import "regexp"

var numberedPlaceholder = regexp.MustCompile(`\$[0-9]+`)

// Rebind rewrites $1..$n placeholders into the form the dialect's driver binds
// positionally. Queries must use each placeholder once, in ascending order.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectSQLite {
		return query
	}
	return numberedPlaceholder.ReplaceAllString(query, "?")
}
