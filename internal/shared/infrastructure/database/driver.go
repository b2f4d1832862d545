package database

import (
	"slices"
	"strconv"
	"strings"
)

// Driver names a supported store.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string { return string(d) }

// IsValid reports whether d is a supported driver.
func (d Driver) IsValid() bool {
	return d == DriverPostgres || d == DriverSQLite
}

var (
	sqlitePrefixes   = []string{"sqlite://", "file:"}
	sqliteSuffixes   = []string{".db", ".sqlite", ".sqlite3"}
	postgresPrefixes = []string{"postgres://", "postgresql://"}
)

// DetectDriver guesses the driver from a database URL. An empty URL means
// the local SQLite file; anything unrecognised is handed to PostgreSQL.
func DetectDriver(url string) Driver {
	matches := func(list []string, match func(string, string) bool) bool {
		return slices.ContainsFunc(list, func(s string) bool { return match(url, s) })
	}
	switch {
	case url == "":
		return DriverSQLite
	case matches(postgresPrefixes, strings.HasPrefix):
		return DriverPostgres
	case matches(sqlitePrefixes, strings.HasPrefix), matches(sqliteSuffixes, strings.HasSuffix):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// Rebind rewrites ? placeholders into the driver's native form.
// Repositories write queries with ?; PostgreSQL needs $1, $2, ...
// Question marks inside single-quoted literals are left alone.
func (d Driver) Rebind(query string) string {
	if d != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
