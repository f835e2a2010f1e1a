// Package sqlutil provides SQL dialect helpers for framepairs.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect selects identifier quoting and statement variants.
type Dialect string

const (
	// MySQL quotes identifiers with backticks.
	MySQL Dialect = "mysql"
	// SQLite quotes identifiers with double quotes.
	SQLite Dialect = "sqlite"
)

// ParseDialect maps a store driver name to a dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// QuoteIdentifier quotes an identifier for the dialect, doubling any
// embedded quote character.
// Example (mysql): "my_table" -> "`my_table`"
// Example (sqlite): "my_table" -> "\"my_table\""
func (d Dialect) QuoteIdentifier(name string) string {
	if d == SQLite {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return QuoteIdentifier(name)
}

// QuoteIdentifier quotes a MySQL identifier (table name, column name) with backticks.
// It escapes any existing backticks by doubling them.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex restricts identifiers to alphanumerics and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name is a valid identifier.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier after validating it.
// Use this when identifiers come from configuration.
func (d Dialect) QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return d.QuoteIdentifier(name), nil
}

// Placeholders returns n comma separated groups of width "?" markers,
// e.g. Placeholders(2, 3) = "(?, ?, ?), (?, ?, ?)".
func Placeholders(n, width int) string {
	if n <= 0 || width <= 0 {
		return ""
	}
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
	return strings.TrimSuffix(strings.Repeat(group+", ", n), ", ")
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
