package storage

import (
	"database/sql/driver"
	"strings"

	sqlitedriver "modernc.org/sqlite"
)

// UnicodeLowerFunc is a SQL function that lower-cases text with Go's Unicode rules.
// SQLite's built-in LOWER only folds ASCII, so "ÉLES" would never match "éles".
const UnicodeLowerFunc = "unicode_lower"

func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction(UnicodeLowerFunc, 1, unicodeLower)
}

// unicodeLower implements unicode_lower(x). NULL stays NULL; non-text values pass through.
func unicodeLower(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
