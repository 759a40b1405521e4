package querybuilder

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect is the database engine the compiled SQL targets. It decides
// identifier quoting, text casting, placeholder format and which operators
// are legal.
type Dialect string

const (
	DialectPostgres  Dialect = "postgres"
	DialectMySQL     Dialect = "mysql"
	DialectMariaDB   Dialect = "mariadb"
	DialectSQLite    Dialect = "sqlite"
	DialectSQLServer Dialect = "sqlserver"
	DialectOracle    Dialect = "oracle"
)

// ParseDialect normalizes a configured dialect name. Unrecognized names are
// kept as-is and fall into the generic emission paths.
func ParseDialect(name string) Dialect {
	return Dialect(strings.ToLower(strings.TrimSpace(name)))
}

// QuoteChar returns the identifier quote character: backtick for the
// MySQL family, double quote for everything else.
func (d Dialect) QuoteChar() string {
	switch d {
	case DialectMySQL, DialectMariaDB:
		return "`"
	default:
		return `"`
	}
}

// Quote wraps a single identifier in the dialect's quote character.
func (d Dialect) Quote(ident string) string {
	q := d.QuoteChar()
	return q + ident + q
}

// TextCast emits the dialect's cast of a column reference to a text type.
// Applied by every LIKE-family operator so pattern matching behaves the
// same across column types.
func (d Dialect) TextCast(column string) string {
	switch d {
	case DialectPostgres:
		return column + "::text"
	case DialectSQLite:
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	case DialectMySQL, DialectMariaDB:
		return fmt.Sprintf("CAST(%s AS CHAR)", column)
	case DialectSQLServer:
		return fmt.Sprintf("CAST(%s AS NVARCHAR(MAX))", column)
	case DialectOracle:
		return fmt.Sprintf("TO_CHAR(%s)", column)
	default:
		return fmt.Sprintf("CAST(%s AS VARCHAR)", column)
	}
}

// PlaceholderFormat returns the squirrel placeholder format matching the
// dialect's driver.
func (d Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	switch d {
	case DialectPostgres:
		return squirrel.Dollar
	case DialectOracle:
		return squirrel.Colon
	case DialectSQLServer:
		return squirrel.AtP
	default:
		return squirrel.Question
	}
}

// SupportsArrayOperators reports whether the array containment/overlap
// operators are legal under this dialect.
func (d Dialect) SupportsArrayOperators() bool {
	return d == DialectPostgres
}
