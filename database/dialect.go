package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// IsSQLite reports whether the connection uses SQLite.
func IsSQLite(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == DialectSQLite
}

// CaseInsensitiveLikeExpr returns a case-insensitive LIKE condition on column.
// Backslash escapes wildcards in the argument; see ContainsPattern.
func CaseInsensitiveLikeExpr(db *gorm.DB, column string) string {
	if IsSQLite(db) {
		return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column)
	}
	return fmt.Sprintf(`%s ILIKE ? ESCAPE '\'`, column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds the LIKE argument matching value anywhere in the
// column. LIKE wildcards in value match literally.
func ContainsPattern(db *gorm.DB, value string) string {
	if IsSQLite(db) {
		value = strings.ToLower(value)
	}
	return "%" + likeEscaper.Replace(value) + "%"
}
