package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// isDuplicateError reports whether err is a unique-key violation. Fact
// services rely on the database constraint, not a read-then-write check,
// so racing duplicate inserts surface here.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	// sqlite phrasing, used by the test databases
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
