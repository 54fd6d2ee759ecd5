package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// isDuplicateKeyError reports a MySQL/MariaDB unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// IsForeignKeyConstraintError reports a MySQL/MariaDB foreign key failure so
// handlers can answer 400 instead of 500.
func IsForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}

func intArgs(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
