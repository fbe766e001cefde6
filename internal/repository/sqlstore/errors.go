package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"

	"lawflow/internal/domain"
)

const (
	pgForeignKeyViolation      = "23503"
	pgUniqueViolation          = "23505"
	sqliteConstraint           = 19
	sqliteConstraintForeignKey = 787
	sqliteConstraintUnique     = 2067
)

// mapWriteError turns a foreign key violation from any supported driver into
// domain.ErrInvalidReference and a unique violation into domain.ErrConflict.
// Other errors are left untouched.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var perr *pq.Error
	if errors.As(err, &perr) {
		switch string(perr.Code) {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, perr.Message)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, perr.Message)
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, pgErr.Message)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
		}
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		constraint := code&0xff == sqliteConstraint
		switch {
		case code == sqliteConstraintForeignKey || (constraint && strings.Contains(sqliteErr.Error(), "FOREIGN KEY")):
			return domain.ErrInvalidReference
		case code == sqliteConstraintUnique || (constraint && strings.Contains(sqliteErr.Error(), "UNIQUE")):
			return domain.ErrConflict
		}
	}
	return err
}
