package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"jobly/internal/core/errs"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// storeErr keeps typed errors as they are, maps constraint violations and
// wraps everything else as internal. fkMsg replaces the default message of
// a foreign key violation.
func storeErr(op string, err error, fkMsg ...string) error {
	if err == nil {
		return nil
	}
	var typed *errs.Error
	if errors.As(err, &typed) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &errs.Error{Kind: errs.KindAlreadyExists, Msg: "record already exists", Err: err}
		case pgForeignKeyViolation:
			msg := "referenced record does not exist"
			if len(fkMsg) > 0 {
				msg = fkMsg[0]
			}
			return &errs.Error{Kind: errs.KindInvalidArgument, Msg: msg, Err: err}
		}
	}
	return errs.Internal("", fmt.Errorf("%s: %w", op, err))
}
