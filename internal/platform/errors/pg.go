package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStates maps the SQLSTATEs the posts store can raise to project codes.
// Anything else from the server is a plain DB error
var sqlStates = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeValidation,      // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// PgError returns the *pgconn.PgError behind err, if any
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// PgCode maps err to a project code. ok is false when err did not come from postgres
func PgCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := sqlStates[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with the mapped code and msg. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := PgCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresWithField is FromPostgres plus the offending field, when postgres names one
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	if pgErr, ok := PgError(err); ok {
		if f := pgField(pgErr); f != "" {
			return WithField(out, f)
		}
	}
	return out
}

// pgField derives the json field name from the column, or from a generated
// check constraint name such as posts_content_check. Keys are never fields
func pgField(e *pgconn.PgError) string {
	col := strings.TrimSpace(e.ColumnName)
	if col == "" {
		c := strings.TrimSpace(e.ConstraintName)
		if !strings.HasSuffix(c, "_check") {
			return ""
		}
		c = strings.TrimSuffix(c, "_check")
		if e.TableName != "" && strings.HasPrefix(c, e.TableName+"_") {
			col = strings.TrimPrefix(c, e.TableName+"_")
		} else if i := strings.Index(c, "_"); i >= 0 {
			col = c[i+1:]
		}
	}
	return camel(col)
}

// camel turns author_id into authorId
func camel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 && b.Len() > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		b.WriteString(p)
	}
	return b.String()
}
