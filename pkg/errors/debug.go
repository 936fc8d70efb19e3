package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const sqliteConstraintPrefix = "constraint failed: "

// ErrorDump is the log-friendly view of an error chain. Database details come
// from pgx on postgres and from the driver message on sqlite tills.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`

	SQLiteConstraint string `json:"sqlite_constraint,omitempty"`
}

// HasDBDetail reports whether the dump carries database specifics.
func (d ErrorDump) HasDBDetail() bool {
	return d.PGCode != "" || d.SQLiteConstraint != ""
}

// Dump flattens an error chain for structured logging.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
		d.Retryable = MetadataFor(te.Code()).Retryable
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGTable = pgxErr.TableName
		d.PGDetail = pgxErr.Detail
		return d
	}

	// e.g. "UNIQUE constraint failed: sales.number"
	msg := err.Error()
	if idx := strings.Index(msg, sqliteConstraintPrefix); idx >= 0 {
		d.SQLiteConstraint = strings.TrimSpace(msg[idx+len(sqliteConstraintPrefix):])
	}
	return d
}
