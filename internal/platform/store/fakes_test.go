package store

import (
	"context"
	"errors"
)

// fakeRows iterates over canned values, one []any per row
type fakeRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return errors.New("scan arity")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

type fakeTag struct{ n int64 }

func (t fakeTag) String() string      { return "UPDATE" }
func (t fakeTag) RowsAffected() int64 { return t.n }

// fakeQuerier answers every statement with the same canned result
type fakeQuerier struct {
	rows     *fakeRows
	queryErr error
	affected int64
	execErr  error
	lastSQL  string
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	q.lastSQL = sql
	return fakeTag{q.affected}, q.execErr
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.lastSQL = sql
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	rs, err := q.Query(ctx, sql, args...)
	return fakeRow{rs: rs, err: err}
}

type fakeRow struct {
	rs  Rows
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if !r.rs.Next() {
		return errors.New("no rows")
	}
	return r.rs.Scan(dest...)
}

// fakePinger records pings and closes
type fakePinger struct {
	pingErr  error
	closeErr error
	pinged   int
	closed   bool
}

func (p *fakePinger) Ping(context.Context) error { p.pinged++; return p.pingErr }
func (p *fakePinger) Close() error               { p.closed = true; return p.closeErr }
