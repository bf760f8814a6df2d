package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		state string
		want  ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23514", ErrorCodeValidation},
		{"23502", ErrorCodeValidation},
		{"22001", ErrorCodeValidation},
		{"22P02", ErrorCodeInvalidArgument},
		{"57P03", ErrorCodeUnavailable},
		{"40P01", ErrorCodeDB},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: c.state})
		if got, ok := PgCode(wrapped); !ok || got != c.want {
			t.Fatalf("PgCode(%s) = %v,%v want %v", c.state, got, ok, c.want)
		}
	}
	if _, ok := PgCode(stderrs.New("conn reset")); ok {
		t.Fatal("non pg error reported as pg")
	}
}

func TestFromPostgres(t *testing.T) {
	t.Parallel()

	if FromPostgres(nil, "x") != nil || FromPostgresWithField(nil, "x") != nil {
		t.Fatal("nil must pass through")
	}
	err := FromPostgres(stderrs.New("conn reset"), "list posts")
	if CodeOf(err) != ErrorCodeDB || KindFor(err) != KindInternal {
		t.Fatalf("got %v %s", CodeOf(err), KindFor(err))
	}
	dup := FromPostgres(&pgconn.PgError{Code: "23505", ConstraintName: "posts_pkey"}, "create post")
	if CodeOf(dup) != ErrorCodeDuplicateKey {
		t.Fatalf("code = %v", CodeOf(dup))
	}
}

func TestFromPostgresWithField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *pgconn.PgError
		want string
	}{
		{"generated check", &pgconn.PgError{Code: "23514", TableName: "posts", ConstraintName: "posts_content_check"}, "content"},
		{"check without table", &pgconn.PgError{Code: "23514", ConstraintName: "posts_content_check"}, "content"},
		{"not null column", &pgconn.PgError{Code: "23502", TableName: "posts", ColumnName: "author_id"}, "authorId"},
		{"primary key", &pgconn.PgError{Code: "23505", ConstraintName: "posts_pkey"}, ""},
		{"nothing named", &pgconn.PgError{Code: "22P02"}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			e, ok := As(FromPostgresWithField(c.in, "create post"))
			if !ok || e.Field() != c.want {
				t.Fatalf("field = %q, want %q", e.Field(), c.want)
			}
		})
	}
}

func TestCamel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"content": "content", "author_id": "authorId", "created_at": "createdAt", "": ""} {
		if got := camel(in); got != want {
			t.Fatalf("camel(%q) = %q", in, got)
		}
	}
}
