package repo

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

func TestMapErr(t *testing.T) {
	c := qt.New(t)
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, models.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), models.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, models.ErrConflict},
		{"fk violation", &pgconn.PgError{Code: "23503"}, models.ErrNotFound},
	}
	for _, tc := range cases {
		c.Assert(mapErr(tc.in), qt.Equals, tc.want, qt.Commentf("%s", tc.name))
	}

	// Anything else passes through untouched.
	other := errors.New("connection reset")
	c.Assert(mapErr(other), qt.Equals, other)
	serialization := &pgconn.PgError{Code: "40001"}
	c.Assert(mapErr(serialization), qt.Equals, error(serialization))
}
