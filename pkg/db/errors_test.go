package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name: "sqlite wording",
			err:  errors.New("UNIQUE constraint failed: items.sku"),
			want: true,
		},
		{
			name: "postgres wording",
			err:  errors.New(`duplicate key value violates unique constraint "idx_items_sku"`),
			want: true,
		},
		{
			name:       "constraint name match",
			err:        errors.New(`constraint violation on idx_users_username`),
			constraint: "username",
			want:       true,
		},
		{
			name: "unrelated error",
			err:  errors.New("disk I/O error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsUniqueViolation(tc.err, tc.constraint))
		})
	}
}
