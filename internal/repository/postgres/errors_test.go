package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"devevents/internal/domain"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), domain.ErrNotFound},
		{"slug unique", &pq.Error{Code: "23505", Constraint: "events_slug_key"}, domain.ErrDuplicateSlug},
		{"connection class", &pq.Error{Code: "08006"}, domain.ErrStoreUnavailable},
		{"bad conn", driver.ErrBadConn, domain.ErrStoreUnavailable},
		{"conn done", sql.ErrConnDone, domain.ErrStoreUnavailable},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, domain.ErrStoreUnavailable},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("other unique constraint is not a slug collision", func(t *testing.T) {
		got := translateError(&pq.Error{Code: "23505", Constraint: "bookings_pkey"})
		assert.NotErrorIs(t, got, domain.ErrDuplicateSlug)
	})
}
