package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ysonawan/duebook/internal/domain"
)

func TestMapCreateEntryError(t *testing.T) {
	opaque := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "opaque error passes through", err: opaque, want: opaque},
		{
			name: "one-reversal index maps to conflict",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: oneReversalIndex},
			want: domain.ErrAlreadyReversed,
		},
		{
			name: "other unique violation passes through",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "ledger_entries_pkey"},
		},
		{
			name: "other pg error passes through",
			err:  &pgconn.PgError{Code: "40001", ConstraintName: oneReversalIndex},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapCreateEntryError(tt.err)

			if tt.want != nil || tt.err == nil {
				if !errors.Is(got, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
				return
			}

			if !errors.Is(got, tt.err) {
				t.Fatalf("expected original error back, got %v", got)
			}
			if errors.Is(got, domain.ErrAlreadyReversed) {
				t.Fatalf("error %v must not map to a reversal conflict", tt.err)
			}
		})
	}
}
