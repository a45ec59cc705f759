package models

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"350000", "350000.00"},
		{" 120000.5 ", "120000.50"},
		{"12.3456", "12.3456"},
		{"12.3400", "12.34"},
		{"999999999999999.9999", "999999999999999.9999"},
	}
	for _, tt := range tests {
		n, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, FormatAmount(n), tt.input)
	}

	for _, input := range []string{"", "-5", "Inf", "+Inf", "NaN", "1e300", "1000000000000000", "1.23456", "1,000", "0x10"} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrInvalidAmount, input)
	}
}

func TestFormatAmount(t *testing.T) {
	// NUMERIC(19,4) values come back from PostgreSQL with four decimals.
	assert.Equal(t, "350000.00", FormatAmount(pgtype.Numeric{Int: big.NewInt(3500000000), Exp: -4, Valid: true}))
	assert.Equal(t, "0.05", FormatAmount(pgtype.Numeric{Int: big.NewInt(5), Exp: -2, Valid: true}))
	assert.Equal(t, "1200.00", FormatAmount(pgtype.Numeric{Int: big.NewInt(12), Exp: 2, Valid: true}))
	assert.Equal(t, "-3.50", FormatAmount(pgtype.Numeric{Int: big.NewInt(-35), Exp: -1, Valid: true}))
	assert.Equal(t, "0.00", FormatAmount(pgtype.Numeric{}))
	assert.Equal(t, "0.00", FormatAmount(pgtype.Numeric{NaN: true, Valid: true}))
}
