package models

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// amountPattern matches what fits NUMERIC(19,4): up to 15 integer and 4 fractional digits
var amountPattern = regexp.MustCompile(`^\d{1,15}(\.\d{1,4})?$`)

// ErrInvalidAmount is returned by ParseAmount
var ErrInvalidAmount = errors.New("amount must be a non-negative number below 1,000,000,000,000,000 with at most 4 decimal places")

// NewAmount returns a whole amount
func NewAmount(units int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(units), Valid: true}
}

// ParseAmount reads a plain decimal amount such as "120000.50".
// Exponents, signs, NaN and infinities are rejected.
func ParseAmount(value string) (pgtype.Numeric, error) {
	value = strings.TrimSpace(value)
	if !amountPattern.MatchString(value) {
		return pgtype.Numeric{}, ErrInvalidAmount
	}

	whole, frac, _ := strings.Cut(value, ".")
	digits, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return pgtype.Numeric{}, ErrInvalidAmount
	}
	return pgtype.Numeric{Int: digits, Exp: int32(-len(frac)), Valid: true}, nil
}

// FormatAmount renders n with two decimals, or up to four when the value needs them.
func FormatAmount(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil || n.NaN || n.InfinityModifier != pgtype.Finite {
		return "0.00"
	}

	digits := new(big.Int).Set(n.Int)
	exp := int(n.Exp)
	if exp > 0 {
		digits.Mul(digits, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		exp = 0
	}

	sign := ""
	if digits.Sign() < 0 {
		sign = "-"
		digits.Neg(digits)
	}

	s := digits.String()
	scale := -exp
	if len(s) <= scale {
		s = strings.Repeat("0", scale-len(s)+1) + s
	}
	whole, frac := s[:len(s)-scale], strings.TrimRight(s[len(s)-scale:], "0")
	if len(frac) < 2 {
		frac += strings.Repeat("0", 2-len(frac))
	}
	return sign + whole + "." + frac
}
