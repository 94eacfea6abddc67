package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is the largest amount a single invoice may carry ($1,000,000,000.00).
const MaxAmountCents int64 = 100_000_000_000

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a number.
	ErrInvalidAmount = errors.New("invalid amount")

	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxAmountCents)
)

// ParseAmount parses a dollar amount, rounding half away from zero to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d.Round(2), nil
}

// AmountInRange reports whether d is above zero and at most MaxAmountCents
// once rounded to cents. Amounts in range convert to cents without overflow.
func AmountInRange(d decimal.Decimal) bool {
	cents := d.Round(2).Mul(hundred)
	return cents.IsPositive() && cents.LessThanOrEqual(maxCents)
}

// ToCents converts a dollar amount into integer cents. Callers check
// AmountInRange first; larger values do not fit in an int64.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(hundred).IntPart()
}

// FormatCents renders cents as US dollars with thousands separators, e.g. "$1,234.50".
func FormatCents(cents int64) string {
	d := decimal.New(cents, -2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
