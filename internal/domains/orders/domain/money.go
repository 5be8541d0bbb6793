package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point amount in minor units (cents). The wire and display
// form is always two fractional digits, e.g. "29.99".
type Money int64

// ParseMoney converts a decimal string with at most two fractional digits.
func ParseMoney(value string) (Money, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("price is empty")
	}
	whole, frac, found := strings.Cut(value, ".")
	if found && len(frac) > 2 {
		return 0, fmt.Errorf("price %q has more than two fractional digits", value)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", value)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", value)
	}
	if strings.HasPrefix(whole, "-") {
		cents = -cents
	}
	return Money(units*100 + cents), nil
}

// Cents exposes the raw minor-unit value for persistence.
func (m Money) Cents() int64 { return int64(m) }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a quoted decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
