package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Decimal is an arbitrary-precision decimal number: unscaled * 10^-scale.
type Decimal struct {
	unscaled *big.Int
	scale    int32
	// negativeZero keeps the sign of a zero literal such as -0.0
	negativeZero bool
}

// NewDecimal creates a decimal from an unscaled integer and scale.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	if unscaled == nil {
		unscaled = new(big.Int)
	}
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

// ParseDecimal parses a JSON number literal without losing precision.
func ParseDecimal(literal string) (Decimal, error) {
	s := literal
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}
	exponent := 0
	if i := strings.IndexAny(s, "eE"); i != -1 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Decimal{}, fmt.Errorf("invalid decimal %q: %w", literal, err)
		}
		exponent = exp
		s = s[:i]
	}
	integer, fraction := s, ""
	if i := strings.IndexByte(s, '.'); i != -1 {
		integer, fraction = s[:i], s[i+1:]
	}
	digits := integer + fraction
	if digits == "" {
		return Decimal{}, fmt.Errorf("invalid decimal %q", literal)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Decimal{}, fmt.Errorf("invalid decimal %q", literal)
		}
	}
	scale := int64(len(fraction)) - int64(exponent)
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return Decimal{}, fmt.Errorf("decimal %q: exponent out of range", literal)
	}
	unscaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal %q", literal)
	}
	if negative {
		unscaled.Neg(unscaled)
	}
	return Decimal{unscaled: unscaled, scale: int32(scale), negativeZero: negative && unscaled.Sign() == 0}, nil
}

// MustParseDecimal parses literal or panics.
func MustParseDecimal(literal string) Decimal {
	d, err := ParseDecimal(literal)
	if err != nil {
		panic(err)
	}
	return d
}

// Unscaled returns a copy of the unscaled value.
func (d Decimal) Unscaled() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.unscaled)
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int32 { return d.scale }

// Sign returns -1, 0 or 1.
func (d Decimal) Sign() int {
	if d.unscaled == nil {
		return 0
	}
	return d.unscaled.Sign()
}

// Rat returns the exact rational value.
func (d Decimal) Rat() *big.Rat {
	r := new(big.Rat).SetInt(d.Unscaled())
	if d.scale == 0 {
		return r
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(d.scale))), nil)
	if d.scale > 0 {
		return r.Quo(r, new(big.Rat).SetInt(pow))
	}
	return r.Mul(r, new(big.Rat).SetInt(pow))
}

// Cmp compares numeric values, ignoring scale.
func (d Decimal) Cmp(other Decimal) int {
	return d.Rat().Cmp(other.Rat())
}

// Float64 returns the nearest float64 value.
func (d Decimal) Float64() float64 {
	f, _ := d.Rat().Float64()
	return f
}

// String renders the decimal as a JSON number literal, preserving scale.
func (d Decimal) String() string {
	if d.unscaled == nil {
		return "0"
	}
	text := d.unscaled.String()
	if d.negativeZero {
		text = "-" + text
	}
	if d.scale == 0 {
		return text
	}
	if d.scale < 0 {
		return text + "e" + strconv.Itoa(int(-d.scale))
	}
	sign := ""
	if text[0] == '-' {
		sign, text = "-", text[1:]
	}
	scale := int(d.scale)
	if len(text) <= scale {
		text = strings.Repeat("0", scale-len(text)+1) + text
	}
	point := len(text) - scale
	return sign + text[:point] + "." + text[point:]
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}
