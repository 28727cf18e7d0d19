package amount

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Decimals is the number of fractional digits carried by the smallest
// on-chain denomination.
const Decimals = 18

var tenPow = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Amount is a fixed-precision monetary value backed by an arbitrary
// precision integer in the smallest denomination. The zero value is the
// zero amount, so callers can use Amount fields without initialization.
type Amount struct {
	i *big.Int
}

// Zero is the empty sentinel returned wherever no value has been recorded.
var Zero = Amount{}

// New copies the given integer into an Amount. A nil integer yields Zero.
func New(v *big.Int) Amount {
	if v == nil {
		return Zero
	}
	return Amount{i: new(big.Int).Set(v)}
}

// FromInt64 builds an Amount from a raw denomination value.
func FromInt64(v int64) Amount {
	return Amount{i: big.NewInt(v)}
}

// FromHex parses a 0x-prefixed hexadecimal amount.
func FromHex(s string) (Amount, error) {
	v, err := hexutil.DecodeBig(s)
	if err != nil {
		return Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{i: v}, nil
}

func (a Amount) value() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Hex encodes the amount as a 0x-prefixed hexadecimal string.
func (a Amount) Hex() string {
	return hexutil.EncodeBig(a.value())
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{i: new(big.Int).Add(a.value(), b.value())}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{i: new(big.Int).Sub(a.value(), b.value())}
}

// Mul returns a * b.
func (a Amount) Mul(b Amount) Amount {
	return Amount{i: new(big.Int).Mul(a.value(), b.value())}
}

// Cmp compares two amounts, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.value().Cmp(b.value())
}

// Equal reports exact equality of the underlying integers.
func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// IsZero reports whether the amount equals the zero sentinel.
func (a Amount) IsZero() bool {
	return a.value().Sign() == 0
}

// BigInt returns a copy of the underlying integer.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.value())
}

// String renders the amount in whole units with trailing fractional zeros
// trimmed, e.g. "12.5" for 12.5e18 raw units.
func (a Amount) String() string {
	v := a.value()
	neg := v.Sign() < 0
	abs := new(big.Int).Abs(v)

	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(abs, tenPow, frac)

	out := whole.String()
	if frac.Sign() != 0 {
		digits := strings.TrimRight(fmt.Sprintf("%0*s", Decimals, frac.String()), "0")
		out += "." + digits
	}
	if neg {
		out = "-" + out
	}
	return out
}
