package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// bigNumber is an unsigned integer field of a transaction together with the
// byte length its text form implied, used to keep leading zero bytes of
// addresses and call data.
type bigNumber struct {
	value   *big.Int
	padded  bool
	byteLen int
}

// parseBigNumber accepts
//   - "#123" decimal big integers
//   - "0x5208" prefixed hex
//   - "1234" pure digits, always decimal and never padded
//   - "f85f" unprefixed hex
//
// The empty string is zero. Anything else is rejected.
func parseBigNumber(text string, padding bool) (bigNumber, error) {
	var (
		digits string
		base   = 16
	)
	switch {
	case strings.HasPrefix(text, "#"):
		digits, base = text[1:], 10
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		digits = text[2:]
	case text == "":
	case isDecimal(text):
		digits, base, padding = text, 10, false
	default:
		digits = text
	}

	value := new(big.Int)
	if digits != "" {
		if _, ok := value.SetString(digits, base); !ok {
			return bigNumber{}, fmt.Errorf("invalid number %q: %w", text, model.ErrParam)
		}
	}
	if value.Sign() < 0 {
		return bigNumber{}, fmt.Errorf("negative number %q: %w", text, model.ErrParam)
	}
	return bigNumber{
		value:   value,
		padded:  padding,
		byteLen: (len(digits) + 1) / 2,
	}, nil
}

func isDecimal(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// Bytes is the minimal big-endian form, left padded to the implied length when padding was requested
func (n bigNumber) Bytes() []byte {
	b := n.value.Bytes()
	if n.padded && len(b) < n.byteLen {
		out := make([]byte, n.byteLen)
		copy(out[n.byteLen-len(b):], b)
		return out
	}
	return b
}
